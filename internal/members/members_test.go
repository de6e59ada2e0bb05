package members_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testRouter mounts the member routes the way main.go does, without the
// identity middleware: tests attach identities to the request context
// directly.
var testRouter chi.Router

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	testRouter = chi.NewRouter()
	testRouter.Mount("/managers", members.ManagerRoutes())
	testRouter.Mount("/instructors", members.InstructorRoutes())
	testRouter.Mount("/trainees", members.TraineeRoutes())

	if os.Getenv("DATABASE_URL") != "" {
		db.Connect()
		dbAvailable = true
		auth.Init()
		members.Init()
	}

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() || !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
}

// do runs one request through the member routes as the given identity (nil
// for anonymous) and returns the recorder.
func do(t *testing.T, method, path string, body interface{}, ident *utils.Identity) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if ident != nil {
		req = req.WithContext(utils.WithIdentity(req.Context(), *ident))
	}
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

// seedLogin inserts a user row directly and registers cleanup. Used to build
// fixtures the handlers under test are not responsible for.
func seedLogin(t *testing.T, role utils.Role) auth.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := auth.User{
		UserID:         uuid.NewString(),
		Email:          fmt.Sprintf("test_%s_%s@superfit.test", role, uuid.NewString()[:8]),
		HashedPassword: string(hashed),
		Role:           string(role),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})
	return user
}

// TestManagerRoutesAdminOnly verifies the rule table on /managers: every role
// below admin is rejected before any handler runs, and anonymous requests get
// 401. No database is needed because rejection happens at the access rule.
func TestManagerRoutesAdminOnly(t *testing.T) {
	calls := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/managers/"},
		{http.MethodPost, "/managers/"},
		{http.MethodGet, "/managers/m1"},
		{http.MethodPut, "/managers/m1"},
		{http.MethodDelete, "/managers/m1"},
	}

	for _, call := range calls {
		if rec := do(t, call.method, call.path, nil, nil); rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s anonymous: want 401, got %d", call.method, call.path, rec.Code)
		}
		for _, role := range []utils.Role{utils.RoleManager, utils.RoleInstructor, utils.RoleTrainee} {
			ident := utils.Identity{Email: "someone@superfit.test", Role: role}
			if rec := do(t, call.method, call.path, nil, &ident); rec.Code != http.StatusForbidden {
				t.Errorf("%s %s as %s: want 403, got %d", call.method, call.path, role, rec.Code)
			}
		}
	}
}

// TestManagerLifecycle walks admin-driven manager management end to end:
// create makes both the studio row and a login with the manager role, update
// edits fields, delete removes the login along with the row.
func TestManagerLifecycle(t *testing.T) {
	requireDB(t)

	admin := utils.Identity{Email: "root@superfit.test", Role: utils.RoleAdmin}
	email := fmt.Sprintf("test_manager_%s@superfit.test", uuid.NewString()[:8])

	rec := do(t, http.MethodPost, "/managers/", map[string]string{
		"name":     "Test Manager",
		"email":    email,
		"password": "TestPass123!",
	}, &admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created members.Manager
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", created.ID).Delete(&members.Manager{})
		db.DB.Where("user_id = ?", created.UserID).Delete(&auth.User{})
	})

	var login auth.User
	if err := db.DB.First(&login, "email = ?", email).Error; err != nil {
		t.Fatalf("expected login row for new manager: %v", err)
	}
	if login.Role != string(utils.RoleManager) {
		t.Errorf("login role: want manager, got %q", login.Role)
	}

	rec = do(t, http.MethodPut, "/managers/"+created.ID, map[string]string{"phone": "+55 11 97777-0001"}, &admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, http.MethodDelete, "/managers/"+created.ID, nil, &admin)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d: %s", rec.Code, rec.Body.String())
	}

	if err := db.DB.First(&auth.User{}, "email = ?", email).Error; err == nil {
		t.Error("login row survived manager deletion")
	}
}

// TestDeleteInstructorRemovesLogin verifies the instructor delete takes the
// backing login with it, so no orphaned account can still authenticate.
func TestDeleteInstructorRemovesLogin(t *testing.T) {
	requireDB(t)

	login := seedLogin(t, utils.RoleInstructor)
	instructor := members.Instructor{
		ID:     uuid.NewString(),
		UserID: login.UserID,
		Name:   "Doomed Instructor",
		Active: true,
	}
	if err := db.DB.Create(&instructor).Error; err != nil {
		t.Fatalf("create instructor: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", instructor.ID).Delete(&members.Instructor{})
	})

	admin := utils.Identity{Email: "root@superfit.test", Role: utils.RoleAdmin}
	rec := do(t, http.MethodDelete, "/instructors/"+instructor.ID, nil, &admin)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d: %s", rec.Code, rec.Body.String())
	}

	if err := db.DB.First(&auth.User{}, "user_id = ?", login.UserID).Error; err == nil {
		t.Error("login row survived instructor deletion")
	}
}

// TestDeleteInstructorBlockedWhileSupervising verifies the roster guard: an
// instructor with trainees cannot be removed, and both rows stay intact.
func TestDeleteInstructorBlockedWhileSupervising(t *testing.T) {
	requireDB(t)

	instLogin := seedLogin(t, utils.RoleInstructor)
	instructor := members.Instructor{
		ID:     uuid.NewString(),
		UserID: instLogin.UserID,
		Name:   "Busy Instructor",
		Active: true,
	}
	if err := db.DB.Create(&instructor).Error; err != nil {
		t.Fatalf("create instructor: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", instructor.ID).Delete(&members.Instructor{})
	})

	traineeLogin := seedLogin(t, utils.RoleTrainee)
	trainee := members.Trainee{
		ID:           uuid.NewString(),
		UserID:       traineeLogin.UserID,
		InstructorID: instructor.ID,
		Name:         "Loyal Trainee",
		Active:       true,
	}
	if err := db.DB.Create(&trainee).Error; err != nil {
		t.Fatalf("create trainee: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", trainee.ID).Delete(&members.Trainee{})
	})

	admin := utils.Identity{Email: "root@superfit.test", Role: utils.RoleAdmin}
	rec := do(t, http.MethodDelete, "/instructors/"+instructor.ID, nil, &admin)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete with roster: want 409, got %d: %s", rec.Code, rec.Body.String())
	}

	if err := db.DB.First(&members.Instructor{}, "id = ?", instructor.ID).Error; err != nil {
		t.Errorf("instructor row missing after blocked delete: %v", err)
	}
	if err := db.DB.First(&auth.User{}, "user_id = ?", instLogin.UserID).Error; err != nil {
		t.Errorf("login row missing after blocked delete: %v", err)
	}
}
