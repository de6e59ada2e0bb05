package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/measurements"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/middleware"
	"github.com/SuperFitApp/SF-Backend/internal/token"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up from internal/auth/).
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	// Force local dev cookie mode so cookies work over plain HTTP (httptest uses HTTP).
	// Clearing PORT causes tokenCookie() to use Secure=false.
	os.Setenv("PORT", "")

	db.Connect()
	dbAvailable = true

	// Set up tables (idempotent).
	auth.Init()
	members.Init()
	measurements.Init()

	// Mount routes on a chi router, matching production setup in main.go.
	codec := token.NewCodec([]byte("integration-test-key"))
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.IdentityMiddleware(codec, middleware.PublicPaths))
	r.Mount("/auth", auth.SetupRoutes(codec))
	r.Mount("/measurements", measurements.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createAccount inserts a unique user with the given role and registers a
// cleanup to remove it. Returns the email, plaintext password, and user ID.
func createAccount(t *testing.T, role utils.Role) (email, password, userID string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	email = fmt.Sprintf("test_%s_%s@superfit.test", role, uuid.New().String()[:8])
	password = "TestPass123!"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	user := auth.User{
		UserID:         uuid.New().String(),
		Email:          email,
		HashedPassword: string(hashed),
		Role:           string(role),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})

	return email, password, user.UserID
}

// createSupervisedTrainee builds a full ownership chain: an instructor account
// with its studio row, a trainee account supervised by that instructor, and one
// measurement for the trainee. Returns the trainee's login plus the measurement ID.
func createSupervisedTrainee(t *testing.T) (email, password, measurementID string) {
	t.Helper()

	_, _, instUserID := createAccount(t, utils.RoleInstructor)
	instructor := members.Instructor{
		ID:     uuid.New().String(),
		UserID: instUserID,
		Name:   "Integration Instructor",
		Active: true,
	}
	if err := db.DB.Create(&instructor).Error; err != nil {
		t.Fatalf("failed to create instructor row: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", instructor.ID).Delete(&members.Instructor{})
	})

	email, password, traineeUserID := createAccount(t, utils.RoleTrainee)
	trainee := members.Trainee{
		ID:           uuid.New().String(),
		UserID:       traineeUserID,
		InstructorID: instructor.ID,
		Name:         "Integration Trainee",
		Active:       true,
	}
	if err := db.DB.Create(&trainee).Error; err != nil {
		t.Fatalf("failed to create trainee row: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", trainee.ID).Delete(&members.Trainee{})
	})

	measurement := measurements.Measurement{
		ID:        uuid.New().String(),
		TraineeID: trainee.ID,
		WeightKg:  82.5,
	}
	if err := db.DB.Create(&measurement).Error; err != nil {
		t.Fatalf("failed to create measurement row: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Where("id = ?", measurement.ID).Delete(&measurements.Measurement{})
	})

	return email, password, measurement.ID
}

// newClientWithJar returns an http.Client with a fresh cookie jar that automatically
// carries cookies between requests.
func newClientWithJar(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	return &http.Client{Jar: jar}
}

// loginUser posts to /auth/login and returns the response. The client's cookie jar
// is populated with the jwt_token cookie on success.
func loginUser(t *testing.T, client *http.Client, email, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := client.Post(testServer.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/login: %v", err)
	}
	return resp
}

// readBody reads and returns the response body as a string, draining and closing it.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// TestLoginSetsTokenCookie verifies that POST /auth/login with valid credentials
// returns 200, a Set-Cookie header containing jwt_token, and a JSON body with
// the signed token.
func TestLoginSetsTokenCookie(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password, _ := createAccount(t, utils.RoleTrainee)
	client := newClientWithJar(t)

	resp := loginUser(t, client, email, password)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, auth.TokenCookieName) {
		t.Errorf("expected Set-Cookie to contain %q, got: %q", auth.TokenCookieName, setCookie)
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	if result["token"] == "" {
		t.Error("expected token in response body")
	}
}

// TestTokenCarriesIdentityAcrossRequests verifies that after login, GET /auth/me
// returns the account's email and role using only the cookie jar.
func TestTokenCarriesIdentityAcrossRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password, _ := createAccount(t, utils.RoleInstructor)
	client := newClientWithJar(t)

	loginResp := loginUser(t, client, email, password)
	loginBody := readBody(t, loginResp)
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", loginResp.StatusCode, loginBody)
	}

	meResp, err := client.Get(testServer.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me: %v", err)
	}
	meBody := readBody(t, meResp)

	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d; body: %s", meResp.StatusCode, meBody)
	}

	var me map[string]interface{}
	if err := json.Unmarshal([]byte(meBody), &me); err != nil {
		t.Fatalf("invalid JSON body: %s", meBody)
	}
	if me["email"] != email {
		t.Errorf("expected email %q from /auth/me, got %q", email, me["email"])
	}
	if me["role"] != string(utils.RoleInstructor) {
		t.Errorf("expected role %q from /auth/me, got %q", utils.RoleInstructor, me["role"])
	}
}

// TestProtectedRouteWithoutToken verifies that a request carrying no token at
// all is rejected with 401 at the route's access rule, not earlier.
func TestProtectedRouteWithoutToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	resp, err := http.Get(testServer.URL + "/auth/me")
	if err != nil {
		t.Fatalf("GET /auth/me: %v", err)
	}
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d; body: %s", resp.StatusCode, body)
	}
}

// TestGarbageTokenStillReachesPublicRoutes verifies that a mangled bearer token
// does not block login: the request proceeds unauthenticated and the handler
// decides on credentials alone.
func TestGarbageTokenStillReachesPublicRoutes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	email, password, _ := createAccount(t, utils.RoleManager)

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequest(http.MethodPost, testServer.URL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not.a.token")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /auth/login: %v", err)
	}
	respBody := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 despite garbage bearer token, got %d; body: %s", resp.StatusCode, respBody)
	}
}

// TestTraineeMeasurementIsolation verifies the ownership chain end to end: a
// trainee can read their own measurement but gets 403 for another trainee's,
// with no hint that the foreign measurement exists.
func TestTraineeMeasurementIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	emailA, passwordA, measurementA := createSupervisedTrainee(t)
	_, _, measurementB := createSupervisedTrainee(t)

	client := newClientWithJar(t)
	loginResp := loginUser(t, client, emailA, passwordA)
	loginBody := readBody(t, loginResp)
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", loginResp.StatusCode, loginBody)
	}

	ownResp, err := client.Get(testServer.URL + "/measurements/" + measurementA)
	if err != nil {
		t.Fatalf("GET own measurement: %v", err)
	}
	ownBody := readBody(t, ownResp)
	if ownResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 reading own measurement, got %d; body: %s", ownResp.StatusCode, ownBody)
	}

	foreignResp, err := client.Get(testServer.URL + "/measurements/" + measurementB)
	if err != nil {
		t.Fatalf("GET foreign measurement: %v", err)
	}
	foreignBody := readBody(t, foreignResp)
	if foreignResp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 reading foreign measurement, got %d; body: %s", foreignResp.StatusCode, foreignBody)
	}

	// A missing measurement must be indistinguishable from a foreign one.
	missingResp, err := client.Get(testServer.URL + "/measurements/" + uuid.New().String())
	if err != nil {
		t.Fatalf("GET missing measurement: %v", err)
	}
	missingBody := readBody(t, missingResp)
	if missingResp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for missing measurement, got %d; body: %s", missingResp.StatusCode, missingBody)
	}
	if missingBody != foreignBody {
		t.Errorf("expected identical bodies for foreign and missing measurements, got %q vs %q", foreignBody, missingBody)
	}
}
