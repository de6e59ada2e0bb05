package members

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// onboardingPassword picks the secret for a new account: the one supplied in
// the request, else the DEFAULT_MEMBER_PASSWORD override. An empty result
// means the caller must supply one; onboarding never invents a secret.
func onboardingPassword(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return os.Getenv("DEFAULT_MEMBER_PASSWORD")
}

// createAccount inserts the auth user behind a new instructor or trainee.
func createAccount(tx *gorm.DB, email, password, role string) (auth.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return auth.User{}, err
	}

	user := auth.User{
		UserID:         uuid.NewString(),
		Email:          email,
		HashedPassword: string(hashed),
		Role:           role,
	}
	if err := tx.Create(&user).Error; err != nil {
		return auth.User{}, err
	}
	return user, nil
}

func CreateInstructorHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Specialty string `json:"specialty"`
		Password  string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Email == "" {
		http.Error(w, "Name and email are required", http.StatusBadRequest)
		return
	}

	password := onboardingPassword(input.Password)
	if password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	var existing auth.User
	if err := db.DB.First(&existing, "email = ?", input.Email).Error; err == nil {
		http.Error(w, "Email already taken", http.StatusConflict)
		return
	}

	var instructor Instructor
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		user, err := createAccount(tx, input.Email, password, string(utils.RoleInstructor))
		if err != nil {
			return err
		}
		instructor = Instructor{
			ID:        uuid.NewString(),
			UserID:    user.UserID,
			Name:      input.Name,
			Specialty: input.Specialty,
			Active:    true,
		}
		return tx.Create(&instructor).Error
	})
	if err != nil {
		http.Error(w, "Failed to create instructor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(instructor)
}

func ListInstructorsHandler(w http.ResponseWriter, r *http.Request) {
	var instructors []Instructor

	if err := db.DB.Find(&instructors).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(instructors)
}

func GetInstructorHandler(w http.ResponseWriter, r *http.Request) {
	var instructor Instructor

	if err := db.DB.First(&instructor, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Instructor not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(instructor)
}

func UpdateInstructorHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      *string `json:"name"`
		Specialty *string `json:"specialty"`
		Active    *bool   `json:"active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var instructor Instructor
	if err := db.DB.First(&instructor, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Instructor not found", http.StatusNotFound)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Specialty != nil {
		updates["specialty"] = *input.Specialty
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&instructor).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update instructor", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(instructor)
}

func DeleteInstructorHandler(w http.ResponseWriter, r *http.Request) {
	var instructor Instructor
	if err := db.DB.First(&instructor, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Instructor not found", http.StatusNotFound)
		return
	}

	var roster int64
	if err := db.DB.Model(&Trainee{}).Where("instructor_id = ?", instructor.ID).Count(&roster).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if roster > 0 {
		http.Error(w, "Instructor still supervises trainees", http.StatusConflict)
		return
	}

	// The studio row and the login go together; a surviving login with no
	// studio row could still authenticate.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&instructor).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", instructor.UserID).Delete(&auth.User{}).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete instructor", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func CreateTraineeHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		InstructorID string `json:"instructor_id"`
		Password     string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Email == "" {
		http.Error(w, "Name and email are required", http.StatusBadRequest)
		return
	}

	// An instructor onboarding a trainee always gets them on their own
	// roster; only admins and managers may pick the supervising instructor.
	ident, _ := utils.GetIdentityFromContext(r.Context())
	if ident.Role == utils.RoleInstructor {
		own, err := FindInstructorByEmail(ident.Email)
		if err != nil {
			http.Error(w, "Instructor record not found", http.StatusForbidden)
			return
		}
		input.InstructorID = own.ID
	}

	if input.InstructorID == "" {
		http.Error(w, "instructor_id is required", http.StatusBadRequest)
		return
	}

	var supervisor Instructor
	if err := db.DB.First(&supervisor, "id = ?", input.InstructorID).Error; err != nil {
		http.Error(w, "Supervising instructor not found", http.StatusBadRequest)
		return
	}

	password := onboardingPassword(input.Password)
	if password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	var existing auth.User
	if err := db.DB.First(&existing, "email = ?", input.Email).Error; err == nil {
		http.Error(w, "Email already taken", http.StatusConflict)
		return
	}

	var trainee Trainee
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		user, err := createAccount(tx, input.Email, password, string(utils.RoleTrainee))
		if err != nil {
			return err
		}
		trainee = Trainee{
			ID:           uuid.NewString(),
			UserID:       user.UserID,
			InstructorID: supervisor.ID,
			Name:         input.Name,
			Phone:        input.Phone,
			Active:       true,
		}
		return tx.Create(&trainee).Error
	})
	if err != nil {
		http.Error(w, "Failed to create trainee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trainee)
}

func ListTraineesHandler(w http.ResponseWriter, r *http.Request) {
	var trainees []Trainee

	q := db.DB
	// Instructors see only their own roster; staff see everyone.
	if ident, ok := utils.GetIdentityFromContext(r.Context()); ok && ident.Role == utils.RoleInstructor {
		own, err := FindInstructorByEmail(ident.Email)
		if err != nil {
			http.Error(w, "Instructor record not found", http.StatusForbidden)
			return
		}
		q = q.Where("instructor_id = ?", own.ID)
	}

	if err := q.Find(&trainees).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainees)
}

func GetTraineeHandler(w http.ResponseWriter, r *http.Request) {
	var trainee Trainee

	if err := db.DB.First(&trainee, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Trainee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainee)
}

func UpdateTraineeHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         *string `json:"name"`
		Phone        *string `json:"phone"`
		Active       *bool   `json:"active"`
		InstructorID *string `json:"instructor_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var trainee Trainee
	if err := db.DB.First(&trainee, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Trainee not found", http.StatusNotFound)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	// Reassigning the supervising instructor is a staff operation; trainees
	// and instructors updating profile fields cannot move the edge.
	if input.InstructorID != nil {
		ident, _ := utils.GetIdentityFromContext(r.Context())
		if ident.Role != utils.RoleAdmin && ident.Role != utils.RoleManager {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		var supervisor Instructor
		if err := db.DB.First(&supervisor, "id = ?", *input.InstructorID).Error; err != nil {
			http.Error(w, "Supervising instructor not found", http.StatusBadRequest)
			return
		}
		updates["instructor_id"] = supervisor.ID
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&trainee).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update trainee", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainee)
}

func DeleteTraineeHandler(w http.ResponseWriter, r *http.Request) {
	var trainee Trainee
	if err := db.DB.First(&trainee, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Trainee not found", http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trainee).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", trainee.UserID).Delete(&auth.User{}).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete trainee", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MyProfileHandler returns the trainee row for the authenticated trainee.
func MyProfileHandler(w http.ResponseWriter, r *http.Request) {
	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	trainee, err := FindTraineeByEmail(ident.Email)
	if err != nil {
		http.Error(w, "Trainee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainee)
}
