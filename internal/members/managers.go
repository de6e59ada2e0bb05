package members

import (
	"encoding/json"
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateManagerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
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

	var manager Manager
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		user, err := createAccount(tx, input.Email, password, string(utils.RoleManager))
		if err != nil {
			return err
		}
		manager = Manager{
			ID:     uuid.NewString(),
			UserID: user.UserID,
			Name:   input.Name,
			Phone:  input.Phone,
			Active: true,
		}
		return tx.Create(&manager).Error
	})
	if err != nil {
		http.Error(w, "Failed to create manager", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(manager)
}

func ListManagersHandler(w http.ResponseWriter, r *http.Request) {
	var managers []Manager

	if err := db.DB.Find(&managers).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(managers)
}

func GetManagerHandler(w http.ResponseWriter, r *http.Request) {
	var manager Manager

	if err := db.DB.First(&manager, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Manager not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(manager)
}

func UpdateManagerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name   *string `json:"name"`
		Phone  *string `json:"phone"`
		Active *bool   `json:"active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var manager Manager
	if err := db.DB.First(&manager, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Manager not found", http.StatusNotFound)
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

	if len(updates) > 0 {
		if err := db.DB.Model(&manager).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update manager", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(manager)
}

func DeleteManagerHandler(w http.ResponseWriter, r *http.Request) {
	var manager Manager
	if err := db.DB.First(&manager, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Manager not found", http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&manager).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", manager.UserID).Delete(&auth.User{}).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete manager", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
