package measurements

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type measurementInput struct {
	TraineeID  string   `json:"trainee_id"`
	Date       string   `json:"date"`
	WeightKg   *float64 `json:"weight_kg"`
	HeightCm   *float64 `json:"height_cm"`
	BodyFatPct *float64 `json:"body_fat_pct"`
	ArmCm      *float64 `json:"arm_cm"`
	ChestCm    *float64 `json:"chest_cm"`
	WaistCm    *float64 `json:"waist_cm"`
	HipCm      *float64 `json:"hip_cm"`
	ThighCm    *float64 `json:"thigh_cm"`
}

func CreateMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	var input measurementInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.TraineeID == "" {
		http.Error(w, "trainee_id is required", http.StatusBadRequest)
		return
	}

	// Instructors record measurements only for trainees on their roster.
	ident, _ := utils.GetIdentityFromContext(r.Context())
	if ident.Role == utils.RoleInstructor {
		supervised, err := members.TraineeSupervisedBy(input.TraineeID, ident.Email)
		if err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !supervised {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	var trainee members.Trainee
	if err := db.DB.First(&trainee, "id = ?", input.TraineeID).Error; err != nil {
		http.Error(w, "Trainee not found", http.StatusBadRequest)
		return
	}

	date := time.Now().UTC()
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	m := Measurement{
		ID:        uuid.NewString(),
		TraineeID: trainee.ID,
		Date:      date,
	}
	applyFields(&m, input)

	if err := db.DB.Create(&m).Error; err != nil {
		http.Error(w, "Failed to create measurement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

func applyFields(m *Measurement, input measurementInput) {
	if input.WeightKg != nil {
		m.WeightKg = *input.WeightKg
	}
	if input.HeightCm != nil {
		m.HeightCm = *input.HeightCm
	}
	if input.BodyFatPct != nil {
		m.BodyFatPct = *input.BodyFatPct
	}
	if input.ArmCm != nil {
		m.ArmCm = *input.ArmCm
	}
	if input.ChestCm != nil {
		m.ChestCm = *input.ChestCm
	}
	if input.WaistCm != nil {
		m.WaistCm = *input.WaistCm
	}
	if input.HipCm != nil {
		m.HipCm = *input.HipCm
	}
	if input.ThighCm != nil {
		m.ThighCm = *input.ThighCm
	}
}

func GetMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	var m Measurement

	if err := db.DB.First(&m, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Measurement not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// HistoryHandler lists a trainee's measurements oldest-first, the order
// evolution views chart them in.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	var history []Measurement

	err := db.DB.Where("trainee_id = ?", chi.URLParam(r, "id")).
		Order("date ASC").
		Find(&history).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

// MyHistoryHandler lists the authenticated trainee's own measurements.
func MyHistoryHandler(w http.ResponseWriter, r *http.Request) {
	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	trainee, err := members.FindTraineeByEmail(ident.Email)
	if err != nil {
		http.Error(w, "Trainee not found", http.StatusNotFound)
		return
	}

	var history []Measurement
	err = db.DB.Where("trainee_id = ?", trainee.ID).
		Order("date ASC").
		Find(&history).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

func UpdateMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	var input measurementInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var m Measurement
	if err := db.DB.First(&m, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Measurement not found", http.StatusNotFound)
		return
	}

	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		m.Date = parsed
	}
	applyFields(&m, input)

	if err := db.DB.Save(&m).Error; err != nil {
		http.Error(w, "Failed to update measurement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func DeleteMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	var m Measurement
	if err := db.DB.First(&m, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Measurement not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&m).Error; err != nil {
		http.Error(w, "Failed to delete measurement", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
