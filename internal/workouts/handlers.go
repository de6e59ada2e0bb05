package workouts

import (
	"encoding/json"
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type exerciseInput struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	LoadKg float64 `json:"load_kg"`
}

func CreateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TraineeID    string          `json:"trainee_id"`
		InstructorID string          `json:"instructor_id"`
		Name         string          `json:"name"`
		Notes        string          `json:"notes"`
		MuscleGroups []string        `json:"muscle_groups"`
		Exercises    []exerciseInput `json:"exercises"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.TraineeID == "" || input.Name == "" {
		http.Error(w, "trainee_id and name are required", http.StatusBadRequest)
		return
	}

	// Instructors create workouts under their own name, and only for
	// trainees on their roster. Staff may create on behalf of any
	// instructor.
	ident, _ := utils.GetIdentityFromContext(r.Context())
	if ident.Role == utils.RoleInstructor {
		own, err := members.FindInstructorByEmail(ident.Email)
		if err != nil {
			http.Error(w, "Instructor record not found", http.StatusForbidden)
			return
		}
		supervised, err := members.TraineeSupervisedBy(input.TraineeID, ident.Email)
		if err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !supervised {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		input.InstructorID = own.ID
	}

	if input.InstructorID == "" {
		http.Error(w, "instructor_id is required", http.StatusBadRequest)
		return
	}

	var trainee members.Trainee
	if err := db.DB.First(&trainee, "id = ?", input.TraineeID).Error; err != nil {
		http.Error(w, "Trainee not found", http.StatusBadRequest)
		return
	}

	workout := Workout{
		ID:           uuid.NewString(),
		TraineeID:    trainee.ID,
		InstructorID: input.InstructorID,
		Name:         input.Name,
		Notes:        input.Notes,
		MuscleGroups: input.MuscleGroups,
	}
	for _, ex := range input.Exercises {
		workout.Exercises = append(workout.Exercises, Exercise{
			ID:        uuid.NewString(),
			WorkoutID: workout.ID,
			Name:      ex.Name,
			Sets:      ex.Sets,
			Reps:      ex.Reps,
			LoadKg:    ex.LoadKg,
		})
	}

	if err := db.DB.Create(&workout).Error; err != nil {
		http.Error(w, "Failed to create workout", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(workout)
}

func GetWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	var workout Workout

	err := db.DB.Preload("Exercises").First(&workout, "id = ?", chi.URLParam(r, "id")).Error
	if err != nil {
		http.Error(w, "Workout not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(workout)
}

// ListByTraineeHandler returns a trainee's workouts; access is gated by the
// trainee ownership rule on the route.
func ListByTraineeHandler(w http.ResponseWriter, r *http.Request) {
	var workouts []Workout

	err := db.DB.Preload("Exercises").
		Where("trainee_id = ?", chi.URLParam(r, "id")).
		Order("created_at DESC").
		Find(&workouts).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(workouts)
}

// MyWorkoutsHandler lists the authenticated trainee's own workouts.
func MyWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
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

	var workouts []Workout
	err = db.DB.Preload("Exercises").
		Where("trainee_id = ?", trainee.ID).
		Order("created_at DESC").
		Find(&workouts).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(workouts)
}

func UpdateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         *string          `json:"name"`
		Notes        *string          `json:"notes"`
		MuscleGroups []string         `json:"muscle_groups"`
		Exercises    *[]exerciseInput `json:"exercises"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := db.DB.First(&workout, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Workout not found", http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Notes != nil {
			updates["notes"] = *input.Notes
		}
		if input.MuscleGroups != nil {
			updates["muscle_groups"] = pq.StringArray(input.MuscleGroups)
		}
		if len(updates) > 0 {
			if err := tx.Model(&workout).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Exercises are replaced wholesale; partial edits aren't worth the
		// diffing on plans this small.
		if input.Exercises != nil {
			if err := tx.Where("workout_id = ?", workout.ID).Delete(&Exercise{}).Error; err != nil {
				return err
			}
			for _, ex := range *input.Exercises {
				row := Exercise{
					ID:        uuid.NewString(),
					WorkoutID: workout.ID,
					Name:      ex.Name,
					Sets:      ex.Sets,
					Reps:      ex.Reps,
					LoadKg:    ex.LoadKg,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Failed to update workout", http.StatusInternalServerError)
		return
	}

	db.DB.Preload("Exercises").First(&workout, "id = ?", workout.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(workout)
}

func DeleteWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	var workout Workout
	if err := db.DB.First(&workout, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
		http.Error(w, "Workout not found", http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", workout.ID).Delete(&Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&workout).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete workout", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
