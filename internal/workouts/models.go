package workouts

import (
	"time"

	"github.com/lib/pq"
)

// Workout links exactly one trainee and the instructor who created it. Both
// edges are walked by the access resolver, so they are never duplicated onto
// exercises or other dependents.
type Workout struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	TraineeID    string         `gorm:"not null;index" json:"trainee_id"`
	InstructorID string         `gorm:"not null;index" json:"instructor_id"`
	Name         string         `json:"name"`
	Notes        string         `json:"notes"`
	MuscleGroups pq.StringArray `gorm:"type:text[]" json:"muscle_groups"`
	Exercises    []Exercise     `gorm:"foreignKey:WorkoutID" json:"exercises"`
	CreatedAt    time.Time      `json:"created_at"`
}

type Exercise struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	WorkoutID string  `gorm:"not null;index" json:"workout_id"`
	Name      string  `json:"name"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	LoadKg    float64 `json:"load_kg"`
}

func (Workout) TableName() string  { return "app_studio.workouts" }
func (Exercise) TableName() string { return "app_studio.exercises" }
