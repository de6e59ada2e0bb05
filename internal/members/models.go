package members

import "time"

// Manager is back-office staff: full authority over studio records but no
// supervising edge of their own. Only admins manage these accounts.
type Manager struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex" json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Instructor struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex" json:"user_id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Trainee always has exactly one supervising instructor. Instructor authority
// over a trainee's workouts and measurements is derived from this edge at
// check time, never stored on the dependent rows.
type Trainee struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"not null;uniqueIndex" json:"user_id"`
	InstructorID string    `gorm:"not null;index" json:"instructor_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Manager) TableName() string    { return "app_studio.managers" }
func (Instructor) TableName() string { return "app_studio.instructors" }
func (Trainee) TableName() string    { return "app_studio.trainees" }
