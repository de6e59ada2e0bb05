package measurements

import "time"

// Measurement belongs to exactly one trainee; instructor authority is always
// derived through the trainee's supervising-instructor edge.
type Measurement struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	TraineeID  string    `gorm:"not null;index" json:"trainee_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	WeightKg   float64   `json:"weight_kg"`
	HeightCm   float64   `json:"height_cm"`
	BodyFatPct float64   `json:"body_fat_pct"`
	ArmCm      float64   `json:"arm_cm"`
	ChestCm    float64   `json:"chest_cm"`
	WaistCm    float64   `json:"waist_cm"`
	HipCm      float64   `json:"hip_cm"`
	ThighCm    float64   `json:"thigh_cm"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Measurement) TableName() string { return "app_studio.measurements" }
