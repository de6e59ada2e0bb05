package auth

import "time"

// User is a Principal: any account able to log in, regardless of role.
// HashedPassword changes only through the change-password endpoint.
type User struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	Email          string    `gorm:"not null;uniqueIndex" json:"email"`
	Password       string    `json:"password" gorm:"-"`
	HashedPassword string    `json:"-"`
	Role           string    `gorm:"default:'trainee'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func (User) TableName() string { return "app_auth.users" }
