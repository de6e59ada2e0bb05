package auth

import (
	"github.com/SuperFitApp/SF-Backend/internal/db"
)

// UserInfo is the database-backed UserFinder used in production wiring.
type UserInfo struct{}

func (ui UserInfo) FindUserByEmail(email string) (User, error) {
	var user User

	err := db.DB.First(&user, "email = ?", email).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}
