package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the single failure for login: unknown email and
// wrong password are indistinguishable, so the endpoint cannot be used to
// enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserFinder is the credential-store lookup the verifier depends on.
type UserFinder interface {
	FindUserByEmail(email string) (User, error)
}

// Verifier checks a plaintext email/password pair against stored bcrypt
// hashes. No attempt counting or lockout happens here.
type Verifier struct {
	Users UserFinder
}

func (v Verifier) Verify(email, password string) (User, error) {
	user, err := v.Users.FindUserByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
