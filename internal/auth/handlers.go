package auth

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/token"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const TokenCookieName = "jwt_token"

// tokenCookie builds the session cookie carrying the signed token. When PORT
// is set we are behind HTTPS on the deployed host, so the cookie is marked
// Secure; local dev over plain HTTP keeps it off so the browser accepts it.
func tokenCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("PORT") != "",
	}
}

type Handlers struct {
	Codec    *token.Codec
	Verifier Verifier
}

// Login verifies credentials and, on success, issues a signed token bound to
// the account's current role. The token goes out both in the JSON body and as
// an http-only cookie. All failures collapse into one 401.
func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Verifier.Verify(input.Email, input.Password)
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	role, ok := utils.ParseRole(user.Role)
	if !ok {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	signed, err := h.Codec.Issue(user.Email, role)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, tokenCookie(signed, int(token.ExpirationWindow.Seconds())))

	log.Printf("[auth] login email=%s role=%s", user.Email, user.Role)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": signed})
}

// Logout overwrites the token cookie. The token itself stays valid until it
// expires; there is no server-side revocation. MaxAge -1 makes net/http emit
// Max-Age=0, which is what actually deletes the cookie.
func (h Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, tokenCookie("", -1))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user User
	if err := db.DB.First(&user, "email = ?", ident.Email).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MeResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

// UpdatePassword re-hashes after checking the current password. The change
// does not invalidate tokens already issued for this account.
func (h Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.CurrentPassword == "" || input.NewPassword == "" {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Verifier.Verify(ident.Email, input.CurrentPassword)
	if err != nil {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	if err := db.DB.Model(&user).Update("hashed_password", string(hashed)).Error; err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}
