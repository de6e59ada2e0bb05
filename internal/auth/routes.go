package auth

import (
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/access"
	"github.com/SuperFitApp/SF-Backend/internal/token"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(codec *token.Codec) http.Handler {
	r := chi.NewRouter()
	h := Handlers{
		Codec:    codec,
		Verifier: Verifier{Users: UserInfo{}},
	}
	res := access.ChainInfo{}

	anyAuthenticated := access.Rule{
		Roles: []utils.Role{
			utils.RoleAdmin,
			utils.RoleManager,
			utils.RoleInstructor,
			utils.RoleTrainee,
		},
	}

	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(access.Require(anyAuthenticated, res))
		r.Get("/me", h.Me)
		r.Post("/password", h.UpdatePassword)
	})

	return r
}
