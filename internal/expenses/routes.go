package expenses

import (
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/access"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	res := access.ChainInfo{}

	staff := access.Rule{Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager}}

	r.Group(func(r chi.Router) {
		r.Use(access.Require(staff, res))
		r.Get("/", ListExpensesHandler)
		r.Post("/", CreateExpenseHandler)
		r.Get("/{id}", GetExpenseHandler)
		r.Put("/{id}", UpdateExpenseHandler)
		r.Delete("/{id}", DeleteExpenseHandler)
	})

	return r
}
