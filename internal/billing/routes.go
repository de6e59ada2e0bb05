package billing

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
	readRule := access.Rule{
		Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager},
		Ownership: &access.OwnershipRule{
			Kind:  access.KindInvoice,
			Param: "id",
			Eligible: map[utils.Role]access.Relation{
				utils.RoleTrainee: access.RelationSelf,
			},
		},
	}

	r.Route("/invoices", func(r chi.Router) {
		r.With(access.Require(staff, res)).Get("/", ListInvoicesHandler)
		r.With(access.Require(staff, res)).Post("/", CreateInvoiceHandler)

		r.With(access.Require(readRule, res)).Get("/{id}", GetInvoiceHandler)
		r.With(access.Require(staff, res)).Put("/{id}", UpdateInvoiceHandler)
		r.With(access.Require(staff, res)).Post("/{id}/pay", MarkPaidHandler)
		r.With(access.Require(staff, res)).Delete("/{id}", DeleteInvoiceHandler)
	})

	return r
}
