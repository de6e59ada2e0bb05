package members

import (
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/access"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// ManagerRoutes is admin-only: managers run the studio but never administer
// each other's accounts.
func ManagerRoutes() http.Handler {
	r := chi.NewRouter()
	res := access.ChainInfo{}

	adminOnly := access.Rule{Roles: []utils.Role{utils.RoleAdmin}}

	r.Group(func(r chi.Router) {
		r.Use(access.Require(adminOnly, res))
		r.Get("/", ListManagersHandler)
		r.Post("/", CreateManagerHandler)
		r.Get("/{id}", GetManagerHandler)
		r.Put("/{id}", UpdateManagerHandler)
		r.Delete("/{id}", DeleteManagerHandler)
	})

	return r
}

func InstructorRoutes() http.Handler {
	r := chi.NewRouter()
	res := access.ChainInfo{}

	staff := access.Rule{Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager}}
	listRule := access.Rule{Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager, utils.RoleInstructor}}

	r.With(access.Require(listRule, res)).Get("/", ListInstructorsHandler)
	r.With(access.Require(listRule, res)).Get("/{id}", GetInstructorHandler)

	r.Group(func(r chi.Router) {
		r.Use(access.Require(staff, res))
		r.Post("/", CreateInstructorHandler)
		r.Put("/{id}", UpdateInstructorHandler)
		r.Delete("/{id}", DeleteInstructorHandler)
	})

	return r
}

func TraineeRoutes() http.Handler {
	r := chi.NewRouter()
	res := access.ChainInfo{}

	staff := access.Rule{Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager}}
	rosterRule := access.Rule{Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager, utils.RoleInstructor}}
	traineeByID := access.Rule{
		Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager},
		Ownership: &access.OwnershipRule{
			Kind:  access.KindTrainee,
			Param: "id",
			Eligible: map[utils.Role]access.Relation{
				utils.RoleInstructor: access.RelationSupervisor,
				utils.RoleTrainee:    access.RelationSelf,
			},
		},
	}
	selfOnly := access.Rule{Roles: []utils.Role{utils.RoleTrainee}}

	r.With(access.Require(rosterRule, res)).Get("/", ListTraineesHandler)
	r.With(access.Require(rosterRule, res)).Post("/", CreateTraineeHandler)

	r.With(access.Require(selfOnly, res)).Get("/me", MyProfileHandler)

	r.With(access.Require(traineeByID, res)).Get("/{id}", GetTraineeHandler)
	r.With(access.Require(traineeByID, res)).Put("/{id}", UpdateTraineeHandler)
	r.With(access.Require(staff, res)).Delete("/{id}", DeleteTraineeHandler)

	return r
}
