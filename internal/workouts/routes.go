package workouts

import (
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/access"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	res := access.ChainInfo{}

	createRule := access.Rule{Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager, utils.RoleInstructor}}
	selfOnly := access.Rule{Roles: []utils.Role{utils.RoleTrainee}}

	readRule := access.Rule{
		Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager},
		Ownership: &access.OwnershipRule{
			Kind:  access.KindWorkout,
			Param: "id",
			Eligible: map[utils.Role]access.Relation{
				utils.RoleInstructor: access.RelationSupervisor,
				utils.RoleTrainee:    access.RelationSelf,
			},
		},
	}
	// Writes stay with the creating instructor; the assigned trainee can only
	// read.
	writeRule := access.Rule{
		Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager},
		Ownership: &access.OwnershipRule{
			Kind:  access.KindWorkout,
			Param: "id",
			Eligible: map[utils.Role]access.Relation{
				utils.RoleInstructor: access.RelationSupervisor,
			},
		},
	}
	byTraineeRule := access.Rule{
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

	r.With(access.Require(createRule, res)).Post("/", CreateWorkoutHandler)
	r.With(access.Require(selfOnly, res)).Get("/me", MyWorkoutsHandler)
	r.With(access.Require(byTraineeRule, res)).Get("/trainee/{id}", ListByTraineeHandler)

	r.With(access.Require(readRule, res)).Get("/{id}", GetWorkoutHandler)
	r.With(access.Require(writeRule, res)).Put("/{id}", UpdateWorkoutHandler)
	r.With(access.Require(writeRule, res)).Delete("/{id}", DeleteWorkoutHandler)

	return r
}
