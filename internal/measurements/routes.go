package measurements

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
			Kind:  access.KindMeasurement,
			Param: "id",
			Eligible: map[utils.Role]access.Relation{
				utils.RoleInstructor: access.RelationSupervisor,
				utils.RoleTrainee:    access.RelationSelf,
			},
		},
	}
	// Only the supervising instructor edits or removes a measurement; the
	// trainee reads their own history but never rewrites it.
	writeRule := access.Rule{
		Roles: []utils.Role{utils.RoleAdmin, utils.RoleManager},
		Ownership: &access.OwnershipRule{
			Kind:  access.KindMeasurement,
			Param: "id",
			Eligible: map[utils.Role]access.Relation{
				utils.RoleInstructor: access.RelationSupervisor,
			},
		},
	}
	historyRule := access.Rule{
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

	r.With(access.Require(createRule, res)).Post("/", CreateMeasurementHandler)
	r.With(access.Require(selfOnly, res)).Get("/me", MyHistoryHandler)
	r.With(access.Require(historyRule, res)).Get("/trainee/{id}/history", HistoryHandler)

	r.With(access.Require(readRule, res)).Get("/{id}", GetMeasurementHandler)
	r.With(access.Require(writeRule, res)).Put("/{id}", UpdateMeasurementHandler)
	r.With(access.Require(writeRule, res)).Delete("/{id}", DeleteMeasurementHandler)

	return r
}
