package access

import (
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"gorm.io/gorm"
)

// ChainInfo is the database-backed Resolver. Each (kind, relation) pair maps
// to exactly one existence predicate over the relationship chain; ownership
// is always derived by walking the chain, never read from a denormalized
// column. Unknown pairs resolve to false.
type ChainInfo struct{}

func (ci ChainInfo) Owns(email string, kind ResourceKind, rel Relation, resourceID string) (bool, error) {
	q := chainQuery(kind, rel, resourceID, email)
	if q == nil {
		return false, nil
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func chainQuery(kind ResourceKind, rel Relation, resourceID, email string) *gorm.DB {
	switch kind {
	case KindTrainee:
		switch rel {
		case RelationSelf:
			return db.DB.Table("app_studio.trainees AS t").
				Joins("JOIN app_auth.users u ON u.user_id = t.user_id").
				Where("t.id = ? AND u.email = ?", resourceID, email)
		case RelationSupervisor:
			return db.DB.Table("app_studio.trainees AS t").
				Joins("JOIN app_studio.instructors i ON i.id = t.instructor_id").
				Joins("JOIN app_auth.users u ON u.user_id = i.user_id").
				Where("t.id = ? AND u.email = ?", resourceID, email)
		}
	case KindWorkout:
		switch rel {
		case RelationSelf:
			return db.DB.Table("app_studio.workouts AS w").
				Joins("JOIN app_studio.trainees t ON t.id = w.trainee_id").
				Joins("JOIN app_auth.users u ON u.user_id = t.user_id").
				Where("w.id = ? AND u.email = ?", resourceID, email)
		case RelationSupervisor:
			return db.DB.Table("app_studio.workouts AS w").
				Joins("JOIN app_studio.instructors i ON i.id = w.instructor_id").
				Joins("JOIN app_auth.users u ON u.user_id = i.user_id").
				Where("w.id = ? AND u.email = ?", resourceID, email)
		}
	case KindMeasurement:
		switch rel {
		case RelationSelf:
			return db.DB.Table("app_studio.measurements AS m").
				Joins("JOIN app_studio.trainees t ON t.id = m.trainee_id").
				Joins("JOIN app_auth.users u ON u.user_id = t.user_id").
				Where("m.id = ? AND u.email = ?", resourceID, email)
		case RelationSupervisor:
			return db.DB.Table("app_studio.measurements AS m").
				Joins("JOIN app_studio.trainees t ON t.id = m.trainee_id").
				Joins("JOIN app_studio.instructors i ON i.id = t.instructor_id").
				Joins("JOIN app_auth.users u ON u.user_id = i.user_id").
				Where("m.id = ? AND u.email = ?", resourceID, email)
		}
	case KindInvoice:
		switch rel {
		case RelationSelf:
			return db.DB.Table("app_finance.invoices AS v").
				Joins("JOIN app_studio.trainees t ON t.id = v.trainee_id").
				Joins("JOIN app_auth.users u ON u.user_id = t.user_id").
				Where("v.id = ? AND u.email = ?", resourceID, email)
		case RelationSupervisor:
			return db.DB.Table("app_finance.invoices AS v").
				Joins("JOIN app_studio.trainees t ON t.id = v.trainee_id").
				Joins("JOIN app_studio.instructors i ON i.id = t.instructor_id").
				Joins("JOIN app_auth.users u ON u.user_id = i.user_id").
				Where("v.id = ? AND u.email = ?", resourceID, email)
		}
	}
	return nil
}
