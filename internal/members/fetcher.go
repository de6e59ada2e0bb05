package members

import (
	"github.com/SuperFitApp/SF-Backend/internal/db"
)

// FindInstructorByEmail resolves the instructor row behind an authenticated
// instructor identity. Used by handlers that scope writes to the caller's own
// roster.
func FindInstructorByEmail(email string) (Instructor, error) {
	var instructor Instructor

	err := db.DB.Table("app_studio.instructors").
		Joins("JOIN app_auth.users u ON u.user_id = instructors.user_id").
		Where("u.email = ?", email).
		First(&instructor).Error
	if err != nil {
		return Instructor{}, err
	}

	return instructor, nil
}

// FindTraineeByEmail resolves the trainee row behind an authenticated trainee
// identity, for the "my profile" style routes.
func FindTraineeByEmail(email string) (Trainee, error) {
	var trainee Trainee

	err := db.DB.Table("app_studio.trainees").
		Joins("JOIN app_auth.users u ON u.user_id = trainees.user_id").
		Where("u.email = ?", email).
		First(&trainee).Error
	if err != nil {
		return Trainee{}, err
	}

	return trainee, nil
}

// TraineeSupervisedBy reports whether the trainee exists and is on the roster
// of the instructor identified by email.
func TraineeSupervisedBy(traineeID, email string) (bool, error) {
	var count int64

	err := db.DB.Table("app_studio.trainees AS t").
		Joins("JOIN app_studio.instructors i ON i.id = t.instructor_id").
		Joins("JOIN app_auth.users u ON u.user_id = i.user_id").
		Where("t.id = ? AND u.email = ?", traineeID, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
