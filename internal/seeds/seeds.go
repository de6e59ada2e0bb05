package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixture is the YAML shape consumed by cmd/seed. Instructor and trainee
// entries also get their studio rows; trainees attach to the instructor named
// by supervisor_email, so instructors must appear before their trainees.
type Fixture struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	Role            string `yaml:"role"`
	Name            string `yaml:"name"`
	Specialty       string `yaml:"specialty"`
	Phone           string `yaml:"phone"`
	SupervisorEmail string `yaml:"supervisor_email"`
}

// Run loads the fixture and creates every account that doesn't exist yet.
// Existing emails are left untouched, so reseeding a live database is safe.
func Run(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	for _, entry := range fixture.Users {
		if err := seedUser(entry); err != nil {
			return fmt.Errorf("seed %s: %w", entry.Email, err)
		}
	}

	return nil
}

func seedUser(entry SeedUser) error {
	role, ok := utils.ParseRole(entry.Role)
	if !ok {
		return fmt.Errorf("unknown role %q", entry.Role)
	}
	if entry.Email == "" || entry.Password == "" {
		return fmt.Errorf("email and password are required")
	}

	var existing auth.User
	if err := db.DB.First(&existing, "email = ?", entry.Email).Error; err == nil {
		log.Printf("[seeds] skip existing user %s", entry.Email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := auth.User{
		UserID:         uuid.NewString(),
		Email:          entry.Email,
		HashedPassword: string(hashed),
		Role:           string(role),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return err
	}

	switch role {
	case utils.RoleManager:
		manager := members.Manager{
			ID:     uuid.NewString(),
			UserID: user.UserID,
			Name:   entry.Name,
			Phone:  entry.Phone,
			Active: true,
		}
		if err := db.DB.Create(&manager).Error; err != nil {
			return err
		}
	case utils.RoleInstructor:
		instructor := members.Instructor{
			ID:        uuid.NewString(),
			UserID:    user.UserID,
			Name:      entry.Name,
			Specialty: entry.Specialty,
			Active:    true,
		}
		if err := db.DB.Create(&instructor).Error; err != nil {
			return err
		}
	case utils.RoleTrainee:
		supervisor, err := members.FindInstructorByEmail(entry.SupervisorEmail)
		if err != nil {
			return fmt.Errorf("supervisor %q not found", entry.SupervisorEmail)
		}
		trainee := members.Trainee{
			ID:           uuid.NewString(),
			UserID:       user.UserID,
			InstructorID: supervisor.ID,
			Name:         entry.Name,
			Phone:        entry.Phone,
			Active:       true,
		}
		if err := db.DB.Create(&trainee).Error; err != nil {
			return err
		}
	}

	log.Printf("[seeds] created %s user %s", role, entry.Email)
	return nil
}
