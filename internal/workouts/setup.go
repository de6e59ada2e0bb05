package workouts

import (
	"log"

	"github.com/SuperFitApp/SF-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_studio"); err != nil {
		log.Fatal("Failed to ensure schema app_studio: ", err)
	}

	if err := db.DB.AutoMigrate(&Workout{}, &Exercise{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
