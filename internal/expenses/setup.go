package expenses

import (
	"log"

	"github.com/SuperFitApp/SF-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_finance"); err != nil {
		log.Fatal("Failed to ensure schema app_finance: ", err)
	}

	if err := db.DB.AutoMigrate(&Expense{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
