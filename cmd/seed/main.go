package main

import (
	"flag"
	"log"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	fixture := flag.String("fixture", "seeds/users.yaml", "path to the YAML user fixture")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	members.Init()

	if err := seeds.Run(*fixture); err != nil {
		log.Fatal("Seeding failed: ", err)
	}

	log.Println("Seeding complete")
}
