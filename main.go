package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/SuperFitApp/SF-Backend/internal/auth"
	"github.com/SuperFitApp/SF-Backend/internal/billing"
	"github.com/SuperFitApp/SF-Backend/internal/db"
	"github.com/SuperFitApp/SF-Backend/internal/expenses"
	"github.com/SuperFitApp/SF-Backend/internal/measurements"
	"github.com/SuperFitApp/SF-Backend/internal/members"
	"github.com/SuperFitApp/SF-Backend/internal/middleware"
	"github.com/SuperFitApp/SF-Backend/internal/token"
	"github.com/SuperFitApp/SF-Backend/internal/workouts"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func signingKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("PORT") != "" {
			log.Fatal("JWT_SECRET must be set outside local development")
		}
		secret = "superfit-dev-secret"
	}
	return []byte(secret)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	members.Init()
	workouts.Init()
	measurements.Init()
	billing.Init()
	expenses.Init()

	codec := token.NewCodec(signingKey())

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.IdentityMiddleware(codec, middleware.PublicPaths))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(codec))
	r.Mount("/managers", members.ManagerRoutes())
	r.Mount("/instructors", members.InstructorRoutes())
	r.Mount("/trainees", members.TraineeRoutes())
	r.Mount("/workouts", workouts.SetupRoutes())
	r.Mount("/measurements", measurements.SetupRoutes())
	r.Mount("/billing", billing.SetupRoutes())
	r.Mount("/expenses", expenses.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
