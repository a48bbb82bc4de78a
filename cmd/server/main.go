package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/quizcraft/backend/internal/attempts"
	"github.com/quizcraft/backend/internal/auth"
	"github.com/quizcraft/backend/internal/database"
	"github.com/quizcraft/backend/internal/middleware"
	"github.com/quizcraft/backend/internal/questions"
	"github.com/quizcraft/backend/internal/ratings"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ratingStore := ratings.NewTiered(ratings.NewSQLStore(db))

	var attemptStore attempts.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		rs, err := attempts.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		attemptStore = rs
		log.Printf("[attempts] using redis at %s", addr)
	} else {
		attemptStore = attempts.NewMemoryStore()
		log.Println("[attempts] REDIS_ADDR not set, using in-memory store")
	}

	questionStore := questions.NewStore(db)
	quizService := questions.NewService(questionStore, ratingStore, ratings.NewSQLStore(db), attemptStore)
	quizHandler := questions.NewHandler(quizService)
	authHandler := auth.NewHandler(db)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/quizzes/start", quizHandler.StartQuiz).Methods("POST")
	protected.HandleFunc("/quizzes/{id}/answers", quizHandler.RecordAnswer).Methods("POST")
	protected.HandleFunc("/quizzes/{id}/submit", quizHandler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/questions/{id}", quizHandler.GetQuestion).Methods("GET")
	protected.HandleFunc("/ratings", quizHandler.GetRatings).Methods("GET")
	protected.HandleFunc("/ratings/breakdown", quizHandler.GetRatingBreakdown).Methods("GET")
	protected.HandleFunc("/admin/bank/stats", quizHandler.GetBankStats).Methods("GET")
	protected.HandleFunc("/admin/recalibrate", quizHandler.Recalibrate).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, c.Handler(r)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
