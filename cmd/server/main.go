package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	api "github.com/nlpds/nlpds-server/internal/api/http"
	"github.com/nlpds/nlpds-server/internal/auth"
	"github.com/nlpds/nlpds-server/internal/config"
	"github.com/nlpds/nlpds-server/internal/db"
	"github.com/nlpds/nlpds-server/internal/exam"
	"github.com/nlpds/nlpds-server/internal/grading"
	"github.com/nlpds/nlpds-server/internal/progress"
	"github.com/nlpds/nlpds-server/internal/storage"
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}

	// --- Question bank ---
	bank := exam.NewBank()
	if n, err := bank.LoadFile(cfg.BankPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.BankPath).Msg("question bank not loaded, starting empty")
	} else {
		log.Info().Int("questions", n).Str("path", cfg.BankPath).Msg("question bank loaded")
	}

	// --- Services ---
	evalOpts := []grading.Option{
		grading.WithWeights(cfg.KeywordWeight, cfg.JaccardWeight, cfg.MathWeight, cfg.LengthWeight),
		grading.WithMinAnswerLength(cfg.MinAnswerLength),
	}
	examSvc := exam.NewService(bank, exam.NewInMemoryStore(), evalOpts...)
	progressStore := progress.NewStore(dbh)
	users := auth.NewUserStore(dbh)
	authSvc := auth.NewService(cfg.AuthSecret)
	sessions := api.NewSessionHandlers(examSvc, progressStore, log)

	assets, err := storage.NewFSStore(cfg.AssetBasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("asset store")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/auth/register", api.RegisterHandler(users, authSvc))
	r.Post("/api/auth/login", api.LoginHandler(users, authSvc))

	// Protected API
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))

		pr.Get("/api/auth/me", api.MeHandler(users))

		pr.Get("/api/questions", api.ListQuestionsHandler(bank))
		pr.Get("/api/questions/{questionID}", api.GetQuestionHandler(bank))
		pr.Post("/api/questions/import", api.ImportQuestionsHandler(bank))
		pr.Get("/api/topics", api.TopicsHandler(bank))

		pr.Post("/api/evaluate", api.EvaluateHandler(bank, evalOpts...))
		pr.Post("/api/questions/{questionID}/hint", api.HintHandler(bank))

		pr.Post("/api/sessions", sessions.Start)
		pr.Get("/api/sessions/{sessionID}", sessions.Get)
		pr.Get("/api/sessions/{sessionID}/current", sessions.Current)
		pr.Post("/api/sessions/{sessionID}/answer", sessions.Answer)
		pr.Post("/api/sessions/{sessionID}/skip", sessions.Skip)
		pr.Post("/api/sessions/{sessionID}/hint", sessions.Hint)
		pr.Post("/api/sessions/{sessionID}/finish", sessions.Finish)

		pr.Post("/api/progress/answer", api.RecordAnswerHandler(progressStore))
		pr.Get("/api/progress/stats", api.StatsHandler(progressStore))
		pr.Get("/api/leaderboard", api.LeaderboardHandler(progressStore))
		pr.Get("/api/sync/events", api.SyncEventsHandler(progressStore))

		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, assets)
		})
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
