package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/leadfocus/internal/cache"
	"github.com/xavierca1/leadfocus/internal/infra/database"
	"github.com/xavierca1/leadfocus/internal/infra/http/handlers"
	"github.com/xavierca1/leadfocus/internal/infra/http/middleware"
	"github.com/xavierca1/leadfocus/internal/infra/queue"
	"github.com/xavierca1/leadfocus/internal/scoring"
	"github.com/xavierca1/leadfocus/internal/usecase"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to RabbitMQ")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	actionRepo := database.NewActionRepository(db)
	scoreRepo := database.NewScoreRepository(db)
	focusRepo := database.NewFocusRepository(db)

	// 2. Scoring pipeline
	engine := scoring.NewEngine(scoring.TargetProfile{
		Industries:   splitCSV(os.Getenv("TARGET_INDUSTRIES")),
		CompanySizes: splitCSV(os.Getenv("TARGET_COMPANY_SIZES")),
	})
	signals := scoring.NewSignalReader(leadRepo, actionRepo)
	scoreCache := cache.New(signals, engine, scoreRepo, envDuration("SCORE_CACHE_TTL", cache.DefaultTTL), log)

	// 3. Collaborators
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// 4. UseCases
	calculateUC := usecase.NewCalculatePriorityUseCase(leadRepo, scoreCache, log)
	trackUC := usecase.NewTrackActionUseCase(actionRepo, leadRepo, scoreCache, producer, log)
	focusUC := usecase.NewDailyFocusUseCase(
		leadRepo, actionRepo, focusRepo, scoreCache,
		envInt("FOCUS_LIST_SIZE", usecase.DefaultFocusListSize),
		time.Duration(envInt("FOCUS_COOLDOWN_DAYS", 7))*24*time.Hour,
		log,
	)

	// 5. Handlers
	priorityHandler := handlers.NewPriorityHandler(calculateUC)
	actionHandler := handlers.NewActionHandler(trackUC)
	focusHandler := handlers.NewFocusHandler(focusUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.UserIDHeader},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity)
		r.Post("/leads/{leadID}/priority", priorityHandler.Handle)
		r.Post("/actions", actionHandler.Handle)
		r.Get("/focus", focusHandler.Handle)
	})

	port := ":" + envOr("PORT", "8080")
	log.WithField("port", port).Info("lead focus engine listening")
	if err := http.ListenAndServe(port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
