package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/config"
	"github.com/classcheck/classcheck-api/internal/domain/auth"
	"github.com/classcheck/classcheck-api/internal/domain/report"
	"github.com/classcheck/classcheck-api/internal/domain/room"
	"github.com/classcheck/classcheck-api/internal/domain/schedule"
	"github.com/classcheck/classcheck-api/internal/domain/search"
	"github.com/classcheck/classcheck-api/internal/domain/user"
	"github.com/classcheck/classcheck-api/internal/middleware"
	"github.com/classcheck/classcheck-api/internal/pkg/database"
	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
	"github.com/classcheck/classcheck-api/internal/pkg/jwt"
	"github.com/classcheck/classcheck-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting ClassCheck API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	aiClient := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.GeminiTimeout,
	})
	if !aiClient.Enabled() {
		log.Warn().Msg("GEMINI_API_KEY not set, natural-language features disabled")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	roomRepo := room.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	reportRepo := report.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService)

	statusCache := room.NewStatusCache(redisClient)
	roomService := room.NewService(roomRepo, &roomScheduleAdapter{repo: scheduleRepo}, statusCache)

	roomChecker := &roomExistsAdapter{repo: roomRepo}
	scheduleService := schedule.NewService(scheduleRepo, roomChecker)
	reportService := report.NewService(reportRepo, roomChecker, aiClient)
	searchService := search.NewService(roomService, &roomScheduleAdapter{repo: scheduleRepo}, aiClient)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	roomHandler := room.NewHandler(roomService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	parseHandler := schedule.NewParseHandler(aiClient)
	reportHandler := report.NewHandler(reportService)
	searchHandler := search.NewHandler(searchService)

	// ---------- Status poller ----------
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go room.NewPoller(roomService, cfg.StatusRefreshInterval).Run(pollerCtx)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			response.OK(w, map[string]string{"message": "pong"})
		})
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/rooms", room.Routes(roomHandler, jwtService,
			schedule.RoomRoutes(scheduleHandler, jwtService),
			report.RoomRoutes(reportHandler, jwtService),
		))
		r.Mount("/reservations", schedule.Routes(scheduleHandler, jwtService))
		r.Mount("/schedule", schedule.ParseRoutes(parseHandler, jwtService))
		r.Mount("/reports", report.Routes(reportHandler, jwtService))
		r.Mount("/search", search.Routes(searchHandler))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// Adapter implementations to bridge interface mismatches

// roomScheduleAdapter exposes the schedule repository as the entry
// source the room and search domains resolve statuses from.
type roomScheduleAdapter struct {
	repo schedule.Repository
}

func (a *roomScheduleAdapter) EntriesFor(ctx context.Context, roomID uuid.UUID, day string) ([]room.ScheduleEntry, error) {
	reservations, err := a.repo.ListByRoomAndDay(ctx, roomID, day)
	if err != nil {
		return nil, err
	}
	entries := make([]room.ScheduleEntry, 0, len(reservations))
	for _, res := range reservations {
		entries = append(entries, room.ScheduleEntry{
			ID:        res.ID,
			Subject:   res.Subject,
			Professor: res.Professor,
			StartTime: res.StartTime,
			EndTime:   res.EndTime,
		})
	}
	return entries, nil
}

// roomExistsAdapter answers existence checks from the schedule and
// report domains without coupling them to the room package's types.
type roomExistsAdapter struct {
	repo room.Repository
}

func (a *roomExistsAdapter) Exists(ctx context.Context, roomID uuid.UUID) (bool, error) {
	r, err := a.repo.GetByID(ctx, roomID)
	if err != nil {
		return false, err
	}
	return r != nil, nil
}
