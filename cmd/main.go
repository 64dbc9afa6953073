package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/studenthive/portal/internal/backend"
	"github.com/studenthive/portal/internal/config"
	"github.com/studenthive/portal/internal/database"
	"github.com/studenthive/portal/internal/guard"
	"github.com/studenthive/portal/internal/portal"
	"github.com/studenthive/portal/internal/session"
	"go.uber.org/zap"
	"moul.io/chizap"
)

func main() {
	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// load dotenv file
	if err := godotenv.Load(); err != nil {
		logger.Warn("failed to load .env file", zap.Error(err))
	}

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// load database
	db, err := database.Open(cfg.DbConfig)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// run migrations
	database.SetMigrationLogger(logger)
	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// session layer
	store := session.NewStore(session.NewRepo(db, logger), logger)

	// backend service clients
	svc := cfg.ServicesConfig
	authClient := backend.NewAuthClient(svc.AuthBaseURL, svc.ClientTimeout, logger)
	courseClient := backend.NewCourseClient(svc.CourseBaseURL, svc.ClientTimeout, logger)
	studentClient := backend.NewStudentClient(svc.StudentBaseURL, svc.ClientTimeout, logger)
	financeClient := backend.NewFinanceClient(svc.FinanceBaseURL, svc.ClientTimeout, logger)
	libraryClient := backend.NewLibraryClient(svc.LibraryBaseURL, svc.ClientTimeout, logger)

	// handlers
	authHandler := portal.NewAuthHandler(authClient, store, cfg.SessionConfig, logger)
	profileHandler := portal.NewProfileHandler(authClient, store, cfg.SessionConfig, logger)
	courseHandler := portal.NewCourseHandler(courseClient, studentClient, store, cfg.SessionConfig, logger)
	financeHandler := portal.NewFinanceHandler(financeClient, store, cfg.SessionConfig, logger)
	libraryHandler := portal.NewLibraryHandler(libraryClient, store, cfg.SessionConfig, logger)
	graduationHandler := portal.NewGraduationHandler(studentClient, courseClient, financeClient, store, cfg.SessionConfig, logger)
	navHandler := portal.NewNavHandler(logger)

	g := guard.New(store, cfg.SessionConfig.CookieName, logger)

	r := chi.NewRouter()
	r.Use(chizap.New(logger, &chizap.Opts{WithReferer: true, WithUserAgent: true}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(20, time.Minute))
		r.Mount("/", authHandler.Routes())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(g.RequireSession)
		r.Mount("/nav", navHandler.Routes())
		r.Mount("/profile", profileHandler.Routes())
		r.Mount("/courses", courseHandler.Routes())
		r.Mount("/finance", financeHandler.Routes())
		r.Mount("/library", libraryHandler.Routes())
		r.Mount("/graduation", graduationHandler.Routes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppConfig.Port,
		Handler:      r,
		ReadTimeout:  cfg.AppConfig.ReadTimeout,
		WriteTimeout: cfg.AppConfig.WriteTimeout,
		IdleTimeout:  cfg.AppConfig.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("application started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
