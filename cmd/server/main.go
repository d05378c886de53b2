package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tutordesk/docs" // swagger docs
	"tutordesk/internal/auth"
	"tutordesk/internal/cache"
	"tutordesk/internal/config"
	"tutordesk/internal/db"
	"tutordesk/internal/handler"
	"tutordesk/internal/logger"
	"tutordesk/internal/metrics"
	"tutordesk/internal/repository"
	"tutordesk/internal/router"
	"tutordesk/internal/service"
	"tutordesk/internal/telemetry"
	"tutordesk/internal/web"
)

// @title Tutordesk API
// @version 1.0
// @description Tutoring dashboard API for teachers, parents and admins with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	hostname, _ := os.Hostname()
	reporter := logger.NewReporter(cfg.RollbarToken, cfg.Env, hostname)
	defer reporter.Close()

	ctx := context.Background()
	shutdownTracing := telemetry.Setup(ctx, log, "tutordesk", cfg.OTLPEndpoint, cfg.OTLPInsecure)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB set, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, caching disabled until it returns")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	parentService := service.NewParentService(userRepo, studentRepo, cacheClient)
	studentService := service.NewStudentService(studentRepo, userRepo, cacheClient)
	sessionService := service.NewSessionService(sessionRepo, studentRepo)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	secure := cfg.IsProduction()
	router.Register(e, cfg, router.Deps{
		Log:        log,
		Reporter:   reporter,
		Metrics:    metrics.New(),
		JWT:        jwtService,
		TokenStore: tokenStore,
		Ready: func(c echo.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(c.Request().Context())
		},
	}, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, secure),
		User:    handler.NewUserHandler(userService),
		Parent:  handler.NewParentHandler(parentService),
		Student: handler.NewStudentHandler(studentService),
		Session: handler.NewSessionHandler(sessionService),
		Web: web.NewHandler(
			web.NewCookieStore(cfg.SessionSecret, secure),
			authService,
			parentService,
			studentService,
			sessionService,
			log,
		),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      otelhttp.NewHandler(e, "tutordesk"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("swagger", "/swagger/index.html").Msg("tutordesk listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
