package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"move-booking/internal/api"
	"move-booking/internal/api/middleware"
	"move-booking/internal/config"
	"move-booking/internal/database"
	"move-booking/internal/events"
	"move-booking/internal/modules/bookings"
	"move-booking/internal/modules/draft"
	"move-booking/internal/modules/profile"
	"move-booking/internal/modules/routing"
	"move-booking/internal/modules/vehicles"
	"move-booking/pkg/email"
	"move-booking/pkg/logger"
	"move-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. --- Configuration & Logging ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	// 2. --- Database Connection ---
	if cfg.RunMigrations {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			zl.Fatal("Unable to apply migrations", zap.Error(err))
		}
		zl.Info("Database migrations applied")
	}

	dbPool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer dbPool.Close()
	zl.Info("Successfully connected to the database!")

	// 3. --- Optional collaborators ---
	var routeCache routing.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Warn("Redis unavailable, route cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			routeCache = routing.NewRedisCache(rdb)
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NSQAddr != "" {
		p, err := events.NewNSQPublisher(cfg.NSQAddr, cfg.NSQTopic)
		if err != nil {
			zl.Fatal("Unable to connect to NSQ", zap.Error(err))
		}
		defer p.Stop()
		publisher = p
	}

	var mailer email.ServiceInterface
	var templates *email.TemplateManager
	if cfg.SESFromEmail != "" {
		sender, err := email.NewSESV2Sender(ctx, cfg.AWSRegion, cfg.SESFromEmail, zl)
		if err != nil {
			zl.Fatal("Unable to configure SES", zap.Error(err))
		}
		if templates, err = email.NewTemplateManager(); err != nil {
			zl.Fatal("Unable to parse email templates", zap.Error(err))
		}
		mailer = sender
	} else {
		zl.Info("SES_FROM_EMAIL not set, confirmation emails disabled")
	}

	// 4. --- Dependency Injection (Wiring everything up) ---
	// --- Vehicles Module ---
	vehicleRepo := vehicles.NewRepository(dbPool)
	vehicleService := vehicles.NewService(vehicleRepo)
	vehicleHandler := vehicles.NewHandler(vehicleService)

	// --- Routing Module ---
	directions := routing.NewDirectionsClient(cfg.MapsBaseURL, cfg.MapsAPIKey, &http.Client{Timeout: 10 * time.Second})
	routeService := routing.NewService(directions, routeCache, cfg.RouteCacheTTL, zl)

	// --- Bookings Module ---
	drafts := draft.NewRegistry()
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go drafts.RunSweeper(sweepCtx, cfg.DraftSweepInterval, cfg.DraftIdleTTL, zl)

	bookingService := bookings.NewService(bookings.Deps{
		Drafts:    drafts,
		Repo:      bookings.NewRepository(dbPool),
		Vehicles:  vehicleService,
		Routes:    routeService,
		Mailer:    mailer,
		Templates: templates,
		Publisher: publisher,
		Logger:    zl,
	})
	bookingHandler := bookings.NewHandler(bookingService)

	// --- Profile Module ---
	profileService := profile.NewService(profile.NewRepository(dbPool), bookingService, zl)
	profileHandler := profile.NewHandler(profileService)

	// 5. --- Echo & Middleware ---
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.GetValidator()
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(zl))
	e.Use(middleware.ContextLogger(zl))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	api.SetupRoutes(e, api.Handlers{
		Vehicles: vehicleHandler,
		Bookings: bookingHandler,
		Profile:  profileHandler,
	}, cfg.JWTSecret, zl)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("shutting down the server an error occurred", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exiting")
}
