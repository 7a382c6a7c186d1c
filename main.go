package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"water-monitor-system/config"
	"water-monitor-system/handlers"
	"water-monitor-system/logger"
	"water-monitor-system/notify"
	"water-monitor-system/services"
	"water-monitor-system/store"
	"water-monitor-system/utils"
	"water-monitor-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Not fatal, the environment may be set directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Env)

	// Cloud backend is optional. Without DATABASE_URL the service runs
	// entirely on the local demo store.
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		if err := db.AutoMigrate(
			&store.ProfileRow{},
			&store.ReportRow{},
			&store.QuizAttemptRow{},
			&store.SensorReadingRow{},
		); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate database")
		}
		logger.Info().Msg("cloud backend connected")
	} else {
		logger.Info().Str("dir", cfg.LocalDataDir).Msg("no DATABASE_URL, running on the local store")
	}

	local, err := store.OpenLocal(cfg.LocalDataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open local data dir")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	if ok, err := utils.InitR2(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize R2 client")
	} else if !ok {
		logger.Info().Msg("R2 not configured, report photos go to local disk")
	}

	hub := notify.NewHub()
	dataStore := store.New(db, local, rdb, hub)

	game := services.NewGamificationService(dataStore, hub)
	sensorService := services.NewSensorService(dataStore)
	reportService := services.NewReportService(dataStore, game)
	profileService := services.NewProfileService(dataStore)
	quizService := services.NewQuizService(dataStore, game)

	maintenance := services.NewMaintenanceService(db, dataStore)
	maintenance.StartScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SensorFeedURL != "" && db != nil {
		feedClient := workers.NewFeedSyncClient(db, cfg.SensorFeedURL, cfg.SensorFeedToken)
		go workers.PollFeed(ctx, feedClient, 5*time.Minute)
		logger.Info().Str("url", cfg.SensorFeedURL).Msg("sensor feed sync running")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // report photos
	})
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID, X-User-Name, X-User-Email",
	}))

	handlers.SetupSensorRoutes(app, sensorService)
	handlers.SetupReportRoutes(app, reportService)
	handlers.SetupProfileRoutes(app, profileService)
	handlers.SetupQuizRoutes(app, quizService)
	handlers.SetupGamificationRoutes(app, game)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	}()
	logger.Info().Str("port", cfg.Port).Msg("server running")

	<-ctx.Done()
	logger.Info().Msg("shutting down server")
	_ = app.Shutdown()
}
