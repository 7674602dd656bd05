// main.go
package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bus-booking/cmd"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/event"
	"bus-booking/internal/hold"
	"bus-booking/internal/payment"
	"bus-booking/internal/usecase"
	"bus-booking/internal/wire"
	"bus-booking/migrations"
	"bus-booking/pkg/database"
	"bus-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Apply schema
	if config.Database.AutoMigrate {
		var source fs.FS = migrations.FS
		if config.Database.MigrationsPath != "" {
			source = os.DirFS(config.Database.MigrationsPath)
		}
		if err := database.Migrate(config.Database, source, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis for seat holds
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err = rdb.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", config.Redis.Addr))
	}

	// Booking events
	var events event.Publisher = event.NewLogPublisher(logger)
	if config.Kafka.Enabled {
		events = event.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Topic, logger)
		logger.Info("Publishing booking events to kafka",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.Topic))
	}
	defer events.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, usecase.Deps{
		Holds:   hold.NewStore(rdb, config.Booking.SeatHoldTTL, logger),
		Gateway: payment.NewMockGateway(config.Payment.Service, logger),
		Events:  events,
	}, config, logger)

	go app.Service.Sweeper.Run(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
