package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"biopay/internal/config"
	"biopay/internal/handler"
	"biopay/internal/repository"
	"biopay/internal/service"
	"biopay/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logger := cfg.NewLogger()
	logger.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance:", err)
	}

	// SQLite allows one writer at a time.
	sqlDB.SetMaxOpenConns(1)

	blobStore, err := repository.NewGormBlobStore(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create blob store")
	}
	snapshotRepo := repository.NewBlobSnapshotRepository(blobStore, logger)

	workspace := service.NewWorkspace(snapshotRepo, logger, service.Options{
		LoginPin: cfg.LoginPin,
		TaxRate:  cfg.DefaultTaxRate,
		Seed:     cfg.SeedDemoData,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workspace.Load(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to load workspace")
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.BotDebug)
	if err != nil {
		logger.Fatal("Failed to create Telegram client:", err)
	}

	logger.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client, workspace, logger)

	updates := client.Updates()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(updates)
		close(done)
	}()

	logger.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Stop()
	<-done

	if err := sqlDB.Close(); err != nil {
		logger.Infof("Error closing database: %v", err)
	}

	logger.Info("Bot stopped gracefully")
}
