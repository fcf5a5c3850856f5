package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shift-manager/internal/calendar"
	"shift-manager/internal/config"
	"shift-manager/internal/handler"
	"shift-manager/internal/repository"
	"shift-manager/internal/service"
	"shift-manager/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite limitation
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	templateRepo, err := repository.NewGormShiftTemplateRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create shift template repository")
	}

	assignmentRepo, err := repository.NewGormAssignmentRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create assignment repository")
	}

	settingsRepo, err := repository.NewGormSettingsRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create settings repository")
	}

	gateway := calendar.NewICSStore(cfg.CalendarPath)

	catalogService := service.NewShiftCatalogService(templateRepo)
	ledgerService := service.NewAssignmentLedgerService(assignmentRepo, catalogService)
	settingsService := service.NewSettingsService(settingsRepo)

	reconcileService := service.NewReconcileService(
		catalogService,
		ledgerService,
		gateway,
		service.ReconcileOptions{
			WindowDays:   cfg.SyncWindowDays,
			PurgeOrphans: cfg.PurgeOrphans,
		},
	)

	client, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		catalogService,
		ledgerService,
		reconcileService,
		settingsService,
		gateway,
		cfg,
	)

	// Background pull keeps the ledger in step with edits made to the
	// calendar by other applications.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SyncCron, func() {
		if err := reconcileService.Sync(context.Background()); err != nil {
			logrus.WithError(err).Error("Scheduled calendar sync failed")
		}
	}); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule calendar sync")
	}
	scheduler.Start()

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	scheduler.Stop()

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
