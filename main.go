package main

import (
	"context"
	"log"
	"time"

	"storefront/cmd"
	"storefront/internal/data/repository"
	"storefront/internal/wire"
	"storefront/pkg/database"
	"storefront/pkg/mailer"
	"storefront/pkg/presence"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	infra := wire.Infra{
		DB:     db,
		Mailer: newMailer(config, logger),
		Tokens: utils.NewTokenManager(config.JWT.Secret, config.App.Name, config.JWT.TTL()),
	}

	if config.Redis.Addr != "" {
		tracker, err := presence.NewRedisTracker(config.Redis.Addr, config.Redis.Password, config.Redis.DB, config.Presence.Window())
		if err != nil {
			logger.Warn("Redis unavailable, presence falls back to last_active_at", zap.Error(err))
		} else {
			defer tracker.Close()
			infra.Presence = tracker
			logger.Info("Presence tracking via redis", zap.String("addr", config.Redis.Addr))
		}
	}

	app := wire.Wiring(repos, infra, config, logger)

	if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin.Email, config.Admin.Password); err != nil {
		logger.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

func newMailer(config *utils.Config, logger *zap.Logger) mailer.Sender {
	if !config.Email.Enabled() {
		logger.Warn("SMTP_HOST not set, order emails are logged instead of sent")
		return mailer.NewLogSender(logger)
	}
	return mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     config.Email.Host,
		Port:     config.Email.Port,
		User:     config.Email.User,
		Password: config.Email.Password,
		From:     config.Email.From,
	}, logger)
}
