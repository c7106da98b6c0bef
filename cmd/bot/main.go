package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"wordle-tracker/internal/bot"
	"wordle-tracker/internal/config"
	"wordle-tracker/internal/db"
	"wordle-tracker/internal/logging"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	if err := logging.InitFromEnv(); err != nil {
		log.Fatalf("failed to initialise logging: %v", err)
	}
	cfg := config.Load()
	if cfg.DiscordToken == "" {
		logging.L().Fatal("DISCORD_TOKEN is not set")
	}

	conn, err := db.Open()
	if err != nil {
		logging.L().Fatal("database connection failed", zap.Error(err))
	}
	if err := db.ConfigurePool(conn, db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second,
	}); err != nil {
		logging.L().Fatal("configuring connection pool failed", zap.Error(err))
	}
	if err := db.Migrate(conn); err != nil {
		logging.L().Fatal("database migration failed", zap.Error(err))
	}
	logging.L().Info("database ready")

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logging.L().Fatal("creating Discord session failed", zap.Error(err))
	}

	tracker := bot.New(session, conn, cfg)
	if err := tracker.Start(); err != nil {
		logging.L().Fatal("opening Discord gateway failed", zap.Error(err))
	}
	defer tracker.Close()

	logging.L().Info("wordle tracker running")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logging.L().Info("shutting down")
}
