package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/kampki/lifeofki/backend/config"
	"github.com/kampki/lifeofki/backend/internal/database"
	"github.com/kampki/lifeofki/backend/internal/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the .sql migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogFile)
	defer zlog.Sync()

	db, err := database.New(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.RunMigrations(db, *dir, zlog); err != nil {
		zlog.Fatal("migrations failed", zap.Error(err))
	}
	zlog.Info("migrations applied", zap.String("dir", *dir))
}
