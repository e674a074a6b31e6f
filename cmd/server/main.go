package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"propertyhub/server/config"
	"propertyhub/server/internal/api"
	"propertyhub/server/internal/database"
)

func main() {
	initDB := flag.Bool("init-db", false, "drop and recreate the database schema, then exit")
	seed := flag.Bool("seed", false, "insert sample data when the database is empty, then exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Optional .env file for development environments.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not configured")
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	ctx := context.Background()

	if *initDB {
		if err := db.Reset(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to initialize database schema")
		}
		logger.Info("Database schema initialized")
	}

	if *seed {
		if err := db.Seed(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to seed database")
		}
		logger.Info("Database seeded with sample data")
	}

	if *initDB || *seed {
		return
	}

	router := api.NewRouter(db, logger)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
