// Command seed loads the sample venues, artists and shows into the
// configured database.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur-booking/internal/config"
	"github.com/iliyamo/fyyur-booking/internal/database"
	"github.com/iliyamo/fyyur-booking/internal/logging"
	"github.com/iliyamo/fyyur-booking/internal/seed"
	"github.com/iliyamo/fyyur-booking/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	res, err := seed.Load(context.Background(), service.NewDirectory(db, service.WithLogger(logger)))
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}
	logger.Info("seeded",
		zap.Int("venues", len(res.VenueIDs)),
		zap.Int("artists", len(res.ArtistIDs)),
		zap.Int("shows", len(res.ShowIDs)),
	)
}
