package main

import (
	"go.uber.org/zap"

	"propsite_backend/internal/model"
	"propsite_backend/pkg/catalog"
	"propsite_backend/pkg/config"
	"propsite_backend/pkg/database"
	applog "propsite_backend/pkg/logger"
	"propsite_backend/pkg/seed"
)

func main() {
	cfg := config.Load()

	log, err := applog.Init(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := database.InitDB(cfg.Database.DSN()); err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	if err := database.MigrateDatabase(&model.Listing{}, &model.Enquiry{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	listings, err := catalog.FixtureListings()
	if err != nil {
		log.Fatal("could not read fixture listings", zap.Error(err))
	}

	if _, err := seed.SeedListings(database.GetDB(), listings); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}
