package app

import (
	"log"

	"github.com/omkar-s8203/pune-home-circle/internal/config"
	"github.com/omkar-s8203/pune-home-circle/internal/database"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
	"github.com/omkar-s8203/pune-home-circle/internal/storage"
)

// App wires the dependency graph: database, object store, repositories,
// services. It terminates the process when a backing store is unreachable;
// there is no degraded mode to run in.
func App(cfg *config.Config) (*database.DB, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	store, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("could not initialize object storage: %v", err)
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store)

	return db, services
}
