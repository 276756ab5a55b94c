package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"freightdesk/config"
	"freightdesk/db"
	"freightdesk/db/mongo"
	"freightdesk/db/postgres"
	"freightdesk/engine"
	"freightdesk/handlers"
	"freightdesk/repository"
	"freightdesk/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var jobRepo repository.JobRepository
	var partyRepo repository.PartyRepository
	var refRepo repository.ReferenceRepository

	if !db.DBType(cfg.DBType).Supported() {
		logger.Fatal("DB_TYPE not supported", zap.String("db_type", cfg.DBType))
	}

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		// Run migrations (for Postgres)
		db.RunMigrations(cfg.PostgresURL, logger)

		pg := postgres.NewPostgresDB(cfg.PostgresURL, cfg.ConnectTimeout)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		jobRepo = repository.NewPostgresJobRepo(pg.Conn)
		partyRepo = repository.NewPostgresPartyRepo(pg.Conn)
		refRepo = repository.NewPostgresReferenceRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase, cfg.ConnectTimeout)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		jobRepo = repository.NewMongoJobRepo(mg.Database())
		partyRepo = repository.NewMongoPartyRepo(mg.Database())
		refRepo = repository.NewMongoReferenceRepo(mg.Database())
	}

	store := engine.NewStore()

	// Handlers
	sessionHandler := &handlers.SessionHandler{Store: store, JobRepo: jobRepo, RefRepo: refRepo, Cfg: cfg}
	jobHandler := &handlers.JobHandler{Repo: jobRepo}
	partyHandler := &handlers.PartyHandler{Store: store, Repo: partyRepo}
	referenceHandler := &handlers.ReferenceHandler{Repo: refRepo}

	// PDF handler with combined repository
	pdfRepo := &repository.PDFRepository{
		JobRepo:       jobRepo,
		ReferenceRepo: refRepo,
	}
	pdfHandler := &handlers.PDFHandler{Repo: pdfRepo, SavePath: cfg.PDFSavePath, Logger: logger}

	// Setup routes including PDF
	routes.SetupRoutes(logger, sessionHandler, jobHandler, partyHandler, referenceHandler, pdfHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
