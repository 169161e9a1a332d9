package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/db"
	"github.com/legalease/backend/internal/handlers"
	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/repos"
	"github.com/legalease/backend/internal/server"
	"github.com/legalease/backend/internal/services"
	"github.com/legalease/backend/internal/storage"
)

type Repos struct {
	Contract      repos.ContractRepo
	Analysis      repos.AnalysisRepo
	Clause        repos.ClauseRepo
	DatasetClause repos.DatasetClauseRepo
}

type Services struct {
	Contract services.ContractService
	Analysis services.AnalysisService
	Dataset  services.DatasetService
}

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Config (including a YAML overlay) may settle on a different log mode
	// than the bootstrap logger was built with.
	log, err = resolveLogger(log, logMode, cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbService, err := db.NewService(db.Config{
		Driver:           cfg.DBDriver,
		SQLitePath:       cfg.SQLitePath,
		PostgresHost:     cfg.PostgresHost,
		PostgresPort:     cfg.PostgresPort,
		PostgresUser:     cfg.PostgresUser,
		PostgresPassword: cfg.PostgresPassword,
		PostgresName:     cfg.PostgresName,
	}, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	fileStore, err := storage.New(storage.Config{
		Mode:      storage.Mode(cfg.StorageMode),
		UploadDir: cfg.UploadDir,
		GCSBucket: cfg.GCSBucket,
	}, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init file store: %w", err)
	}

	reposet := Repos{
		Contract:      repos.NewContractRepo(theDB, log),
		Analysis:      repos.NewAnalysisRepo(theDB, log),
		Clause:        repos.NewClauseRepo(theDB, log),
		DatasetClause: repos.NewDatasetClauseRepo(theDB, log),
	}

	serviceset := Services{
		Contract: services.NewContractService(theDB, log, fileStore, reposet.Contract, reposet.Analysis, reposet.Clause),
		Analysis: services.NewAnalysisService(theDB, log, services.NewFixedAnalyzer(), reposet.Contract, reposet.Analysis, reposet.Clause),
		Dataset:  services.NewDatasetService(theDB, log, reposet.DatasetClause),
	}

	router := server.NewRouter(server.RouterConfig{
		ContractHandler: handlers.NewContractHandler(log, serviceset.Contract, cfg.MaxUploadBytes),
		AnalysisHandler: handlers.NewAnalysisHandler(log, serviceset.Analysis),
		DatasetHandler:  handlers.NewDatasetHandler(log, serviceset.Dataset),
		CORSOrigins:     cfg.CORSOrigins,
		ServiceVersion:  cfg.ServiceVersion,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

// resolveLogger rebuilds the logger when the configured mode differs from
// the mode the bootstrap logger was built with.
func resolveLogger(bootstrap *logger.Logger, bootstrapMode, cfgMode string) (*logger.Logger, error) {
	if cfgMode == "" || cfgMode == bootstrapMode {
		return bootstrap, nil
	}
	rebuilt, err := logger.New(cfgMode)
	if err != nil {
		bootstrap.Sync()
		return nil, err
	}
	bootstrap.Sync()
	return rebuilt, nil
}

// LoadDataset runs the idempotent reference-dataset load. The caller
// decides whether a failure aborts startup or the server continues
// degraded.
func (a *App) LoadDataset(ctx context.Context) error {
	if !a.Cfg.DatasetAutoload {
		a.Log.Info("Dataset autoload disabled")
		return nil
	}
	return a.Services.Dataset.Load(ctx)
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
