package db

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver           string
	SQLitePath       string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string
}

// Service owns the gorm handle. One logical session per request is checked
// out by callers via DB(); the handle lives for the whole process.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(cfg Config, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var (
		handle *gorm.DB
		err    error
	)
	switch cfg.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser,
			cfg.PostgresPassword,
			cfg.PostgresHost,
			cfg.PostgresPort,
			cfg.PostgresName,
		)
		handle, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	case DriverSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join("data", "legalease.db")
		}
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
			}
		}
		handle, err = gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog})
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		// Declared cascades only hold in SQLite with this on.
		if pragmaErr := handle.Exec("PRAGMA foreign_keys = ON").Error; pragmaErr != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", pragmaErr)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return &Service{db: handle, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running automigration")
	return s.db.AutoMigrate(
		&domain.Contract{},
		&domain.ContractAnalysis{},
		&domain.ContractClause{},
		&domain.DatasetClause{},
	)
}
