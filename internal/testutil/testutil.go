package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
)

// NewTestDB opens an isolated SQLite database under the test's temp dir and
// migrates the full schema.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		tb.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Contract{},
		&domain.ContractAnalysis{},
		&domain.ContractClause{},
		&domain.DatasetClause{},
	); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return db
}

func NewTestLogger(tb testing.TB) *logger.Logger {
	tb.Helper()

	log, err := logger.New("development")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}
