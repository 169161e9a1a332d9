package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/apierr"
	"github.com/legalease/backend/internal/repos"
	"github.com/legalease/backend/internal/storage"
	"github.com/legalease/backend/internal/testutil"
)

type contractFixture struct {
	db        *gorm.DB
	uploadDir string
	contracts ContractService
	analyses  AnalysisService
}

func newContractFixture(t *testing.T) *contractFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger(t)
	uploadDir := t.TempDir()

	store, err := storage.NewLocalStore(uploadDir, log)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	contractRepo := repos.NewContractRepo(db, log)
	analysisRepo := repos.NewAnalysisRepo(db, log)
	clauseRepo := repos.NewClauseRepo(db, log)

	return &contractFixture{
		db:        db,
		uploadDir: uploadDir,
		contracts: NewContractService(db, log, store, contractRepo, analysisRepo, clauseRepo),
		analyses:  NewAnalysisService(db, log, NewFixedAnalyzer(), contractRepo, analysisRepo, clauseRepo),
	}
}

func TestUploadStoresFileAndRow(t *testing.T) {
	f := newContractFixture(t)
	ctx := context.Background()
	content := "some contract bytes"

	contract, err := f.contracts.Upload(ctx, "offer letter.pdf", strings.NewReader(content))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if contract.Filename == "offer letter.pdf" {
		t.Fatal("generated filename must differ from the original")
	}
	if contract.OriginalFilename != "offer letter.pdf" {
		t.Fatalf("original filename = %q", contract.OriginalFilename)
	}
	if contract.FileType != "pdf" {
		t.Fatalf("file type = %q, want pdf", contract.FileType)
	}
	if contract.FileSize != int64(len(content)) {
		t.Fatalf("file size = %d, want %d", contract.FileSize, len(content))
	}
	if contract.Processed {
		t.Fatal("new contract must start unprocessed")
	}

	info, err := os.Stat(filepath.Join(f.uploadDir, contract.Filename))
	if err != nil {
		t.Fatalf("stat stored file: %v", err)
	}
	if info.Size() != contract.FileSize {
		t.Fatalf("stored file size = %d, want %d", info.Size(), contract.FileSize)
	}

	var count int64
	if err := f.db.Model(&domain.Contract{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("contract rows = %d, want 1", count)
	}
}

func TestUploadGeneratedNamesDoNotCollide(t *testing.T) {
	f := newContractFixture(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		contract, err := f.contracts.Upload(ctx, "same.txt", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
		if seen[contract.Filename] {
			t.Fatalf("storage name %q generated twice", contract.Filename)
		}
		seen[contract.Filename] = true
	}
}

// failingContractRepo forces the insert step to fail after the file write.
type failingContractRepo struct {
	repos.ContractRepo
}

func (r *failingContractRepo) Create(ctx context.Context, tx *gorm.DB, contract *domain.Contract) (*domain.Contract, error) {
	return nil, fmt.Errorf("forced insert failure")
}

func TestUploadInsertFailureLeavesNoRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger(t)
	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir, log)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	svc := NewContractService(
		db,
		log,
		store,
		&failingContractRepo{ContractRepo: repos.NewContractRepo(db, log)},
		repos.NewAnalysisRepo(db, log),
		repos.NewClauseRepo(db, log),
	)

	_, err = svc.Upload(context.Background(), "doc.pdf", strings.NewReader("payload"))
	if err == nil {
		t.Fatal("upload must fail when the insert fails")
	}

	var count int64
	if err := db.Model(&domain.Contract{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("contract rows = %d, want 0", count)
	}

	// The stored file is intentionally not cleaned up (known gap).
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("orphaned files = %d, want 1", len(entries))
	}
}

func TestDeleteCascadesAndSecondDeleteIsNotFound(t *testing.T) {
	f := newContractFixture(t)
	ctx := context.Background()

	contract, err := f.contracts.Upload(ctx, "a.pdf", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := f.analyses.Analyze(ctx, contract.ID, "full"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if err := f.contracts.Delete(ctx, contract.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"contract", &domain.Contract{}},
		{"analysis", &domain.ContractAnalysis{}},
		{"clause", &domain.ContractClause{}},
	} {
		var count int64
		if err := f.db.Model(check.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s rows: %v", check.name, err)
		}
		if count != 0 {
			t.Fatalf("%s rows after delete = %d, want 0", check.name, count)
		}
	}

	if _, err := os.Stat(filepath.Join(f.uploadDir, contract.Filename)); !os.IsNotExist(err) {
		t.Fatalf("stored file still present after delete (err=%v)", err)
	}

	err = f.contracts.Delete(ctx, contract.ID)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("second delete: err = %v, want 404 api error", err)
	}
}

func TestListPaginationCoversEveryContractOnce(t *testing.T) {
	f := newContractFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := f.contracts.Upload(ctx, fmt.Sprintf("c%d.txt", i), strings.NewReader("x")); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	seen := map[uuid.UUID]int{}
	pageSize := 2
	for skip := 0; skip < 6; skip += pageSize {
		page, err := f.contracts.List(ctx, skip, pageSize)
		if err != nil {
			t.Fatalf("list skip=%d: %v", skip, err)
		}
		if len(page) > pageSize {
			t.Fatalf("page at skip=%d has %d items, limit %d", skip, len(page), pageSize)
		}
		for _, contract := range page {
			seen[contract.ID]++
		}
	}

	if len(seen) != 5 {
		t.Fatalf("pages covered %d distinct contracts, want 5", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("contract %s appeared %d times across pages", id, n)
		}
	}

	total, err := f.contracts.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 5 {
		t.Fatalf("count = %d, want 5", total)
	}
}

func TestMarkProcessed(t *testing.T) {
	f := newContractFixture(t)
	ctx := context.Background()

	contract, err := f.contracts.Upload(ctx, "b.txt", strings.NewReader("text"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	extracted := "the extracted text"
	if err := f.contracts.MarkProcessed(ctx, contract.ID, &extracted); err != nil {
		t.Fatalf("mark processed: %v", err)
	}

	got, err := f.contracts.GetByID(ctx, contract.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Processed {
		t.Fatal("contract not marked processed")
	}
	if got.ExtractedText == nil || *got.ExtractedText != extracted {
		t.Fatalf("extracted text = %v, want %q", got.ExtractedText, extracted)
	}

	err = f.contracts.MarkProcessed(ctx, uuid.New(), nil)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("mark processed unknown id: err = %v, want 404 api error", err)
	}
}

func TestGetByIDIncludesAnalyses(t *testing.T) {
	f := newContractFixture(t)
	ctx := context.Background()

	contract, err := f.contracts.Upload(ctx, "c.pdf", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := f.analyses.Analyze(ctx, contract.ID, "full"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := f.analyses.Analyze(ctx, contract.ID, "quick"); err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	got, err := f.contracts.GetByID(ctx, contract.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Analyses) != 2 {
		t.Fatalf("analyses attached = %d, want 2", len(got.Analyses))
	}
}
