package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/apierr"
	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/repos"
	"github.com/legalease/backend/internal/storage"
)

type ContractService interface {
	Upload(ctx context.Context, originalName string, file io.Reader) (*domain.Contract, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Contract, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkProcessed(ctx context.Context, id uuid.UUID, extractedText *string) error
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	fileStore    storage.FileStore
	contractRepo repos.ContractRepo
	analysisRepo repos.AnalysisRepo
	clauseRepo   repos.ClauseRepo
}

func NewContractService(
	db *gorm.DB,
	baseLog *logger.Logger,
	fileStore storage.FileStore,
	contractRepo repos.ContractRepo,
	analysisRepo repos.AnalysisRepo,
	clauseRepo repos.ClauseRepo,
) ContractService {
	return &contractService{
		db:           db,
		log:          baseLog.With("service", "ContractService"),
		fileStore:    fileStore,
		contractRepo: contractRepo,
		analysisRepo: analysisRepo,
		clauseRepo:   clauseRepo,
	}
}

// Upload stores the file bytes under a generated collision-free name, then
// inserts the contract row. The file is written before the row commits; if
// the insert fails the stored file is left behind (known gap, logged).
func (s *contractService) Upload(ctx context.Context, originalName string, file io.Reader) (*domain.Contract, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	storageName := fmt.Sprintf("%s.%s", uuid.New(), ext)

	size, err := s.fileStore.Save(ctx, storageName, file)
	if err != nil {
		return nil, apierr.Internal("file_store_failed", err)
	}

	contract := &domain.Contract{
		Filename:         storageName,
		OriginalFilename: originalName,
		FilePath:         s.fileStore.Path(storageName),
		FileSize:         size,
		FileType:         ext,
		UploadDate:       time.Now().UTC(),
		Processed:        false,
	}

	if _, err := s.contractRepo.Create(ctx, nil, contract); err != nil {
		s.log.Error("Contract insert failed after file write, stored file orphaned",
			"error", err,
			"storage_name", storageName,
		)
		return nil, apierr.Internal("contract_insert_failed", err)
	}

	s.log.Info("Contract uploaded",
		"contract_id", contract.ID,
		"original_filename", originalName,
		"file_size", size,
	)
	return contract, nil
}

func (s *contractService) List(ctx context.Context, skip, limit int) ([]*domain.Contract, error) {
	contracts, err := s.contractRepo.List(ctx, nil, skip, limit)
	if err != nil {
		return nil, apierr.Internal("contract_list_failed", err)
	}
	return contracts, nil
}

func (s *contractService) Count(ctx context.Context) (int64, error) {
	count, err := s.contractRepo.Count(ctx, nil)
	if err != nil {
		return 0, apierr.Internal("contract_count_failed", err)
	}
	return count, nil
}

// GetByID returns the contract with its analyses attached.
func (s *contractService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal("contract_lookup_failed", err)
	}
	if contract == nil {
		return nil, apierr.NotFoundf("contract_not_found", "contract %s not found", id)
	}

	analyses, err := s.analysisRepo.ListByContractID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal("analysis_lookup_failed", err)
	}
	contract.Analyses = make([]domain.ContractAnalysis, 0, len(analyses))
	for _, a := range analyses {
		contract.Analyses = append(contract.Analyses, *a)
	}
	return contract, nil
}

// Delete removes the stored file, then deletes the contract row and its
// dependent analyses and clauses in one transaction. A file-removal failure
// is logged, not fatal.
func (s *contractService) Delete(ctx context.Context, id uuid.UUID) error {
	contract, err := s.contractRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.Internal("contract_lookup_failed", err)
	}
	if contract == nil {
		return apierr.NotFoundf("contract_not_found", "contract %s not found", id)
	}

	if err := s.fileStore.Delete(ctx, contract.Filename); err != nil {
		s.log.Warn("Could not delete stored file, continuing",
			"error", err,
			"contract_id", id,
			"storage_name", contract.Filename,
		)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if txErr := s.clauseRepo.DeleteByContractID(ctx, tx, id); txErr != nil {
			return fmt.Errorf("delete clauses: %w", txErr)
		}
		if txErr := s.analysisRepo.DeleteByContractID(ctx, tx, id); txErr != nil {
			return fmt.Errorf("delete analyses: %w", txErr)
		}
		if txErr := s.contractRepo.DeleteByID(ctx, tx, id); txErr != nil {
			return fmt.Errorf("delete contract: %w", txErr)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Contract delete failed", "error", err, "contract_id", id)
		return apierr.Internal("contract_delete_failed", err)
	}

	s.log.Info("Contract deleted", "contract_id", id)
	return nil
}

func (s *contractService) MarkProcessed(ctx context.Context, id uuid.UUID, extractedText *string) error {
	contract, err := s.contractRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.Internal("contract_lookup_failed", err)
	}
	if contract == nil {
		return apierr.NotFoundf("contract_not_found", "contract %s not found", id)
	}

	if err := s.contractRepo.SetProcessed(ctx, nil, id, extractedText); err != nil {
		return apierr.Internal("contract_update_failed", err)
	}
	return nil
}
