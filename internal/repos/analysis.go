package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
)

type AnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analysis *domain.ContractAnalysis) (*domain.ContractAnalysis, error)
	GetLatestByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*domain.ContractAnalysis, error)
	ListByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*domain.ContractAnalysis, error)
	DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	return &analysisRepo{db: db, log: baseLog.With("repo", "AnalysisRepo")}
}

func (r *analysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *domain.ContractAnalysis) (*domain.ContractAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(analysis).Error; err != nil {
		return nil, err
	}
	return analysis, nil
}

// GetLatestByContractID returns (nil, nil) when the contract has no analyses.
// Ties on analysis_date break by id so retrieval stays deterministic.
func (r *analysisRepo) GetLatestByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*domain.ContractAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var analysis domain.ContractAnalysis
	err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("analysis_date DESC, id DESC").
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepo) ListByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*domain.ContractAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ContractAnalysis
	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("analysis_date ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analysisRepo) DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&domain.ContractAnalysis{}).Error; err != nil {
		return err
	}
	return nil
}
