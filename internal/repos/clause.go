package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
)

type ClauseRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, clauses []*domain.ContractClause) ([]*domain.ContractClause, error)
	GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*domain.ContractClause, error)
	DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error
}

type clauseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClauseRepo(db *gorm.DB, baseLog *logger.Logger) ClauseRepo {
	return &clauseRepo{db: db, log: baseLog.With("repo", "ClauseRepo")}
}

func (r *clauseRepo) CreateBatch(ctx context.Context, tx *gorm.DB, clauses []*domain.ContractClause) ([]*domain.ContractClause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clauses) == 0 {
		return []*domain.ContractClause{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&clauses).Error; err != nil {
		return nil, err
	}
	return clauses, nil
}

func (r *clauseRepo) GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*domain.ContractClause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ContractClause
	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *clauseRepo) DeleteByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&domain.ContractClause{}).Error; err != nil {
		return err
	}
	return nil
}
