package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
)

type ContractRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contract *domain.Contract) (*domain.Contract, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.Contract, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SetProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, extractedText *string) error
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return &contractRepo{db: db, log: baseLog.With("repo", "ContractRepo")}
}

func (r *contractRepo) Create(ctx context.Context, tx *gorm.DB, contract *domain.Contract) (*domain.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

// GetByID returns (nil, nil) when no contract exists with the given id.
func (r *contractRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var contract domain.Contract
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Contract
	if err := transaction.WithContext(ctx).
		Order("upload_date ASC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contractRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Contract{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contractRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Contract{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *contractRepo) SetProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, extractedText *string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]interface{}{"processed": true}
	if extractedText != nil {
		updates["extracted_text"] = *extractedText
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Contract{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}
