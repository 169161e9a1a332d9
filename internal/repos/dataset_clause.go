package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
)

// ClauseSearchFilter narrows a reference-dataset search. Zero-valued fields
// are not applied. Text is a substring match; type and level are exact.
type ClauseSearchFilter struct {
	SearchText string
	ClauseType string
	RiskLevel  string
	Limit      int
	Offset     int
}

type ValueCount struct {
	Value string `gorm:"column:value"`
	Count int64  `gorm:"column:count"`
}

type DatasetClauseRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, clauses []*domain.DatasetClause) ([]*domain.DatasetClause, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, source string) (*domain.DatasetClause, error)
	CountBySource(ctx context.Context, tx *gorm.DB, source string) (int64, error)
	Search(ctx context.Context, tx *gorm.DB, source string, filter ClauseSearchFilter) ([]*domain.DatasetClause, error)
	DeleteBySource(ctx context.Context, tx *gorm.DB, source string) error
	DistinctTypes(ctx context.Context, tx *gorm.DB, source string) ([]string, error)
	DistinctRiskLevels(ctx context.Context, tx *gorm.DB, source string) ([]string, error)
	CountByType(ctx context.Context, tx *gorm.DB, source string) ([]ValueCount, error)
	CountByRiskLevel(ctx context.Context, tx *gorm.DB, source string) ([]ValueCount, error)
}

type datasetClauseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetClauseRepo(db *gorm.DB, baseLog *logger.Logger) DatasetClauseRepo {
	return &datasetClauseRepo{db: db, log: baseLog.With("repo", "DatasetClauseRepo")}
}

func (r *datasetClauseRepo) CreateBatch(ctx context.Context, tx *gorm.DB, clauses []*domain.DatasetClause) ([]*domain.DatasetClause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clauses) == 0 {
		return []*domain.DatasetClause{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&clauses).Error; err != nil {
		return nil, err
	}
	return clauses, nil
}

// GetByID returns (nil, nil) when no clause with the given id carries the
// source tag.
func (r *datasetClauseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, source string) (*domain.DatasetClause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var clause domain.DatasetClause
	err := transaction.WithContext(ctx).
		Where("id = ? AND source_dataset = ?", id, source).
		First(&clause).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clause, nil
}

func (r *datasetClauseRepo) CountBySource(ctx context.Context, tx *gorm.DB, source string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.DatasetClause{}).
		Where("source_dataset = ?", source).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *datasetClauseRepo) Search(ctx context.Context, tx *gorm.DB, source string, filter ClauseSearchFilter) ([]*domain.DatasetClause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Model(&domain.DatasetClause{}).
		Where("source_dataset = ?", source)

	if filter.SearchText != "" {
		query = query.Where("text LIKE ?", "%"+filter.SearchText+"%")
	}
	if filter.ClauseType != "" {
		query = query.Where("clause_type = ?", filter.ClauseType)
	}
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", filter.RiskLevel)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var results []*domain.DatasetClause
	if err := query.Order("created_at ASC, id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *datasetClauseRepo) DeleteBySource(ctx context.Context, tx *gorm.DB, source string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("source_dataset = ?", source).
		Delete(&domain.DatasetClause{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *datasetClauseRepo) DistinctTypes(ctx context.Context, tx *gorm.DB, source string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var types []string
	if err := transaction.WithContext(ctx).
		Model(&domain.DatasetClause{}).
		Where("source_dataset = ?", source).
		Distinct("clause_type").
		Order("clause_type ASC").
		Pluck("clause_type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *datasetClauseRepo) DistinctRiskLevels(ctx context.Context, tx *gorm.DB, source string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var levels []string
	if err := transaction.WithContext(ctx).
		Model(&domain.DatasetClause{}).
		Where("source_dataset = ? AND risk_level <> ''", source).
		Distinct("risk_level").
		Order("risk_level ASC").
		Pluck("risk_level", &levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *datasetClauseRepo) CountByType(ctx context.Context, tx *gorm.DB, source string) ([]ValueCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []ValueCount
	if err := transaction.WithContext(ctx).
		Model(&domain.DatasetClause{}).
		Select("clause_type AS value, COUNT(*) AS count").
		Where("source_dataset = ?", source).
		Group("clause_type").
		Order("clause_type ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *datasetClauseRepo) CountByRiskLevel(ctx context.Context, tx *gorm.DB, source string) ([]ValueCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []ValueCount
	if err := transaction.WithContext(ctx).
		Model(&domain.DatasetClause{}).
		Select("risk_level AS value, COUNT(*) AS count").
		Where("source_dataset = ? AND risk_level <> ''", source).
		Group("risk_level").
		Order("risk_level ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
