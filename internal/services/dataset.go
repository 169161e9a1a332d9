package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/apierr"
	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/repos"
)

// ClauseSearchParams narrows a reference-dataset search. Unset filters are
// not applied.
type ClauseSearchParams struct {
	SearchText string
	ClauseType string
	RiskLevel  string
	Limit      int
	Offset     int
}

type DatasetService interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, params ClauseSearchParams) ([]*domain.DatasetClause, error)
	GetClause(ctx context.Context, id uuid.UUID) (*domain.DatasetClause, error)
	ClauseTypes(ctx context.Context) ([]string, error)
	RiskLevels(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*DatasetStats, error)
}

type datasetService struct {
	db         *gorm.DB
	log        *logger.Logger
	clauseRepo repos.DatasetClauseRepo
}

func NewDatasetService(db *gorm.DB, baseLog *logger.Logger, clauseRepo repos.DatasetClauseRepo) DatasetService {
	return &datasetService{
		db:         db,
		log:        baseLog.With("service", "DatasetService"),
		clauseRepo: clauseRepo,
	}
}

// Load inserts the sample clause set once. If any reference-tagged row
// already exists it is a no-op; repeated startups never duplicate rows.
// Note the check-then-insert is not safe against concurrent callers.
func (s *datasetService) Load(ctx context.Context) error {
	count, err := s.clauseRepo.CountBySource(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return apierr.Internal("dataset_count_failed", err)
	}
	if count > 0 {
		s.log.Info("Dataset already loaded, skipping", "count", count)
		return nil
	}
	return s.insertSample(ctx)
}

// Reload wipes all reference-tagged rows and reinserts the sample set,
// both inside one transaction.
func (s *datasetService) Reload(ctx context.Context) (int64, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if txErr := s.clauseRepo.DeleteBySource(ctx, tx, domain.SourceDatasetTag); txErr != nil {
			return fmt.Errorf("delete dataset rows: %w", txErr)
		}
		if _, txErr := s.clauseRepo.CreateBatch(ctx, tx, sampleClauses()); txErr != nil {
			return fmt.Errorf("insert dataset rows: %w", txErr)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Dataset reload failed", "error", err)
		return 0, apierr.Internal("dataset_reload_failed", err)
	}

	count, err := s.clauseRepo.CountBySource(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return 0, apierr.Internal("dataset_count_failed", err)
	}
	s.log.Info("Dataset reloaded", "count", count)
	return count, nil
}

func (s *datasetService) insertSample(ctx context.Context) error {
	clauses := sampleClauses()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, txErr := s.clauseRepo.CreateBatch(ctx, tx, clauses)
		return txErr
	})
	if err != nil {
		s.log.Error("Dataset load failed", "error", err)
		return apierr.Internal("dataset_load_failed", err)
	}
	s.log.Info("Dataset loaded", "inserted", len(clauses))
	return nil
}

func (s *datasetService) Count(ctx context.Context) (int64, error) {
	count, err := s.clauseRepo.CountBySource(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return 0, apierr.Internal("dataset_count_failed", err)
	}
	return count, nil
}

func (s *datasetService) Search(ctx context.Context, params ClauseSearchParams) ([]*domain.DatasetClause, error) {
	clauses, err := s.clauseRepo.Search(ctx, nil, domain.SourceDatasetTag, repos.ClauseSearchFilter{
		SearchText: params.SearchText,
		ClauseType: params.ClauseType,
		RiskLevel:  params.RiskLevel,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return nil, apierr.Internal("dataset_search_failed", err)
	}
	return clauses, nil
}

func (s *datasetService) GetClause(ctx context.Context, id uuid.UUID) (*domain.DatasetClause, error) {
	clause, err := s.clauseRepo.GetByID(ctx, nil, id, domain.SourceDatasetTag)
	if err != nil {
		return nil, apierr.Internal("dataset_lookup_failed", err)
	}
	if clause == nil {
		return nil, apierr.NotFoundf("clause_not_found", "clause %s not found", id)
	}
	return clause, nil
}

func (s *datasetService) ClauseTypes(ctx context.Context) ([]string, error) {
	types, err := s.clauseRepo.DistinctTypes(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return nil, apierr.Internal("dataset_types_failed", err)
	}
	return types, nil
}

func (s *datasetService) RiskLevels(ctx context.Context) ([]string, error) {
	levels, err := s.clauseRepo.DistinctRiskLevels(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return nil, apierr.Internal("dataset_levels_failed", err)
	}
	return levels, nil
}

func (s *datasetService) Stats(ctx context.Context) (*DatasetStats, error) {
	total, err := s.clauseRepo.CountBySource(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return nil, apierr.Internal("dataset_count_failed", err)
	}

	byType, err := s.clauseRepo.CountByType(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return nil, apierr.Internal("dataset_stats_failed", err)
	}
	byLevel, err := s.clauseRepo.CountByRiskLevel(ctx, nil, domain.SourceDatasetTag)
	if err != nil {
		return nil, apierr.Internal("dataset_stats_failed", err)
	}

	stats := &DatasetStats{
		TotalClauses:           total,
		ClauseTypeDistribution: make(map[string]int64, len(byType)),
		RiskLevelDistribution:  make(map[string]int64, len(byLevel)),
		DatasetSource:          domain.SourceDatasetTag,
	}
	for _, row := range byType {
		stats.ClauseTypeDistribution[row.Value] = row.Count
	}
	for _, row := range byLevel {
		stats.RiskLevelDistribution[row.Value] = row.Count
	}
	return stats, nil
}

// sampleClauses is the fixed reference set. The upstream dataset requires
// authenticated download, so this stands in for it, tagged with the source
// identifier the loader keys idempotence on.
func sampleClauses() []*domain.DatasetClause {
	rows := []struct {
		clauseType     string
		text           string
		simplifiedText string
		riskLevel      string
	}{
		{
			clauseType:     "confidentiality",
			text:           "The Company shall maintain strict confidentiality regarding all proprietary information, trade secrets, and confidential data disclosed by the Client during the term of this Agreement.",
			simplifiedText: "You must keep company information secret",
			riskLevel:      domain.RiskMedium,
		},
		{
			clauseType:     "intellectual_property",
			text:           "Employee agrees to assign all intellectual property rights, including but not limited to inventions, discoveries, improvements, and works of authorship, to the Company.",
			simplifiedText: "The company owns all your work and ideas",
			riskLevel:      domain.RiskHigh,
		},
		{
			clauseType:     "liability",
			text:           "In no event shall the Company be liable for any indirect, incidental, special, consequential, or punitive damages, including but not limited to loss of profits, data, or business opportunities.",
			simplifiedText: "Company limits its responsibility for damages",
			riskLevel:      domain.RiskHigh,
		},
		{
			clauseType:     "termination",
			text:           "Either party may terminate this Agreement with thirty (30) days written notice to the other party.",
			simplifiedText: "Either side can end the contract with 30 days notice",
			riskLevel:      domain.RiskLow,
		},
		{
			clauseType:     "payment",
			text:           "Payment shall be made within thirty (30) days of invoice date. Late payments may incur a service charge of 1.5% per month.",
			simplifiedText: "Payment due within 30 days, late fees apply",
			riskLevel:      domain.RiskMedium,
		},
		{
			clauseType:     "non_compete",
			text:           "Employee agrees not to engage in any business activity that competes with the Company's business for a period of two (2) years following termination.",
			simplifiedText: "Cannot work for competitors for 2 years after leaving",
			riskLevel:      domain.RiskHigh,
		},
		{
			clauseType:     "indemnification",
			text:           "Client shall indemnify and hold harmless the Company from any claims, damages, or expenses arising from Client's use of the services.",
			simplifiedText: "Client protects company from legal claims",
			riskLevel:      domain.RiskMedium,
		},
		{
			clauseType:     "governing_law",
			text:           "This Agreement shall be governed by and construed in accordance with the laws of the State of California.",
			simplifiedText: "California law applies to this contract",
			riskLevel:      domain.RiskLow,
		},
		{
			clauseType:     "dispute_resolution",
			text:           "Any disputes arising under this Agreement shall be resolved through binding arbitration in accordance with the rules of the American Arbitration Association.",
			simplifiedText: "Disputes will be settled through arbitration",
			riskLevel:      domain.RiskMedium,
		},
		{
			clauseType:     "force_majeure",
			text:           "Neither party shall be liable for any failure or delay in performance due to circumstances beyond their reasonable control, including acts of God, war, or government action.",
			simplifiedText: "Neither side is responsible for delays due to events beyond their control",
			riskLevel:      domain.RiskLow,
		},
	}

	clauses := make([]*domain.DatasetClause, 0, len(rows))
	for _, row := range rows {
		clauses = append(clauses, &domain.DatasetClause{
			ClauseType:     row.clauseType,
			Text:           row.text,
			SimplifiedText: row.simplifiedText,
			RiskLevel:      row.riskLevel,
			SourceDataset:  domain.SourceDatasetTag,
		})
	}
	return clauses
}
