package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/apierr"
	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/repos"
)

type AnalysisService interface {
	Analyze(ctx context.Context, contractID uuid.UUID, analysisType string) (*AnalysisResult, error)
	GetLatestAnalysis(ctx context.Context, contractID uuid.UUID) (*AnalysisResult, error)
}

type analysisService struct {
	db           *gorm.DB
	log          *logger.Logger
	analyzer     Analyzer
	contractRepo repos.ContractRepo
	analysisRepo repos.AnalysisRepo
	clauseRepo   repos.ClauseRepo
}

func NewAnalysisService(
	db *gorm.DB,
	baseLog *logger.Logger,
	analyzer Analyzer,
	contractRepo repos.ContractRepo,
	analysisRepo repos.AnalysisRepo,
	clauseRepo repos.ClauseRepo,
) AnalysisService {
	return &analysisService{
		db:           db,
		log:          baseLog.With("service", "AnalysisService"),
		analyzer:     analyzer,
		contractRepo: contractRepo,
		analysisRepo: analysisRepo,
		clauseRepo:   clauseRepo,
	}
}

// Analyze runs the analyzer against the contract and persists the result:
// one analysis row plus one clause row per returned clause, in a single
// transaction. The contract is verified before anything is written.
func (s *analysisService) Analyze(ctx context.Context, contractID uuid.UUID, analysisType string) (*AnalysisResult, error) {
	if analysisType == "" {
		analysisType = "full"
	}

	contract, err := s.contractRepo.GetByID(ctx, nil, contractID)
	if err != nil {
		return nil, apierr.Internal("contract_lookup_failed", err)
	}
	if contract == nil {
		return nil, apierr.NotFoundf("contract_not_found", "contract %s not found", contractID)
	}

	payload, err := s.analyzer.Analyze(ctx, contract, analysisType)
	if err != nil {
		return nil, apierr.Internal("analysis_failed", err)
	}

	analysis := &domain.ContractAnalysis{
		ContractID:        contractID,
		AnalysisType:      analysisType,
		OverallRiskScore:  payload.OverallRiskScore,
		TotalClauses:      payload.TotalClauses,
		HighRiskClauses:   payload.RiskSummary.High,
		MediumRiskClauses: payload.RiskSummary.Medium,
		LowRiskClauses:    payload.RiskSummary.Low,
		AnalysisDate:      time.Now().UTC(),
		AIModelUsed:       payload.ModelUsed,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.analysisRepo.Create(ctx, tx, analysis); txErr != nil {
			return fmt.Errorf("create analysis: %w", txErr)
		}
		clauses := make([]*domain.ContractClause, 0, len(payload.Clauses))
		for _, c := range payload.Clauses {
			recs, marshalErr := json.Marshal(c.Recommendations)
			if marshalErr != nil {
				return fmt.Errorf("marshal recommendations: %w", marshalErr)
			}
			clauses = append(clauses, &domain.ContractClause{
				ContractID:            contractID,
				ClauseText:            c.ClauseText,
				ClauseType:            c.ClauseType,
				RiskLevel:             c.RiskLevel,
				RiskScore:             c.RiskScore,
				SimplifiedExplanation: c.SimplifiedExplanation,
				Recommendations:       datatypes.JSON(recs),
			})
		}
		if _, txErr := s.clauseRepo.CreateBatch(ctx, tx, clauses); txErr != nil {
			return fmt.Errorf("create clauses: %w", txErr)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to persist analysis", "error", err, "contract_id", contractID)
		return nil, apierr.Internal("analysis_persist_failed", err)
	}

	s.log.Info("Analysis persisted",
		"contract_id", contractID,
		"analysis_id", analysis.ID,
		"analysis_type", analysisType,
	)

	return &AnalysisResult{
		AnalysisID:       analysis.ID,
		ContractID:       contractID,
		AnalysisType:     analysisType,
		TotalClauses:     payload.TotalClauses,
		RiskSummary:      payload.RiskSummary,
		Clauses:          payload.Clauses,
		OverallRiskScore: payload.OverallRiskScore,
		KeyInsights:      payload.KeyInsights,
		AnalysisDate:     analysis.AnalysisDate,
		AIModelUsed:      payload.ModelUsed,
	}, nil
}

// GetLatestAnalysis reassembles the most recent stored analysis for the
// contract. Returns a NotFound error when none exists.
func (s *analysisService) GetLatestAnalysis(ctx context.Context, contractID uuid.UUID) (*AnalysisResult, error) {
	analysis, err := s.analysisRepo.GetLatestByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, apierr.Internal("analysis_lookup_failed", err)
	}
	if analysis == nil {
		return nil, apierr.NotFoundf("analysis_not_found", "no analysis found for contract %s", contractID)
	}

	clauses, err := s.clauseRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, apierr.Internal("clause_lookup_failed", err)
	}

	results := make([]ClauseResult, 0, len(clauses))
	for _, c := range clauses {
		results = append(results, ClauseResult{
			ClauseText:            c.ClauseText,
			ClauseType:            c.ClauseType,
			RiskLevel:             c.RiskLevel,
			RiskScore:             c.RiskScore,
			SimplifiedExplanation: c.SimplifiedExplanation,
			Recommendations:       parseRecommendations(c.Recommendations),
		})
	}

	return &AnalysisResult{
		AnalysisID:       analysis.ID,
		ContractID:       contractID,
		AnalysisType:     analysis.AnalysisType,
		TotalClauses:     analysis.TotalClauses,
		RiskSummary: RiskSummary{
			High:   analysis.HighRiskClauses,
			Medium: analysis.MediumRiskClauses,
			Low:    analysis.LowRiskClauses,
		},
		Clauses:          results,
		OverallRiskScore: analysis.OverallRiskScore,
		AnalysisDate:     analysis.AnalysisDate,
		AIModelUsed:      analysis.AIModelUsed,
	}, nil
}

// parseRecommendations decodes the stored JSON list, falling back to a
// single-element list holding the raw value when it does not parse.
func parseRecommendations(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var recs []string
	if err := json.Unmarshal(raw, &recs); err != nil {
		return []string{string(raw)}
	}
	return recs
}
