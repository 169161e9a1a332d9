package services

import (
	"time"

	"github.com/google/uuid"
)

// RiskSummary is the clause count per risk level for one analysis.
type RiskSummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ClauseResult is one classified clause in an analysis result.
type ClauseResult struct {
	ClauseText            string   `json:"clause_text"`
	ClauseType            string   `json:"clause_type"`
	RiskLevel             string   `json:"risk_level"`
	RiskScore             float64  `json:"risk_score"`
	SimplifiedExplanation string   `json:"simplified_explanation"`
	Recommendations       []string `json:"recommendations"`
}

// AnalysisResult is the full result of analyzing a contract, both freshly
// produced and reassembled from storage. Field contracts are fixed across
// the service/handler boundary.
type AnalysisResult struct {
	AnalysisID       uuid.UUID      `json:"analysis_id"`
	ContractID       uuid.UUID      `json:"contract_id"`
	AnalysisType     string         `json:"analysis_type"`
	TotalClauses     int            `json:"total_clauses"`
	RiskSummary      RiskSummary    `json:"risk_summary"`
	Clauses          []ClauseResult `json:"clauses"`
	OverallRiskScore float64        `json:"overall_risk_score"`
	KeyInsights      []string       `json:"key_insights,omitempty"`
	AnalysisDate     time.Time      `json:"analysis_date"`
	AIModelUsed      string         `json:"ai_model_used"`
}

// AnalysisPayload is what an Analyzer produces before anything is
// persisted: the classified clauses plus the aggregate numbers.
type AnalysisPayload struct {
	TotalClauses     int
	RiskSummary      RiskSummary
	Clauses          []ClauseResult
	OverallRiskScore float64
	KeyInsights      []string
	ModelUsed        string
}

// DatasetStats summarizes the reference dataset.
type DatasetStats struct {
	TotalClauses           int64            `json:"total_clauses"`
	ClauseTypeDistribution map[string]int64 `json:"clause_type_distribution"`
	RiskLevelDistribution  map[string]int64 `json:"risk_level_distribution"`
	DatasetSource          string           `json:"dataset_source"`
}
