package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContractAnalysis is one stored run of the analyzer against a contract.
// A contract accumulates analyses over time; the latest by AnalysisDate is
// authoritative for retrieval.
type ContractAnalysis struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID        uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	AnalysisType      string    `gorm:"column:analysis_type;not null" json:"analysis_type"`
	OverallRiskScore  float64   `gorm:"column:overall_risk_score;not null" json:"overall_risk_score"`
	TotalClauses      int       `gorm:"column:total_clauses;not null" json:"total_clauses"`
	HighRiskClauses   int       `gorm:"column:high_risk_clauses;not null" json:"high_risk_clauses"`
	MediumRiskClauses int       `gorm:"column:medium_risk_clauses;not null" json:"medium_risk_clauses"`
	LowRiskClauses    int       `gorm:"column:low_risk_clauses;not null" json:"low_risk_clauses"`
	AnalysisDate      time.Time `gorm:"column:analysis_date;not null;index" json:"analysis_date"`
	AIModelUsed       string    `gorm:"column:ai_model_used;not null" json:"ai_model_used"`
}

func (ContractAnalysis) TableName() string { return "contract_analysis" }

func (a *ContractAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ContractClause is a fragment of a contract's analysis output.
// Recommendations is a JSON-serialized list of strings.
type ContractClause struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"contract_id"`
	ClauseText            string         `gorm:"column:clause_text;type:text;not null" json:"clause_text"`
	ClauseType            string         `gorm:"column:clause_type;not null" json:"clause_type"`
	RiskLevel             string         `gorm:"column:risk_level;not null" json:"risk_level"`
	RiskScore             float64        `gorm:"column:risk_score;not null" json:"risk_score"`
	SimplifiedExplanation string         `gorm:"column:simplified_explanation;type:text" json:"simplified_explanation"`
	Recommendations       datatypes.JSON `gorm:"column:recommendations" json:"recommendations,omitempty"`
}

func (ContractClause) TableName() string { return "contract_clause" }

func (c *ContractClause) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
