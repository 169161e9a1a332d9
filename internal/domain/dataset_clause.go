package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Risk level values for clauses, contract-scoped and reference alike.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

func ValidRiskLevel(s string) bool {
	switch s {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	default:
		return false
	}
}

// SourceDatasetTag marks reference clauses loaded from the sample dataset,
// distinguishing them from any other clause-shaped data.
const SourceDatasetTag = "kaggle_contracts_clauses"

// DatasetClause is a standalone example clause used for lookup and search.
// It is unrelated to any uploaded contract and never mutated after load.
type DatasetClause struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClauseType     string    `gorm:"column:clause_type;not null;index" json:"clause_type"`
	Text           string    `gorm:"column:text;type:text;not null" json:"text"`
	SimplifiedText string    `gorm:"column:simplified_text;type:text" json:"simplified_text"`
	RiskLevel      string    `gorm:"column:risk_level;index" json:"risk_level"`
	SourceDataset  string    `gorm:"column:source_dataset;not null;index" json:"source_dataset"`
	CreatedAt      time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (DatasetClause) TableName() string { return "dataset_clause" }

func (c *DatasetClause) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
