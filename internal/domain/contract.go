package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract is an uploaded document record. The file itself is opaque; only
// its metadata and storage location are tracked here.
type Contract struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename         string    `gorm:"column:filename;not null" json:"filename"`
	OriginalFilename string    `gorm:"column:original_filename;not null" json:"original_filename"`
	FilePath         string    `gorm:"column:file_path;not null" json:"file_path"`
	FileSize         int64     `gorm:"column:file_size;not null" json:"file_size"`
	FileType         string    `gorm:"column:file_type;not null" json:"file_type"`
	UploadDate       time.Time `gorm:"column:upload_date;not null" json:"upload_date"`
	Processed        bool      `gorm:"column:processed;not null;default:false" json:"processed"`
	ExtractedText    *string   `gorm:"column:extracted_text;type:text" json:"extracted_text,omitempty"`

	Analyses []ContractAnalysis `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContractID;references:ID" json:"analyses,omitempty"`
	Clauses  []ContractClause   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContractID;references:ID" json:"clauses,omitempty"`
}

func (Contract) TableName() string { return "contract" }

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
