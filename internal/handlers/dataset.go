package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/services"
)

type DatasetHandler struct {
	log            *logger.Logger
	datasetService services.DatasetService
}

func NewDatasetHandler(log *logger.Logger, datasetService services.DatasetService) *DatasetHandler {
	return &DatasetHandler{
		log:            log.With("handler", "DatasetHandler"),
		datasetService: datasetService,
	}
}

type ClauseResponse struct {
	ID             uuid.UUID `json:"id"`
	ClauseType     string    `json:"clause_type"`
	Text           string    `json:"text"`
	SimplifiedText string    `json:"simplified_text"`
	RiskLevel      string    `json:"risk_level"`
	SourceDataset  string    `json:"source_dataset"`
	CreatedAt      time.Time `json:"created_at"`
}

type ClauseListResponse struct {
	Clauses    []ClauseResponse `json:"clauses"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// GET /api/v1/dataset/clauses?clause_type&risk_level&search_text&page&page_size
func (h *DatasetHandler) ListClauses(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := parseIntQuery(c, "page_size", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	clauses, err := h.datasetService.Search(c.Request.Context(), services.ClauseSearchParams{
		SearchText: c.Query("search_text"),
		ClauseType: c.Query("clause_type"),
		RiskLevel:  c.Query("risk_level"),
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	total, err := h.datasetService.Count(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	items := make([]ClauseResponse, 0, len(clauses))
	for _, clause := range clauses {
		items = append(items, clauseResponse(clause))
	}
	RespondOK(c, ClauseListResponse{
		Clauses:    items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// GET /api/v1/dataset/clauses/:id
func (h *DatasetHandler) GetClause(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	clause, err := h.datasetService.GetClause(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, clauseResponse(clause))
}

// GET /api/v1/dataset/clauses/types/list
func (h *DatasetHandler) ClauseTypes(c *gin.Context) {
	types, err := h.datasetService.ClauseTypes(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"clause_types": types,
		"total_types":  len(types),
	})
}

// GET /api/v1/dataset/clauses/risk-levels/list
func (h *DatasetHandler) RiskLevels(c *gin.Context) {
	levels, err := h.datasetService.RiskLevels(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"risk_levels":  levels,
		"total_levels": len(levels),
	})
}

// GET /api/v1/dataset/dataset/stats
func (h *DatasetHandler) Stats(c *gin.Context) {
	stats, err := h.datasetService.Stats(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}

// POST /api/v1/dataset/dataset/reload
func (h *DatasetHandler) Reload(c *gin.Context) {
	count, err := h.datasetService.Reload(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"message":       "Dataset reloaded successfully",
		"total_clauses": count,
	})
}

func clauseResponse(clause *domain.DatasetClause) ClauseResponse {
	return ClauseResponse{
		ID:             clause.ID,
		ClauseType:     clause.ClauseType,
		Text:           clause.Text,
		SimplifiedText: clause.SimplifiedText,
		RiskLevel:      clause.RiskLevel,
		SourceDataset:  clause.SourceDataset,
		CreatedAt:      clause.CreatedAt,
	}
}
