package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/services"
)

type AnalysisHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewAnalysisHandler(log *logger.Logger, analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log.With("handler", "AnalysisHandler"),
		analysisService: analysisService,
	}
}

type AnalyzeRequest struct {
	ContractID   uuid.UUID `json:"contract_id" binding:"required"`
	AnalysisType string    `json:"analysis_type"`
}

type AnalyzeResponse struct {
	services.AnalysisResult
	Message string `json:"message"`
}

// POST /api/v1/analysis/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), req.ContractID, req.AnalysisType)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondOK(c, AnalyzeResponse{
		AnalysisResult: *result,
		Message:        "Contract analysis completed successfully",
	})
}

// GET /api/v1/analysis/contract/:id/analysis
func (h *AnalysisHandler) GetContractAnalysis(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.analysisService.GetLatestAnalysis(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

type RiskLevelInfo struct {
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Examples    []string `json:"examples"`
}

// GET /api/v1/analysis/risk-levels
func (h *AnalysisHandler) RiskLevels(c *gin.Context) {
	RespondOK(c, gin.H{
		"risk_levels": map[string]RiskLevelInfo{
			"high": {
				Description: "High risk clauses that require immediate attention",
				Color:       "#ef4444",
				Examples:    []string{"Unlimited liability", "Broad IP assignment", "Restrictive non-compete"},
			},
			"medium": {
				Description: "Moderate risk clauses that should be reviewed",
				Color:       "#f59e0b",
				Examples:    []string{"Confidentiality obligations", "Termination conditions", "Payment terms"},
			},
			"low": {
				Description: "Low risk clauses that are generally acceptable",
				Color:       "#10b981",
				Examples:    []string{"Standard definitions", "Governing law", "Basic obligations"},
			},
		},
	})
}

// GET /api/v1/analysis/clause-types
func (h *AnalysisHandler) ClauseTypes(c *gin.Context) {
	RespondOK(c, gin.H{
		"clause_types": []string{
			"confidentiality",
			"intellectual_property",
			"liability",
			"termination",
			"payment",
			"non_compete",
			"indemnification",
			"governing_law",
			"dispute_resolution",
			"force_majeure",
			"assignment",
			"amendment",
		},
	})
}
