package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/legalease/backend/internal/domain"
	"github.com/legalease/backend/internal/platform/apierr"
	"github.com/legalease/backend/internal/platform/logger"
	"github.com/legalease/backend/internal/services"
)

// DefaultMaxUploadBytes caps uploads at 10 MiB unless configured otherwise.
const DefaultMaxUploadBytes = 10 * 1024 * 1024

var allowedFileTypes = []string{"pdf", "docx", "txt", "png", "jpg", "jpeg"}

type ContractHandler struct {
	log             *logger.Logger
	contractService services.ContractService
	maxUploadBytes  int64
}

func NewContractHandler(log *logger.Logger, contractService services.ContractService, maxUploadBytes int64) *ContractHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ContractHandler{
		log:             log.With("handler", "ContractHandler"),
		contractService: contractService,
		maxUploadBytes:  maxUploadBytes,
	}
}

type ContractUploadResponse struct {
	ContractID uuid.UUID `json:"contract_id"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadDate time.Time `json:"upload_date"`
	Message    string    `json:"message"`
}

type ContractSummary struct {
	ID               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	FileType         string    `json:"file_type"`
	UploadDate       time.Time `json:"upload_date"`
	Processed        bool      `json:"processed"`
}

type ContractListResponse struct {
	Contracts  []ContractSummary `json:"contracts"`
	TotalCount int64             `json:"total_count"`
}

type AnalysisSummary struct {
	ID               uuid.UUID `json:"id"`
	AnalysisType     string    `json:"analysis_type"`
	OverallRiskScore float64   `json:"overall_risk_score"`
	TotalClauses     int       `json:"total_clauses"`
	AnalysisDate     time.Time `json:"analysis_date"`
}

type ContractDetailResponse struct {
	ContractSummary
	Analyses []AnalysisSummary `json:"analyses"`
}

// POST /api/v1/contracts/upload
// Extension and size are validated here, before the service touches any
// store.
func (h *ContractHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", fmt.Errorf("no file provided"))
		return
	}
	defer file.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !isAllowedFileType(ext) {
		RespondError(c, http.StatusBadRequest, "unsupported_file_type",
			fmt.Errorf("unsupported file type %q, please upload: %s", ext, strings.Join(allowedFileTypes, ", ")))
		return
	}

	if header.Size > h.maxUploadBytes {
		RespondError(c, http.StatusBadRequest, "file_too_large",
			fmt.Errorf("file too large, maximum size is %d bytes", h.maxUploadBytes))
		return
	}

	contract, err := h.contractService.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondOK(c, ContractUploadResponse{
		ContractID: contract.ID,
		Filename:   contract.OriginalFilename,
		FileSize:   contract.FileSize,
		FileType:   contract.FileType,
		UploadDate: contract.UploadDate,
		Message:    "Contract uploaded successfully",
	})
}

// GET /api/v1/contracts/list?skip&limit
func (h *ContractHandler) List(c *gin.Context) {
	skip := parseIntQuery(c, "skip", 0)
	limit := parseIntQuery(c, "limit", 100)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}

	contracts, err := h.contractService.List(c.Request.Context(), skip, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	total, err := h.contractService.Count(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	summaries := make([]ContractSummary, 0, len(contracts))
	for _, contract := range contracts {
		summaries = append(summaries, contractSummary(contract))
	}
	RespondOK(c, ContractListResponse{Contracts: summaries, TotalCount: total})
}

// GET /api/v1/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	contract, err := h.contractService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	detail := ContractDetailResponse{
		ContractSummary: contractSummary(contract),
		Analyses:        make([]AnalysisSummary, 0, len(contract.Analyses)),
	}
	for _, a := range contract.Analyses {
		detail.Analyses = append(detail.Analyses, AnalysisSummary{
			ID:               a.ID,
			AnalysisType:     a.AnalysisType,
			OverallRiskScore: a.OverallRiskScore,
			TotalClauses:     a.TotalClauses,
			AnalysisDate:     a.AnalysisDate,
		})
	}
	RespondOK(c, detail)
}

// DELETE /api/v1/contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": fmt.Sprintf("Contract %s deleted successfully", id)})
}

func contractSummary(contract *domain.Contract) ContractSummary {
	return ContractSummary{
		ID:               contract.ID,
		Filename:         contract.Filename,
		OriginalFilename: contract.OriginalFilename,
		FileSize:         contract.FileSize,
		FileType:         contract.FileType,
		UploadDate:       contract.UploadDate,
		Processed:        contract.Processed,
	}
}

func isAllowedFileType(ext string) bool {
	for _, allowed := range allowedFileTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

func parseIntQuery(c *gin.Context, key string, defaultVal int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("invalid_id", fmt.Errorf("invalid id %q", c.Param("id"))))
		return uuid.Nil, false
	}
	return id, true
}
