package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/legalease/backend/internal/services"
)

func TestAnalyzeEndpoint(t *testing.T) {
	f := newHandlerFixture(t, 0)
	up := uploadOne(t, f, "msa.pdf", "pdf")

	rec := f.doJSON(t, http.MethodPost, "/api/v1/analysis/analyze", AnalyzeRequest{
		ContractID:   up.ContractID,
		AnalysisType: "full",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[AnalyzeResponse](t, rec)
	if resp.ContractID != up.ContractID {
		t.Fatalf("contract id = %s, want %s", resp.ContractID, up.ContractID)
	}
	if resp.TotalClauses != 15 {
		t.Fatalf("total clauses = %d, want 15", resp.TotalClauses)
	}
	if resp.RiskSummary != (services.RiskSummary{High: 2, Medium: 5, Low: 8}) {
		t.Fatalf("risk summary = %+v", resp.RiskSummary)
	}
	if len(resp.Clauses) != 3 {
		t.Fatalf("clauses = %d, want 3", len(resp.Clauses))
	}
	if resp.AIModelUsed != "mock_model" {
		t.Fatalf("model = %q", resp.AIModelUsed)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	f := newHandlerFixture(t, 0)

	// Missing contract_id fails binding.
	rec := f.do(t, http.MethodPost, "/api/v1/analysis/analyze", strings.NewReader(`{}`), "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty body status = %d, want 400", rec.Code)
	}
	env := decode[ErrorEnvelope](t, rec)
	if env.Error.Code != "invalid_request" {
		t.Fatalf("error code = %q", env.Error.Code)
	}

	// Unknown contract is a 404, not a 500.
	rec = f.doJSON(t, http.MethodPost, "/api/v1/analysis/analyze", AnalyzeRequest{ContractID: uuid.New()})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown contract status = %d, want 404", rec.Code)
	}
}

func TestGetContractAnalysis(t *testing.T) {
	f := newHandlerFixture(t, 0)
	up := uploadOne(t, f, "sow.txt", "text")

	// No analysis yet.
	rec := f.do(t, http.MethodGet, "/api/v1/analysis/contract/"+up.ContractID.String()+"/analysis", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("no-analysis status = %d, want 404", rec.Code)
	}

	if rec := f.doJSON(t, http.MethodPost, "/api/v1/analysis/analyze", AnalyzeRequest{ContractID: up.ContractID}); rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/api/v1/analysis/contract/"+up.ContractID.String()+"/analysis", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get analysis status = %d", rec.Code)
	}
	result := decode[services.AnalysisResult](t, rec)
	if result.ContractID != up.ContractID {
		t.Fatalf("contract id = %s", result.ContractID)
	}
	if len(result.Clauses) != 3 {
		t.Fatalf("clauses = %d, want 3", len(result.Clauses))
	}
	for _, clause := range result.Clauses {
		if len(clause.Recommendations) == 0 {
			t.Fatalf("clause %q has no recommendations", clause.ClauseType)
		}
	}
}

func TestRiskLevelReference(t *testing.T) {
	f := newHandlerFixture(t, 0)

	rec := f.do(t, http.MethodGet, "/api/v1/analysis/risk-levels", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decode[struct {
		RiskLevels map[string]RiskLevelInfo `json:"risk_levels"`
	}](t, rec)
	if len(payload.RiskLevels) != 3 {
		t.Fatalf("risk levels = %d, want 3", len(payload.RiskLevels))
	}
	for _, level := range []string{"high", "medium", "low"} {
		info, ok := payload.RiskLevels[level]
		if !ok {
			t.Fatalf("missing risk level %q", level)
		}
		if info.Description == "" || info.Color == "" || len(info.Examples) == 0 {
			t.Fatalf("incomplete info for %q: %+v", level, info)
		}
	}
}

func TestClauseTypeReference(t *testing.T) {
	f := newHandlerFixture(t, 0)

	rec := f.do(t, http.MethodGet, "/api/v1/analysis/clause-types", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decode[struct {
		ClauseTypes []string `json:"clause_types"`
	}](t, rec)
	if len(payload.ClauseTypes) != 12 {
		t.Fatalf("clause types = %d, want 12", len(payload.ClauseTypes))
	}
}
