package services

import (
	"context"

	"github.com/legalease/backend/internal/domain"
)

// Analyzer produces an analysis for a contract. A real document-
// understanding implementation can be substituted without touching any
// caller; the shipped implementation is a fixed-response placeholder.
type Analyzer interface {
	Analyze(ctx context.Context, contract *domain.Contract, analysisType string) (*AnalysisPayload, error)
}

// fixedAnalyzer ignores the contract content entirely and returns the same
// canned payload on every call. Placeholder until a real analyzer exists.
type fixedAnalyzer struct{}

func NewFixedAnalyzer() Analyzer {
	return &fixedAnalyzer{}
}

const fixedAnalyzerModel = "mock_model"

func (a *fixedAnalyzer) Analyze(ctx context.Context, contract *domain.Contract, analysisType string) (*AnalysisPayload, error) {
	return &AnalysisPayload{
		TotalClauses:     15,
		RiskSummary:      RiskSummary{High: 2, Medium: 5, Low: 8},
		OverallRiskScore: 6.5,
		ModelUsed:        fixedAnalyzerModel,
		Clauses: []ClauseResult{
			{
				ClauseText:            "The Company shall maintain strict confidentiality regarding all proprietary information...",
				ClauseType:            "confidentiality",
				RiskLevel:             domain.RiskMedium,
				RiskScore:             6.5,
				SimplifiedExplanation: "You must keep company information secret",
				Recommendations: []string{
					"Review what information is considered confidential",
					"Understand the duration of confidentiality",
				},
			},
			{
				ClauseText:            "Employee agrees to assign all intellectual property rights to the Company...",
				ClauseType:            "intellectual_property",
				RiskLevel:             domain.RiskHigh,
				RiskScore:             8.5,
				SimplifiedExplanation: "The company owns all your work and ideas",
				Recommendations: []string{
					"Negotiate carve-outs for personal projects",
					"Understand scope of IP assignment",
				},
			},
			{
				ClauseText:            "This agreement shall be governed by the laws of the State of California...",
				ClauseType:            "governing_law",
				RiskLevel:             domain.RiskLow,
				RiskScore:             2.0,
				SimplifiedExplanation: "California law applies to this contract",
				Recommendations: []string{
					"Understand local legal implications",
				},
			},
		},
		KeyInsights: []string{
			"Strong IP assignment clause may limit personal projects",
			"Confidentiality obligations extend beyond employment",
			"Consider negotiating termination conditions",
		},
	}, nil
}
