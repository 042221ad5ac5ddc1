package reporting

import (
	"context"
	"fmt"
	"strings"

	"github.com/fluxo/backend/internal/domain/reporting"
	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TextCompleter produces a completion for a pair of prompts. The production
// implementation is the chat completions client; tests substitute a fake.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// InsightService turns a generated report into a short narrative summary.
// Only aggregate figures and row labels leave the service; record-level data
// and tenant identifiers never reach the completion endpoint.
type InsightService struct {
	reports   *ReportService
	completer TextCompleter
	logger    *zap.Logger
}

// NewInsightService creates a new InsightService. A nil completer disables
// insights.
func NewInsightService(reports *ReportService, completer TextCompleter, logger *zap.Logger) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{reports: reports, completer: completer, logger: logger}
}

// InsightResponse carries the generated narrative
type InsightResponse struct {
	Summary string `json:"summary"`
}

const insightSystemPrompt = "You are a financial analyst. You receive a period report of a small business " +
	"with one line per account and one column per month. Summarize the most important movements in at most " +
	"five short sentences, in plain language, citing concrete figures. Do not invent data."

// GenerateInsight builds the requested report and asks the completion
// endpoint for a narrative summary of it
func (s *InsightService) GenerateInsight(ctx context.Context, tenantID uuid.UUID, query ReportQuery) (*InsightResponse, error) {
	if s.completer == nil {
		return nil, shared.NewDomainError("INSIGHT_DISABLED", "Insight generation is not configured")
	}

	report, err := s.reports.GenerateReport(ctx, tenantID, query)
	if err != nil {
		return nil, err
	}

	summary, err := s.completer.Complete(ctx, insightSystemPrompt, renderReport(report))
	if err != nil {
		s.logger.Warn("insight completion failed", zap.Error(err))
		return nil, shared.NewDomainError("INSIGHT_FAILED", "Failed to generate report insight")
	}
	return &InsightResponse{Summary: summary}, nil
}

// renderReport flattens the report tree into an indented plain-text table
func renderReport(report *reporting.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\nPeriods: %s\n\n", report.Mode, joinKeys(report.PeriodKeys))
	for _, row := range report.Rows {
		renderNode(&b, row, report.PeriodKeys, 0)
	}
	if report.NetResult != nil {
		fmt.Fprintf(&b, "\n%s: %s\n", report.NetResult.Name, renderValues(report.NetResult, report.PeriodKeys))
	}
	return b.String()
}

func renderNode(b *strings.Builder, node *reporting.Node, keys []reporting.PeriodKey, depth int) {
	fmt.Fprintf(b, "%s%s %s: %s\n", strings.Repeat("  ", depth), node.Code, node.Name, renderValues(node, keys))
	for _, child := range node.Children {
		renderNode(b, child, keys, depth+1)
	}
}

func renderValues(node *reporting.Node, keys []reporting.PeriodKey) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, node.Values[key].StringFixed(2))
	}
	return strings.Join(parts, " | ")
}

func joinKeys(keys []reporting.PeriodKey) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, string(key))
	}
	return strings.Join(parts, ", ")
}
