package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/metrics"
)

const defaultSummarySubject = "Shift coverage summary"

// Mailer sends plain text email
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SummaryResult records what was sent
type SummaryResult struct {
	Report     *CoverageReportResult
	Subject    string
	Body       string
	Recipients []string
}

// FormatSummary renders a report as a plain text email body
func FormatSummary(report *CoverageReportResult) string {
	var b strings.Builder

	unsatisfied := report.Unsatisfied()
	fmt.Fprintf(&b, "Coverage for unit %s, %s to %s\n\n", report.UnitID, report.From, report.To)
	fmt.Fprintf(&b, "%d of %d shifts are short of staff.\n", len(unsatisfied), len(report.Shifts))

	if len(unsatisfied) > 0 {
		b.WriteString("\n")
		for _, s := range unsatisfied {
			fmt.Fprintf(&b, "%s %-5s  have %d, need %d", s.Date, s.Shift, s.Have, s.Needed)
			if len(s.MissingByQualification) > 0 {
				missing := make([]string, len(s.MissingByQualification))
				for i, m := range s.MissingByQualification {
					missing[i] = fmt.Sprintf("%dx %s", m.MissingCount, m.ShortCode)
				}
				fmt.Fprintf(&b, ", missing %s", strings.Join(missing, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(&b, "\n%d shifts were excluded from this report.\n", len(report.Skipped))
	}

	return b.String()
}

// SendCoverageSummary builds the coverage report and emails it to cfg.Summary.Recipients
func SendCoverageSummary(ctx context.Context, store db.SnapshotStore, mailer Mailer, cfg *config.Config, logger *zap.Logger, start time.Time) (*SummaryResult, error) {
	if len(cfg.Summary.Recipients) == 0 {
		return nil, fmt.Errorf("no summary recipients configured")
	}

	report, err := CoverageReport(ctx, store, cfg, logger, start)
	if err != nil {
		return nil, err
	}

	subject := cfg.Summary.Subject
	if subject == "" {
		subject = defaultSummarySubject
	}
	subject = fmt.Sprintf("%s: %s to %s", subject, report.From, report.To)
	body := FormatSummary(report)

	result := &SummaryResult{
		Report:  report,
		Subject: subject,
		Body:    body,
	}

	for _, recipient := range cfg.Summary.Recipients {
		logger.Debug("Sending coverage summary", zap.String("to", recipient))
		if err := mailer.SendEmail(recipient, subject, body); err != nil {
			return result, fmt.Errorf("failed to send summary to %s: %w", recipient, err)
		}
		metrics.SummariesSentTotal.Inc()
		result.Recipients = append(result.Recipients, recipient)
	}

	logger.Info("Coverage summary sent",
		zap.String("report_id", report.ID),
		zap.Strings("recipients", result.Recipients))

	return result, nil
}
