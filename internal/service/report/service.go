package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/report"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/export"
)

type ReportServiceImpl struct {
	report.ReportRepository
	now func() time.Time
}

func NewReportService(reportRepository report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepository,
		now:              time.Now,
	}
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, sess *session.Session, req report.ReportRequest) (report.Report, error) {
	req.Normalize(s.now())
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	table, err := s.ReportRepository.Fetch(ctx, sess.AccessToken, req)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to fetch %s report: %w", req.Kind, err)
	}

	return report.Report{
		Kind:        req.Kind,
		Period:      req.Period,
		Month:       req.Month,
		Year:        req.Year,
		Columns:     table.Columns,
		Rows:        table.Rows,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, sess *session.Session, req report.ReportRequest) (*bytes.Buffer, error) {
	req.Format = report.FormatXLSX
	rep, err := s.Generate(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, len(rep.Rows))
	for i, row := range rep.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = spreadsheetValue(cell)
		}
		rows[i] = cells
	}

	buf, err := export.XLSX(export.Table{
		Sheet:   sheetName(rep),
		Columns: headers(rep.Columns),
		Rows:    rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", rep.Kind, err)
	}
	return buf, nil
}

func sheetName(rep report.Report) string {
	if rep.Period == report.PeriodMonth {
		return fmt.Sprintf("%s %04d-%02d", title(string(rep.Kind)), rep.Year, rep.Month)
	}
	return fmt.Sprintf("%s %04d", title(string(rep.Kind)), rep.Year)
}

// headers turns snake_case or camelCase keys into spaced titles.
func headers(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		var b strings.Builder
		for j, r := range c {
			switch {
			case r == '_' || r == '-':
				b.WriteRune(' ')
				continue
			case j > 0 && r >= 'A' && r <= 'Z' && c[j-1] >= 'a' && c[j-1] <= 'z':
				b.WriteRune(' ')
			}
			b.WriteRune(r)
		}
		out[i] = title(strings.TrimSpace(b.String()))
	}
	return out
}

// title upper-cases the first letter of every word.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// spreadsheetValue converts decoded JSON numbers into native numbers so the
// workbook stores them as numeric cells.
func spreadsheetValue(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
