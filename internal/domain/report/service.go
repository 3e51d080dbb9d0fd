package report

import (
	"bytes"
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type ReportService interface {
	Generate(ctx context.Context, sess *session.Session, req ReportRequest) (Report, error)
	// Export renders the report as a spreadsheet.
	Export(ctx context.Context, sess *session.Session, req ReportRequest) (*bytes.Buffer, error)
}
