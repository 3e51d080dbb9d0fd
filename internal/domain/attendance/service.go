package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geo"
)

type AttendanceService interface {
	Capture(ctx context.Context, sess *session.Session, req CaptureRequest) (CaptureResult, error)
	ListLogs(ctx context.Context, sess *session.Session, filter LogFilter) ([]LogRecord, error)
	Offices() []geo.Office
	NearestOffice(req NearestOfficeRequest) (NearestOfficeResponse, error)
}
