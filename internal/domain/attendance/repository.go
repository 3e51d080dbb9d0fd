package attendance

import "context"

// AttendanceRepository is the upstream attendance API.
type AttendanceRepository interface {
	Submit(ctx context.Context, token string, req SubmitRequest) (LogRecord, error)
	ListLogs(ctx context.Context, token string, filter LogFilter) ([]LogRecord, error)
}
