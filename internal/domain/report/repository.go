package report

import "context"

// ReportRepository fetches report tables from the HRMS API.
type ReportRepository interface {
	Fetch(ctx context.Context, token string, req ReportRequest) (Table, error)
}
