package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/report"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
)

type reportRepository struct {
	client *apiclient.Client
}

func NewReportRepository(client *apiclient.Client) report.ReportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) Fetch(ctx context.Context, token string, req report.ReportRequest) (report.Table, error) {
	q := url.Values{}
	q.Set("period", req.Period)
	q.Set("year", strconv.Itoa(req.Year))
	if req.Period == report.PeriodMonth {
		q.Set("month", strconv.Itoa(req.Month))
	}

	body, err := r.client.Get(ctx, token, "/reports/"+string(req.Kind), q)
	if err != nil {
		return report.Table{}, notFound(err, report.ErrReportNotFound)
	}
	if body == nil {
		return report.Table{}, emptyResponse("report")
	}
	return report.MapTable(unwrapOne(body, "report"))
}
