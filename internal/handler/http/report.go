package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/report"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	// Get handles GET /reports/{kind}?period=&month=&year=&format=
	Get(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := reportRequestFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.Normalize(time.Now())

	if req.Format != report.FormatXLSX {
		result, err := h.reportService.Generate(r.Context(), sess, req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	buf, err := h.reportService.Export(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+req.Filename()+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Report export write error", "error", err)
	}
}

func reportRequestFromQuery(r *http.Request) (report.ReportRequest, error) {
	q := r.URL.Query()
	req := report.ReportRequest{
		Kind:   report.Kind(chi.URLParam(r, "kind")),
		Period: q.Get("period"),
		Format: q.Get("format"),
	}

	var errs validator.ValidationErrors
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("month", "month must be a number")
		}
		req.Month = month
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("year", "year must be a number")
		}
		req.Year = year
	}
	return req, errs.Err()
}
