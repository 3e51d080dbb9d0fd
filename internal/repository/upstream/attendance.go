package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

type attendanceRepository struct {
	client *apiclient.Client
}

func NewAttendanceRepository(client *apiclient.Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: client}
}

func captureFilename(req attendance.SubmitRequest) string {
	ext := ".jpg"
	if req.PhotoType == "image/png" {
		ext = ".png"
	}
	return fmt.Sprintf("%s-%d%s", req.Kind, req.CapturedAt.Unix(), ext)
}

func (r *attendanceRepository) Submit(ctx context.Context, token string, req attendance.SubmitRequest) (attendance.LogRecord, error) {
	p := "/attendance/check-in"
	if req.Kind == attendance.KindCheckOut {
		p = "/attendance/check-out"
	}

	fields := map[string]string{
		"latitude":    strconv.FormatFloat(req.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(req.Longitude, 'f', -1, 64),
		"captured_at": req.CapturedAt.UTC().Format(time.RFC3339),
	}
	if req.Accuracy != nil {
		fields["accuracy"] = strconv.FormatFloat(*req.Accuracy, 'f', -1, 64)
	}
	if req.Office != nil {
		fields["office_name"] = req.Office.Office.Name
		fields["distance_km"] = strconv.FormatFloat(req.Office.DistanceKm, 'f', 3, 64)
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.ProofKey != "" {
		fields["proof_key"] = req.ProofKey
	}

	body, err := r.client.PostMultipart(ctx, token, p, apiclient.Multipart{
		Fields: fields,
		Files: []apiclient.FilePart{{
			Field:       "image",
			Filename:    captureFilename(req),
			ContentType: req.PhotoType,
			Content:     req.Photo,
		}},
	})
	if err != nil {
		return attendance.LogRecord{}, err
	}
	if body == nil {
		return attendance.LogRecord{}, emptyResponse("attendance_log")
	}
	return attendance.MapLogRecord(unwrapOne(body, "attendance", "record"))
}

func (r *attendanceRepository) ListLogs(ctx context.Context, token string, filter attendance.LogFilter) ([]attendance.LogRecord, error) {
	q := url.Values{}
	setIf(q, "from", filter.From)
	setIf(q, "to", filter.To)
	setIf(q, "employee_id", filter.EmployeeID)
	setIf(q, "status", filter.Status)

	body, err := r.client.Get(ctx, token, "/attendance/logs", q)
	if err != nil {
		return nil, err
	}
	return payload.MapList("attendance_log", unwrapList(body, "logs", "attendance"), attendance.MapLogRecord)
}
