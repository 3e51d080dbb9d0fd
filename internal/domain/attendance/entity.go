package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geo"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

type Kind string

const (
	KindCheckIn  Kind = "check_in"
	KindCheckOut Kind = "check_out"
)

func (k Kind) Valid() bool {
	return k == KindCheckIn || k == KindCheckOut
}

// ProofKeyPrefix is the storage prefix of every proof photo archived for
// userID. Characters outside [A-Za-z0-9_-] are replaced so the ID stays a
// single path segment.
func ProofKeyPrefix(userID string) string {
	segment := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, userID)
	if segment == "" {
		segment = "unknown"
	}
	return "attendance/" + segment + "/"
}

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusOnLeave = "on_leave"
)

var statuses = map[string]string{
	"present":  StatusPresent,
	"on_time":  StatusPresent,
	"absent":   StatusAbsent,
	"late":     StatusLate,
	"half_day": StatusHalfDay,
	"halfday":  StatusHalfDay,
	"on_leave": StatusOnLeave,
	"leave":    StatusOnLeave,
}

type LogRecord struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	EmployeeName     string     `json:"employeeName"`
	Date             string     `json:"date"`
	CheckIn          *time.Time `json:"checkIn,omitempty"`
	CheckOut         *time.Time `json:"checkOut,omitempty"`
	CheckInLocation  string     `json:"checkInLocation"`
	CheckOutLocation string     `json:"checkOutLocation"`
	OfficeName       string     `json:"officeName"`
	Status           string     `json:"status"`
	WorkingHours     float64    `json:"workingHours"`
}

// CaptureResult is returned to the browser after a check-in or check-out.
type CaptureResult struct {
	Kind     Kind       `json:"kind"`
	Record   LogRecord  `json:"record"`
	Office   *geo.Match `json:"office"`
	Address  string     `json:"address,omitempty"`
	ProofKey string     `json:"proofKey,omitempty"`
	ProofURL string     `json:"proofUrl,omitempty"`
}

func MapLogRecord(data []byte) (LogRecord, error) {
	o, err := payload.Decode("attendance_log", data)
	if err != nil {
		return LogRecord{}, err
	}
	o.Ignore("__v", "company_id", "image", "image_url", "photo", "photo_url", "proof_photo_url",
		"latitude", "longitude", "accuracy", "created_at", "updated_at", "createdAt", "updatedAt", "employee_code")

	r := LogRecord{
		ID:               o.ID("id", "_id", "attendance_id"),
		EmployeeID:       o.Ref([]string{"id", "_id"}, "employeeId", "employee_id", "employee"),
		EmployeeName:     o.String("employeeName", "employee_name"),
		Date:             o.Date("date", "attendance_date"),
		CheckIn:          o.Time("checkIn", "check_in", "check_in_time", "clock_in"),
		CheckOut:         o.Time("checkOut", "check_out", "check_out_time", "clock_out"),
		CheckInLocation:  o.String("checkInLocation", "check_in_location", "check_in_address"),
		CheckOutLocation: o.String("checkOutLocation", "check_out_location", "check_out_address"),
		OfficeName:       o.String("officeName", "office_name", "office", "location_name"),
		Status:           o.EnumWith(statuses, StatusPresent, "status", "attendance_status"),
		WorkingHours:     o.Float("workingHours", "working_hours", "total_hours", "hours"),
	}
	if r.Date == "" && r.CheckIn != nil {
		r.Date = r.CheckIn.Format("2006-01-02")
	}
	if r.WorkingHours == 0 && r.CheckIn != nil && r.CheckOut != nil && r.CheckOut.After(*r.CheckIn) {
		r.WorkingHours = roundHours(r.CheckOut.Sub(*r.CheckIn))
	}
	o.Check(r.CheckIn == nil || r.CheckOut == nil || !r.CheckOut.Before(*r.CheckIn), "checkOut", "must not be before checkIn")
	return r, o.Err()
}

func roundHours(d time.Duration) float64 {
	return float64(int64(d.Hours()*100+0.5)) / 100
}
