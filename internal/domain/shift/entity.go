package shift

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var Filters = []string{"status"}

type Shift struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	GraceMinutes int    `json:"graceMinutes"`
	Status       string `json:"status"`
}

func Map(data []byte) (Shift, error) {
	o, err := payload.Decode("shift", data)
	if err != nil {
		return Shift{}, err
	}
	o.Ignore("__v", "company_id", "created_at", "updated_at", "createdAt", "updatedAt", "description")

	s := Shift{
		ID:           o.ID("id", "_id", "shift_id"),
		Name:         o.RequiredString("name", "shift_name"),
		StartTime:    o.Clock("startTime", "start_time", "start"),
		EndTime:      o.Clock("endTime", "end_time", "end"),
		GraceMinutes: o.Int("graceMinutes", "grace_minutes", "grace_period", "grace_time"),
	}
	if o.Has("is_active", "isActive") && !o.Has("status") {
		o.Ignore("status")
		s.Status = StatusInactive
		if o.Bool("is_active", "isActive") {
			s.Status = StatusActive
		}
	} else {
		o.Ignore("is_active", "isActive")
		s.Status = o.Enum([]string{StatusActive, StatusInactive}, StatusActive, "status")
	}
	return s, o.Err()
}
