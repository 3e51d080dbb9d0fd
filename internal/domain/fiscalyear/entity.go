package fiscalyear

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"

const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusClosed   = "closed"
)

var statuses = map[string]string{
	"upcoming": StatusUpcoming,
	"planned":  StatusUpcoming,
	"active":   StatusActive,
	"current":  StatusActive,
	"open":     StatusActive,
	"closed":   StatusClosed,
	"inactive": StatusClosed,
}

var Filters = []string{"status"}

type FiscalYear struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

func Map(data []byte) (FiscalYear, error) {
	o, err := payload.Decode("fiscal_year", data)
	if err != nil {
		return FiscalYear{}, err
	}
	o.Ignore("__v", "company_id", "created_at", "updated_at", "createdAt", "updatedAt")

	f := FiscalYear{
		ID:        o.ID("id", "_id", "fiscal_year_id"),
		Name:      o.RequiredString("name", "fiscal_year", "title"),
		StartDate: o.RequiredDate("startDate", "start_date", "from_date"),
		EndDate:   o.RequiredDate("endDate", "end_date", "to_date"),
	}
	if o.Has("is_active", "isActive") && !o.Has("status") {
		o.Ignore("status")
		if o.Bool("is_active", "isActive") {
			f.Status = StatusActive
		} else {
			f.Status = StatusClosed
		}
	} else {
		o.Ignore("is_active", "isActive")
		f.Status = o.EnumWith(statuses, StatusUpcoming, "status")
	}
	o.Check(f.StartDate == "" || f.EndDate == "" || f.StartDate < f.EndDate, "endDate", "must be after startDate")
	return f, o.Err()
}
