package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

var statuses = map[string]string{
	"active":     StatusActive,
	"inactive":   StatusInactive,
	"on_leave":   StatusOnLeave,
	"leave":      StatusOnLeave,
	"terminated": StatusTerminated,
	"resigned":   StatusTerminated,
	"exited":     StatusTerminated,
}

// Filters are the list query parameters forwarded upstream.
var Filters = []string{"search", "department", "designation", "status", "page", "limit"}

type Employee struct {
	ID               string     `json:"id"`
	EmployeeCode     string     `json:"employeeCode"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Department       string     `json:"department"`
	Designation      string     `json:"designation"`
	ReportingManager string     `json:"reportingManager"`
	DateOfJoining    string     `json:"dateOfJoining"`
	Status           string     `json:"status"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func Map(data []byte) (Employee, error) {
	o, err := payload.Decode("employee", data)
	if err != nil {
		return Employee{}, err
	}
	o.Ignore("__v", "avatar", "avatar_url", "profile_picture", "user_id", "company_id")

	e := Employee{
		ID:               o.ID("id", "_id", "employee_id"),
		EmployeeCode:     o.String("employeeCode", "employee_code", "emp_code", "code"),
		FirstName:        o.RequiredString("firstName", "first_name"),
		LastName:         o.String("lastName", "last_name"),
		Email:            o.String("email", "email_address", "work_email"),
		Phone:            o.String("phone", "phone_number", "mobile"),
		Department:       o.Ref([]string{"name", "department_name"}, "department", "department_name", "dept"),
		Designation:      o.Ref([]string{"name", "title"}, "designation", "job_title", "position"),
		ReportingManager: o.Ref([]string{"id", "_id"}, "reportingManager", "reporting_manager", "manager_id", "manager"),
		DateOfJoining:    o.Date("dateOfJoining", "date_of_joining", "joining_date", "doj"),
		Status:           o.EnumWith(statuses, StatusActive, "status", "employment_status"),
		CreatedAt:        o.Time("createdAt", "created_at"),
		UpdatedAt:        o.Time("updatedAt", "updated_at"),
	}
	return e, o.Err()
}
