package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var applicationStatuses = map[string]string{
	"pending":   StatusPending,
	"applied":   StatusPending,
	"submitted": StatusPending,
	"approved":  StatusApproved,
	"rejected":  StatusRejected,
	"declined":  StatusRejected,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"withdrawn": StatusCancelled,
}

var typeStatuses = map[string]string{
	"active":   "active",
	"enabled":  "active",
	"inactive": "inactive",
	"disabled": "inactive",
}

// nameKeys are the keys read from an embedded leave type object.
var nameKeys = []string{"name", "leave_type_name", "type_name"}

type LeaveType struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	DaysAllowed  float64 `json:"daysAllowed"`
	CarryForward bool    `json:"carryForward"`
	Paid         bool    `json:"paid"`
	Status       string  `json:"status"`
}

type LeaveBalance struct {
	LeaveType string  `json:"leaveType"`
	Allocated float64 `json:"allocated"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type LeaveApplication struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	EmployeeName     string     `json:"employeeName"`
	LeaveType        string     `json:"leaveType"`
	StartDate        string     `json:"startDate"`
	EndDate          string     `json:"endDate"`
	Days             float64    `json:"days"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	ReportingManager string     `json:"reportingManager"`
	AppliedAt        *time.Time `json:"appliedAt,omitempty"`
}

func MapLeaveType(data []byte) (LeaveType, error) {
	o, err := payload.Decode("leave_type", data)
	if err != nil {
		return LeaveType{}, err
	}
	o.Ignore("__v", "company_id", "description", "created_at", "updated_at", "createdAt", "updatedAt")

	t := LeaveType{
		ID:           o.ID("id", "_id", "leave_type_id"),
		Name:         o.RequiredString("name", "leave_type_name", "type_name", "leave_type"),
		Code:         o.String("code", "leave_code", "short_code"),
		DaysAllowed:  o.Float("daysAllowed", "days_allowed", "max_days", "total_days", "days"),
		CarryForward: o.Bool("carryForward", "carry_forward", "is_carry_forward"),
		Paid:         o.Bool("paid", "is_paid"),
		Status:       o.EnumWith(typeStatuses, "active", "status"),
	}
	o.Check(t.DaysAllowed >= 0, "daysAllowed", "must not be negative")
	return t, o.Err()
}

// MapLeaveBalance derives remaining from allocated and used when upstream omits it.
func MapLeaveBalance(data []byte) (LeaveBalance, error) {
	o, err := payload.Decode("leave_balance", data)
	if err != nil {
		return LeaveBalance{}, err
	}
	o.Ignore("id", "_id", "__v", "employee_id", "year", "created_at", "updated_at")

	b := LeaveBalance{
		LeaveType: o.Ref(nameKeys, "leaveType", "leave_type", "leave_type_name", "type"),
		Allocated: o.Float("allocated", "total", "total_days", "allocated_days", "quota"),
		Used:      o.Float("used", "used_days", "taken"),
	}
	o.Check(b.LeaveType != "", "leaveType", "is required")
	if remaining := o.OptionalFloat("remaining", "balance", "remaining_days", "available"); remaining != nil {
		b.Remaining = *remaining
	} else {
		b.Remaining = b.Allocated - b.Used
	}
	return b, o.Err()
}

var employeeNameKeys = []string{"name", "full_name", "employee_name"}

func MapLeaveApplication(data []byte) (LeaveApplication, error) {
	o, err := payload.Decode("leave_application", data)
	if err != nil {
		return LeaveApplication{}, err
	}
	o.Ignore("__v", "company_id", "updated_at", "updatedAt", "attachment", "attachment_url", "approved_by", "approved_at", "rejection_reason")

	a := LeaveApplication{ID: o.ID("id", "_id", "application_id")}

	// The employee may be embedded; its name then fills employeeName.
	if raw, ok := o.Raw("employee"); ok {
		emp, err := payload.Decode("leave_application.employee", raw)
		if err == nil {
			emp.Ignore("email", "first_name", "last_name", "department", "designation", "employee_code")
			a.EmployeeID = emp.ID("id", "_id", "employee_id")
			a.EmployeeName = emp.String(employeeNameKeys...)
			if err := emp.Err(); err != nil {
				return LeaveApplication{}, err
			}
		} else {
			o.Check(false, "employee", "must be an object")
		}
	}
	if id := o.OptionalID("employeeId", "employee_id", "emp_id"); id != "" {
		a.EmployeeID = id
	}
	if name := o.String("employeeName", "employee_name"); name != "" {
		a.EmployeeName = name
	}
	o.Check(a.EmployeeID != "", "employeeId", "is required")

	a.LeaveType = o.Ref(nameKeys, "leaveType", "leave_type", "leave_type_name", "type")
	a.StartDate = o.RequiredDate("startDate", "start_date", "from_date", "from")
	a.EndDate = o.RequiredDate("endDate", "end_date", "to_date", "to")
	a.Reason = o.String("reason", "remarks", "description")
	a.Status = o.EnumWith(applicationStatuses, StatusPending, "status", "leave_status")
	a.ReportingManager = o.Ref([]string{"id", "_id", "name"}, "reportingManager", "reporting_manager", "manager", "approver")
	a.AppliedAt = o.Time("appliedAt", "applied_at", "applied_on", "created_at", "createdAt")

	o.Check(a.LeaveType != "", "leaveType", "is required")
	o.Check(a.StartDate == "" || a.EndDate == "" || a.StartDate <= a.EndDate, "endDate", "must not be before startDate")

	if days := o.OptionalFloat("days", "total_days", "no_of_days", "number_of_days"); days != nil {
		a.Days = *days
	} else {
		a.Days = float64(InclusiveDays(a.StartDate, a.EndDate))
	}
	return a, o.Err()
}

// InclusiveDays counts calendar days from start to end, both included. It
// returns 0 for an unparsable or inverted range.
func InclusiveDays(start, end string) int {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil || e.Before(s) {
		return 0
	}
	return int(math.Round(e.Sub(s).Hours()/24)) + 1
}
