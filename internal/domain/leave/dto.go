package leave

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" validate:"required"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	Reason    string `json:"reason" validate:"required,max=1000"`
	HalfDay   bool   `json:"half_day,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if !validator.As(err, &errs) {
			return err
		}
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	end, okEnd := validator.IsValidDate(r.EndDate)
	if okStart && okEnd {
		if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if r.HalfDay && !end.Equal(start) {
			errs.Add("half_day", "half_day leave must start and end on the same date")
		}
	}
	return errs.Err()
}

type ReviewRequest struct {
	ID      string `json:"-"`
	Comment string `json:"comment,omitempty" validate:"max=500"`
}

// Validate requires a comment when rejecting.
func (r *ReviewRequest) Validate(reject bool) error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if reject && validator.IsEmpty(r.Comment) {
		errs.Add("comment", "comment is required when rejecting a leave application")
	}
	if len(r.Comment) > 500 {
		errs.Add("comment", "comment must not exceed 500 characters")
	}
	return errs.Err()
}

type ApplicationFilter struct {
	Status    string `json:"status" validate:"omitempty,oneof=pending approved rejected cancelled"`
	LeaveType string `json:"leave_type"`
	From      string `json:"from" validate:"omitempty,date"`
	To        string `json:"to" validate:"omitempty,date"`
}

func (f *ApplicationFilter) Validate() error {
	return validator.Struct(f)
}
