package shift

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"

type ShiftRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
	GraceMinutes int    `json:"grace_minutes" validate:"gte=0,lte=240"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// Validate rejects a shift whose end time is not after its start time.
func (r ShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if !validator.As(err, &errs) {
			return err
		}
	}

	start, okStart := validator.IsValidClock(r.StartTime)
	end, okEnd := validator.IsValidClock(r.EndTime)
	if okStart && okEnd && !end.After(start) {
		errs.Add("end_time", "end_time must be after start_time")
	}
	return errs.Err()
}
