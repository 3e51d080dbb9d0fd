package fiscalyear

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"

type FiscalYearRequest struct {
	Name      string `json:"name" validate:"required,max=50"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=upcoming active closed"`
}

func (r FiscalYearRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if !validator.As(err, &errs) {
			return err
		}
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	end, okEnd := validator.IsValidDate(r.EndDate)
	if okStart && okEnd && !end.After(start) {
		errs.Add("end_date", "end_date must be after start_date")
	}
	return errs.Err()
}
