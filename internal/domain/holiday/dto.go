package holiday

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"

type HolidayRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Date        string `json:"date" validate:"required,date"`
	Type        string `json:"type" validate:"required,oneof=public optional restricted"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

func (r HolidayRequest) Validate() error {
	return validator.Struct(r)
}
