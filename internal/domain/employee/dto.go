package employee

import (
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
)

// EmployeeRequest is the create/update body, sent upstream as snake_case.
type EmployeeRequest struct {
	EmployeeCode     string `json:"employee_code" validate:"max=50"`
	FirstName        string `json:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" validate:"max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone,omitempty" validate:"max=30"`
	Department       string `json:"department,omitempty"`
	Designation      string `json:"designation,omitempty"`
	ReportingManager string `json:"reporting_manager,omitempty"`
	DateOfJoining    string `json:"date_of_joining" validate:"required,date"`
	Status           string `json:"status,omitempty" validate:"omitempty,oneof=active inactive on_leave terminated"`
}

func (r EmployeeRequest) Validate() error {
	return validator.Struct(r)
}
