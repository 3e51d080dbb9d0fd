package payroll

import (
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryStructureRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Basic         decimal.Decimal `json:"basic"`
	Allowances    decimal.Decimal `json:"allowances"`
	Deductions    decimal.Decimal `json:"deductions"`
	EffectiveFrom string          `json:"effective_from" validate:"required,date"`
	Status        string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (r SalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if !validator.As(err, &errs) {
			return err
		}
	}

	if !r.Basic.IsPositive() {
		errs.Add("basic", "basic must be greater than 0")
	}
	if r.Allowances.IsNegative() {
		errs.Add("allowances", "allowances must not be negative")
	}
	if r.Deductions.IsNegative() {
		errs.Add("deductions", "deductions must not be negative")
	} else if r.Deductions.GreaterThan(r.Basic.Add(r.Allowances)) {
		errs.Add("deductions", "deductions must not exceed basic plus allowances")
	}
	return errs.Err()
}

type PayslipFilter struct {
	Period     string `json:"period" validate:"omitempty,period"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status" validate:"omitempty,oneof=draft processed paid"`
}

func (f *PayslipFilter) Validate() error {
	return validator.Struct(f)
}
