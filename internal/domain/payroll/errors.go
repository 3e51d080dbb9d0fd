package payroll

import "errors"

var (
	ErrPayslipNotFound         = errors.New("Payslip not found")
	ErrSalaryStructureNotFound = errors.New("Salary structure not found")
)
