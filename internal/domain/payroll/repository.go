package payroll

import "context"

// PayslipRepository is the upstream payslip API.
type PayslipRepository interface {
	List(ctx context.Context, token string, filter PayslipFilter) ([]Payslip, error)
	Get(ctx context.Context, token, id string) (Payslip, error)
}
