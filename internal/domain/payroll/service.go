package payroll

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type PayslipService interface {
	List(ctx context.Context, sess *session.Session, filter PayslipFilter) ([]Payslip, error)
	Get(ctx context.Context, sess *session.Session, id string) (Payslip, error)
}
