package payroll

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type PayslipServiceImpl struct {
	payroll.PayslipRepository
}

func NewPayslipService(payslipRepository payroll.PayslipRepository) payroll.PayslipService {
	return &PayslipServiceImpl{PayslipRepository: payslipRepository}
}

// List implements payroll.PayslipService.
func (s *PayslipServiceImpl) List(ctx context.Context, sess *session.Session, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.PayslipRepository.List(ctx, sess.AccessToken, filter)
}

// Get implements payroll.PayslipService.
func (s *PayslipServiceImpl) Get(ctx context.Context, sess *session.Session, id string) (payroll.Payslip, error) {
	if strings.TrimSpace(id) == "" {
		return payroll.Payslip{}, resource.ErrInvalidID
	}
	return s.PayslipRepository.Get(ctx, sess.AccessToken, id)
}
