package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayslipRepository struct {
	calls  int
	filter payroll.PayslipFilter
}

func (f *fakePayslipRepository) List(ctx context.Context, token string, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	f.calls++
	f.filter = filter
	return []payroll.Payslip{{ID: "P1", Period: "2024-03", NetPay: decimal.NewFromInt(50000)}}, nil
}

func (f *fakePayslipRepository) Get(ctx context.Context, token, id string) (payroll.Payslip, error) {
	f.calls++
	if id != "P1" {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return payroll.Payslip{ID: "P1"}, nil
}

var sess = &session.Session{ID: "s-1", AccessToken: "tok"}

func TestList(t *testing.T) {
	repo := &fakePayslipRepository{}
	svc := NewPayslipService(repo)

	slips, err := svc.List(context.Background(), sess, payroll.PayslipFilter{Period: "2024-03"})
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.Equal(t, "2024-03", repo.filter.Period)
}

func TestList_InvalidFilter(t *testing.T) {
	repo := &fakePayslipRepository{}
	svc := NewPayslipService(repo)

	_, err := svc.List(context.Background(), sess, payroll.PayslipFilter{Period: "March 2024", Status: "lost"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "period")
	assert.Contains(t, verrs.ToMap(), "status")
	assert.Equal(t, 0, repo.calls)
}

func TestGet(t *testing.T) {
	repo := &fakePayslipRepository{}
	svc := NewPayslipService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, sess, "")
	assert.ErrorIs(t, err, resource.ErrInvalidID)
	assert.Equal(t, 0, repo.calls)

	_, err = svc.Get(ctx, sess, "P9")
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}
