package upstream

import (
	"context"
	"net/url"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

type payslipRepository struct {
	client *apiclient.Client
}

func NewPayslipRepository(client *apiclient.Client) payroll.PayslipRepository {
	return &payslipRepository{client: client}
}

func (r *payslipRepository) List(ctx context.Context, token string, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	q := url.Values{}
	setIf(q, "period", filter.Period)
	setIf(q, "employee_id", filter.EmployeeID)
	setIf(q, "status", filter.Status)

	body, err := r.client.Get(ctx, token, "/payroll/payslip", q)
	if err != nil {
		return nil, err
	}
	return payload.MapList("payslip", unwrapList(body, "payslips"), payroll.MapPayslip)
}

func (r *payslipRepository) Get(ctx context.Context, token, id string) (payroll.Payslip, error) {
	seg, err := segment(id)
	if err != nil {
		return payroll.Payslip{}, err
	}
	body, err := r.client.Get(ctx, token, "/payroll/payslip/"+seg, nil)
	if err != nil {
		return payroll.Payslip{}, notFound(err, payroll.ErrPayslipNotFound)
	}
	if body == nil {
		return payroll.Payslip{}, emptyResponse("payslip")
	}
	return payroll.MapPayslip(unwrapOne(body, "payslip"))
}
