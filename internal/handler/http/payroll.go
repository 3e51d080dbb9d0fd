package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payslipService payroll.PayslipService
}

func NewPayrollHandler(payslipService payroll.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{payslipService: payslipService}
}

// ListPayslips handles GET /payroll/payslips
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	filter := payroll.PayslipFilter{
		Period:     q.Get("period"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
	}

	payslips, err := h.payslipService.List(r.Context(), sess, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payslips)
}

// GetPayslip handles GET /payroll/payslips/{id}
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payslip, err := h.payslipService.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payslip)
}
