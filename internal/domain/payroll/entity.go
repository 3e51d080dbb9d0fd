package payroll

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "draft"
	StatusProcessed = "processed"
	StatusPaid      = "paid"
)

var payslipStatuses = map[string]string{
	"draft":     StatusDraft,
	"pending":   StatusDraft,
	"generated": StatusProcessed,
	"processed": StatusProcessed,
	"approved":  StatusProcessed,
	"paid":      StatusPaid,
	"disbursed": StatusPaid,
}

var SalaryStructureFilters = []string{"status"}

type SalaryStructure struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Basic         decimal.Decimal `json:"basic"`
	Allowances    decimal.Decimal `json:"allowances"`
	Deductions    decimal.Decimal `json:"deductions"`
	EffectiveFrom string          `json:"effectiveFrom"`
	Status        string          `json:"status"`
}

// Gross is basic plus allowances.
func (s SalaryStructure) Gross() decimal.Decimal {
	return s.Basic.Add(s.Allowances)
}

func (s SalaryStructure) Net() decimal.Decimal {
	return s.Gross().Sub(s.Deductions)
}

type Payslip struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	Period          string          `json:"period"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	Status          string          `json:"status"`
	PaidOn          string          `json:"paidOn"`
}

// MapSalaryStructure accepts allowances and deductions either as totals or
// as lists of {name, amount} components, which are summed.
func MapSalaryStructure(data []byte) (SalaryStructure, error) {
	o, err := payload.Decode("salary_structure", data)
	if err != nil {
		return SalaryStructure{}, err
	}
	o.Ignore("__v", "company_id", "description", "created_at", "updated_at", "createdAt", "updatedAt", "gross", "net")

	s := SalaryStructure{
		ID:            o.ID("id", "_id", "salary_structure_id"),
		Name:          o.RequiredString("name", "structure_name", "title"),
		Basic:         o.Decimal("basic", "basic_salary", "basic_pay"),
		EffectiveFrom: o.Date("effectiveFrom", "effective_from", "effective_date"),
		Status:        o.Enum([]string{"active", "inactive"}, "active", "status"),
	}
	s.Allowances = components(o, "allowances", "total_allowances", "allowance")
	s.Deductions = components(o, "deductions", "total_deductions", "deduction")
	o.Check(!s.Basic.IsNegative(), "basic", "must not be negative")
	return s, o.Err()
}

func components(o *payload.Object, aliases ...string) decimal.Decimal {
	raw, ok := o.Raw(aliases...)
	if !ok {
		return decimal.Zero
	}
	if d, ok := parseAmount(raw); ok {
		return d
	}

	items, err := payload.DecodeList(o.Entity()+"."+aliases[0], raw)
	if err != nil {
		o.Check(false, aliases[0], "must be an amount or a list of components")
		return decimal.Zero
	}
	total := decimal.Zero
	for i, item := range items {
		c, err := payload.Decode(o.Entity()+"."+aliases[0], item)
		if err != nil {
			o.Check(false, fmt.Sprintf("%s[%d]", aliases[0], i), "must be an object")
			continue
		}
		c.Ignore("id", "_id", "name", "type", "code", "taxable")
		total = total.Add(c.Decimal("amount", "value"))
		if err := c.Err(); err != nil {
			o.Check(false, fmt.Sprintf("%s[%d]", aliases[0], i), err.Error())
		}
	}
	return total
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		d, err := decimal.NewFromString(s)
		return d, err == nil
	}
	return decimal.Zero, false
}

// MapPayslip reads a payslip. The period may arrive as "YYYY-MM", as a date
// inside the month, or as separate month and year numbers. Net pay defaults
// to gross minus deductions.
func MapPayslip(data []byte) (Payslip, error) {
	o, err := payload.Decode("payslip", data)
	if err != nil {
		return Payslip{}, err
	}
	o.Ignore("__v", "company_id", "created_at", "updated_at", "createdAt", "updatedAt", "earnings", "deductions_breakdown", "pdf_url")

	p := Payslip{
		ID:              o.ID("id", "_id", "payslip_id"),
		EmployeeID:      o.Ref([]string{"id", "_id"}, "employeeId", "employee_id", "employee"),
		EmployeeName:    o.String("employeeName", "employee_name"),
		GrossPay:        o.Decimal("grossPay", "gross_pay", "gross_salary", "gross"),
		TotalDeductions: o.Decimal("totalDeductions", "total_deductions", "deductions"),
		Status:          o.EnumWith(payslipStatuses, StatusDraft, "status", "payment_status"),
		PaidOn:          o.Date("paidOn", "paid_on", "payment_date", "paid_at"),
	}

	if period := o.String("period", "pay_period"); period != "" {
		p.Period = normalizePeriod(period)
		o.Check(p.Period != "", "period", "must be a YYYY-MM period")
		o.Ignore("month", "year")
	} else {
		month, year := o.Int("month"), o.Int("year")
		o.Check(month >= 1 && month <= 12 && year > 0, "period", "is required")
		if month >= 1 && month <= 12 && year > 0 {
			p.Period = fmt.Sprintf("%04d-%02d", year, month)
		}
	}

	if o.Has("netPay", "net_pay", "net_salary", "net") {
		p.NetPay = o.Decimal("netPay", "net_pay", "net_salary", "net")
	} else {
		o.Ignore("netPay", "net_pay", "net_salary", "net")
		p.NetPay = p.GrossPay.Sub(p.TotalDeductions)
	}
	return p, o.Err()
}

func normalizePeriod(s string) string {
	if len(s) >= 7 && s[4] == '-' {
		if _, err := strconv.Atoi(s[:4]); err != nil {
			return ""
		}
		month, err := strconv.Atoi(s[5:7])
		if err != nil || month < 1 || month > 12 {
			return ""
		}
		return s[:7]
	}
	return ""
}
