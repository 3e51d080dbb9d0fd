package upstream

import (
	"github.com/cmlabs-hris/hrms-portal/internal/domain/asset"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/fiscalyear"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/shift"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
)

func NewEmployeeRepository(client *apiclient.Client) *Resource[employee.Employee, employee.EmployeeRequest] {
	return NewResource[employee.Employee, employee.EmployeeRequest](client, "employee", "/employee", employee.Map, employee.ErrEmployeeNotFound)
}

func NewAssetRepository(client *apiclient.Client) *Resource[asset.Asset, asset.AssetRequest] {
	return NewResource[asset.Asset, asset.AssetRequest](client, "asset", "/asset", asset.Map, asset.ErrAssetNotFound)
}

func NewHolidayRepository(client *apiclient.Client) *Resource[holiday.Holiday, holiday.HolidayRequest] {
	return NewResource[holiday.Holiday, holiday.HolidayRequest](client, "holiday", "/holiday", holiday.Map, holiday.ErrHolidayNotFound)
}

func NewFiscalYearRepository(client *apiclient.Client) *Resource[fiscalyear.FiscalYear, fiscalyear.FiscalYearRequest] {
	return NewResource[fiscalyear.FiscalYear, fiscalyear.FiscalYearRequest](client, "fiscal_year", "/fiscal-year", fiscalyear.Map, fiscalyear.ErrFiscalYearNotFound)
}

func NewShiftRepository(client *apiclient.Client) *Resource[shift.Shift, shift.ShiftRequest] {
	return NewResource[shift.Shift, shift.ShiftRequest](client, "shift", "/shift", shift.Map, shift.ErrShiftNotFound)
}

func NewSalaryStructureRepository(client *apiclient.Client) *Resource[payroll.SalaryStructure, payroll.SalaryStructureRequest] {
	return NewResource[payroll.SalaryStructure, payroll.SalaryStructureRequest](client, "salary_structure", "/payroll/salary-structure", payroll.MapSalaryStructure, payroll.ErrSalaryStructureNotFound)
}
