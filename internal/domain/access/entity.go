package access

import "strings"

type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionApprove Action = "approve"
)

func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionCreate, ActionEdit, ActionApprove:
		return true
	}
	return false
}

// Modules gated by the role table.
const (
	ModuleDashboard        = "dashboard"
	ModuleEmployees        = "employees"
	ModuleAttendance       = "attendance"
	ModuleLeave            = "leave"
	ModuleLeaveApprovals   = "leave_approvals"
	ModulePayroll          = "payroll"
	ModuleSalaryStructures = "salary_structures"
	ModuleAssets           = "assets"
	ModuleHolidays         = "holidays"
	ModuleFiscalYears      = "fiscal_years"
	ModuleShifts           = "shifts"
	ModuleReports          = "reports"
	ModuleRoles            = "roles"
)

// ModulePermission is the flag set a role grants on one module.
type ModulePermission struct {
	View    bool `json:"view"`
	Create  bool `json:"create"`
	Edit    bool `json:"edit"`
	Approve bool `json:"approve"`
}

func (p ModulePermission) Allows(a Action) bool {
	switch a {
	case ActionView:
		return p.View
	case ActionCreate:
		return p.Create
	case ActionEdit:
		return p.Edit
	case ActionApprove:
		return p.Approve
	}
	return false
}

func (p ModulePermission) merge(other ModulePermission) ModulePermission {
	return ModulePermission{
		View:    p.View || other.View,
		Create:  p.Create || other.Create,
		Edit:    p.Edit || other.Edit,
		Approve: p.Approve || other.Approve,
	}
}

// RoleDefinition maps module name to the flags the role grants.
type RoleDefinition struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Modules     map[string]ModulePermission `json:"modules"`
}

// RoleTable is the full set of role definitions fetched for a session.
// A nil table means it has not been loaded.
type RoleTable []RoleDefinition

// Find matches a role by name, ignoring case.
func (t RoleTable) Find(name string) (RoleDefinition, bool) {
	for _, def := range t {
		if strings.EqualFold(def.Name, name) {
			return def, true
		}
	}
	return RoleDefinition{}, false
}

// moduleAliases lists the other keys upstream role tables have used for a module.
var moduleAliases = map[string][]string{
	ModuleDashboard:        {"home", "overview"},
	ModuleEmployees:        {"employee", "employee_management", "employees_management", "staff"},
	ModuleAttendance:       {"attendance_management", "attendances", "check_in"},
	ModuleLeave:            {"leaves", "leave_management", "leave_application", "leave_applications"},
	ModuleLeaveApprovals:   {"leave_approval", "approvals"},
	ModulePayroll:          {"payroll_management", "payslip", "payslips"},
	ModuleSalaryStructures: {"salary_structure", "salary"},
	ModuleAssets:           {"asset", "asset_management"},
	ModuleHolidays:         {"holiday", "holiday_list"},
	ModuleFiscalYears:      {"fiscal_year", "fiscalyear", "financial_year"},
	ModuleShifts:           {"shift", "shift_management"},
	ModuleReports:          {"report", "reporting", "analytics"},
	ModuleRoles:            {"role", "role_management", "roles_permissions"},
}

// Aliases returns the alias keys known for module.
func Aliases(module string) []string {
	return moduleAliases[strings.ToLower(module)]
}
