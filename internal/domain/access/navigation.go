package access

import "strings"

// NavTab is a leaf navigation entry gated on one module action.
type NavTab struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Module string `json:"module"`
	Action Action `json:"action"`
}

// NavSection groups tabs under a common route prefix.
type NavSection struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Path  string   `json:"path"`
	Tabs  []NavTab `json:"tabs"`
}

// Selection is the section and tab chosen for a route.
type Selection struct {
	Section NavSection `json:"section"`
	Tab     NavTab     `json:"tab"`
}

var DefaultNavigation = []NavSection{
	{Key: "dashboard", Title: "Dashboard", Path: "/dashboard", Tabs: []NavTab{
		{Key: "overview", Title: "Overview", Path: "/dashboard", Module: ModuleDashboard, Action: ActionView},
	}},
	{Key: "employees", Title: "Employees", Path: "/employees", Tabs: []NavTab{
		{Key: "directory", Title: "Directory", Path: "/employees", Module: ModuleEmployees, Action: ActionView},
		{Key: "new-employee", Title: "Add Employee", Path: "/employees/new", Module: ModuleEmployees, Action: ActionCreate},
		{Key: "assets", Title: "Assets", Path: "/employees/assets", Module: ModuleAssets, Action: ActionView},
	}},
	{Key: "attendance", Title: "Attendance", Path: "/attendance", Tabs: []NavTab{
		{Key: "capture", Title: "Check In / Out", Path: "/attendance/capture", Module: ModuleAttendance, Action: ActionCreate},
		{Key: "logs", Title: "Attendance Logs", Path: "/attendance/logs", Module: ModuleAttendance, Action: ActionView},
		{Key: "shifts", Title: "Shifts", Path: "/attendance/shifts", Module: ModuleShifts, Action: ActionView},
	}},
	{Key: "leave", Title: "Leave", Path: "/leave", Tabs: []NavTab{
		{Key: "my-leave", Title: "My Leave", Path: "/leave/applications", Module: ModuleLeave, Action: ActionView},
		{Key: "apply", Title: "Apply Leave", Path: "/leave/apply", Module: ModuleLeave, Action: ActionCreate},
		{Key: "approvals", Title: "Approvals", Path: "/leave/approvals", Module: ModuleLeaveApprovals, Action: ActionApprove},
		{Key: "leave-types", Title: "Leave Types", Path: "/leave/types", Module: ModuleLeave, Action: ActionEdit},
	}},
	{Key: "payroll", Title: "Payroll", Path: "/payroll", Tabs: []NavTab{
		{Key: "payslips", Title: "Payslips", Path: "/payroll/payslips", Module: ModulePayroll, Action: ActionView},
		{Key: "salary-structures", Title: "Salary Structures", Path: "/payroll/salary-structures", Module: ModuleSalaryStructures, Action: ActionView},
	}},
	{Key: "settings", Title: "Settings", Path: "/settings", Tabs: []NavTab{
		{Key: "holidays", Title: "Holidays", Path: "/settings/holidays", Module: ModuleHolidays, Action: ActionView},
		{Key: "fiscal-years", Title: "Fiscal Years", Path: "/settings/fiscal-years", Module: ModuleFiscalYears, Action: ActionView},
		{Key: "roles", Title: "Roles", Path: "/settings/roles", Module: ModuleRoles, Action: ActionView},
	}},
	{Key: "reports", Title: "Reports", Path: "/reports", Tabs: []NavTab{
		{Key: "attendance-report", Title: "Attendance", Path: "/reports/attendance", Module: ModuleReports, Action: ActionView},
		{Key: "leave-report", Title: "Leave", Path: "/reports/leave", Module: ModuleReports, Action: ActionView},
		{Key: "payroll-report", Title: "Payroll", Path: "/reports/payroll", Module: ModuleReports, Action: ActionView},
		{Key: "headcount-report", Title: "Headcount", Path: "/reports/headcount", Module: ModuleReports, Action: ActionView},
	}},
}

// FilterNavigation drops tabs the user cannot reach and sections left empty.
func FilterNavigation(e *Evaluator, nav []NavSection) []NavSection {
	out := make([]NavSection, 0, len(nav))
	for _, section := range nav {
		var tabs []NavTab
		for _, tab := range section.Tabs {
			if e.CanPerformModuleAction(tab.Module, tab.Action) {
				tabs = append(tabs, tab)
			}
		}
		if len(tabs) == 0 {
			continue
		}
		section.Tabs = tabs
		out = append(out, section)
	}
	return out
}

// SelectTab picks the section whose path is the longest segment prefix of
// route, then the tab within it the same way. A route inside a section that
// matches none of its tabs selects the section's first tab.
func SelectTab(nav []NavSection, route string) (Selection, bool) {
	segs := segments(route)

	sectionIdx, best := -1, -1
	for i, section := range nav {
		if n, ok := prefixLen(segments(section.Path), segs); ok && n > best {
			sectionIdx, best = i, n
		}
	}
	if sectionIdx < 0 || len(nav[sectionIdx].Tabs) == 0 {
		return Selection{}, false
	}
	section := nav[sectionIdx]

	tab := section.Tabs[0]
	best = -1
	for _, t := range section.Tabs {
		if n, ok := prefixLen(segments(t.Path), segs); ok && n > best {
			tab, best = t, n
		}
	}
	return Selection{Section: section, Tab: tab}, true
}

func segments(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

// prefixLen reports whether prefix is a segment prefix of segs.
func prefixLen(prefix, segs []string) (int, bool) {
	if len(prefix) == 0 || len(prefix) > len(segs) {
		return 0, false
	}
	for i := range prefix {
		if prefix[i] != segs[i] {
			return 0, false
		}
	}
	return len(prefix), true
}
