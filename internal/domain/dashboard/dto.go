package dashboard

import (
	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
)

// Dashboard widgets, each gated on the module it reads.
const (
	WidgetLeaveBalances    = "leave_balances"
	WidgetPendingApprovals = "pending_approvals"
	WidgetRecentAttendance = "recent_attendance"
	WidgetUpcomingHolidays = "upcoming_holidays"
)

// DashboardResponse carries only the widgets the session may see. Widgets
// lists which ones were loaded, in display order.
type DashboardResponse struct {
	Widgets          []string               `json:"widgets"`
	LeaveBalances    []leave.LeaveBalance   `json:"leaveBalances,omitempty"`
	PendingApprovals *int                   `json:"pendingApprovals,omitempty"`
	RecentAttendance []attendance.LogRecord `json:"recentAttendance,omitempty"`
	UpcomingHolidays []holiday.Holiday      `json:"upcomingHolidays,omitempty"`
}
