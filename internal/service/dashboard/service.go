package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/resource"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"golang.org/x/sync/errgroup"
)

const (
	attendanceWindowDays = 7
	upcomingHolidayLimit = 5
)

type DashboardServiceImpl struct {
	accessService     access.AccessService
	leaveService      leave.LeaveService
	attendanceService attendance.AttendanceService
	holidayService    resource.Service[holiday.Holiday, holiday.HolidayRequest]
	now               func() time.Time
}

func NewDashboardService(
	accessService access.AccessService,
	leaveService leave.LeaveService,
	attendanceService attendance.AttendanceService,
	holidayService resource.Service[holiday.Holiday, holiday.HolidayRequest],
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		accessService:     accessService,
		leaveService:      leaveService,
		attendanceService: attendanceService,
		holidayService:    holidayService,
		now:               time.Now,
	}
}

// Get implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Get(ctx context.Context, sess *session.Session) (*dashboard.DashboardResponse, error) {
	eval := s.accessService.Evaluator(ctx, sess)
	now := s.now()
	today := now.Format("2006-01-02")

	var (
		balances  []leave.LeaveBalance
		approvals []leave.LeaveApplication
		logs      []attendance.LogRecord
		holidays  []holiday.Holiday
	)
	res := &dashboard.DashboardResponse{Widgets: []string{}}

	g, gctx := errgroup.WithContext(ctx)

	if eval.HasModuleAccess(access.ModuleLeave) {
		res.Widgets = append(res.Widgets, dashboard.WidgetLeaveBalances)
		g.Go(func() error {
			var err error
			balances, err = s.leaveService.MyBalances(gctx, sess)
			if err != nil {
				return fmt.Errorf("leave balances: %w", err)
			}
			return nil
		})
	}

	if eval.CanPerformModuleAction(access.ModuleLeaveApprovals, access.ActionApprove) {
		res.Widgets = append(res.Widgets, dashboard.WidgetPendingApprovals)
		g.Go(func() error {
			var err error
			approvals, err = s.leaveService.PendingApprovals(gctx, sess)
			if err != nil {
				return fmt.Errorf("pending approvals: %w", err)
			}
			return nil
		})
	}

	if eval.HasModuleAccess(access.ModuleAttendance) {
		res.Widgets = append(res.Widgets, dashboard.WidgetRecentAttendance)
		g.Go(func() error {
			var err error
			logs, err = s.attendanceService.ListLogs(gctx, sess, attendance.LogFilter{
				From: now.AddDate(0, 0, -attendanceWindowDays).Format("2006-01-02"),
				To:   today,
			})
			if err != nil {
				return fmt.Errorf("recent attendance: %w", err)
			}
			return nil
		})
	}

	if eval.HasModuleAccess(access.ModuleHolidays) {
		res.Widgets = append(res.Widgets, dashboard.WidgetUpcomingHolidays)
		g.Go(func() error {
			all, err := s.holidayService.List(gctx, sess, url.Values{"year": {strconv.Itoa(now.Year())}})
			if err != nil {
				return fmt.Errorf("upcoming holidays: %w", err)
			}
			holidays = upcoming(all, today)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.LeaveBalances = balances
	res.RecentAttendance = logs
	res.UpcomingHolidays = holidays
	if approvals != nil {
		n := len(approvals)
		res.PendingApprovals = &n
	}
	return res, nil
}

// upcoming returns the next holidays on or after today, earliest first.
func upcoming(all []holiday.Holiday, today string) []holiday.Holiday {
	next := make([]holiday.Holiday, 0, len(all))
	for _, h := range all {
		if h.Date >= today {
			next = append(next, h)
		}
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].Date < next[j].Date })
	if len(next) > upcomingHolidayLimit {
		next = next[:upcomingHolidayLimit]
	}
	return next
}
