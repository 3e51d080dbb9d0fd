package http

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	Env         string
	Version     string
	LogLevel    slog.Level
	CORSOrigins []string
	// UploadsDir is served under /uploads when proofs are stored locally.
	UploadsDir string
	Metrics    *metrics.Metrics
}

type Handlers struct {
	Auth       AuthHandler
	Access     AccessHandler
	Dashboard  DashboardHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Report     ReportHandler

	Employees        ResourceRoutes
	Assets           ResourceRoutes
	Holidays         ResourceRoutes
	FiscalYears      ResourceRoutes
	Shifts           ResourceRoutes
	SalaryStructures ResourceRoutes
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, authService auth.AuthService, accessService access.AccessService, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-portal"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	gate := middleware.NewGate(accessService, opts.Metrics)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.SessionOptional(JWTService, authService))
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires a live portal session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.SessionRequired(JWTService, authService))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Auth.Me)
				r.Post("/role", h.Auth.SwitchRole)
				r.Get("/access", h.Access.Access)
				r.Get("/navigation", h.Access.Navigation)
				r.Get("/select-tab", h.Access.SelectTab)
			})

			r.With(gate.RequireModule(access.ModuleDashboard, access.ActionView)).Get("/dashboard", h.Dashboard.Get)
			r.With(gate.RequireModule(access.ModuleRoles, access.ActionView)).Get("/roles", h.Access.ListRoles)

			mountResource(r, gate, "/employees", access.ModuleEmployees, h.Employees)
			mountResource(r, gate, "/assets", access.ModuleAssets, h.Assets)
			mountResource(r, gate, "/holidays", access.ModuleHolidays, h.Holidays)
			mountResource(r, gate, "/fiscal-years", access.ModuleFiscalYears, h.FiscalYears)
			mountResource(r, gate, "/shifts", access.ModuleShifts, h.Shifts)

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(gate.RequireModule(access.ModuleAttendance, access.ActionCreate))
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
				})
				r.Group(func(r chi.Router) {
					r.Use(gate.RequireModule(access.ModuleAttendance, access.ActionView))
					r.Get("/logs", h.Attendance.ListLogs)
					r.Get("/offices", h.Attendance.Offices)
					r.Post("/offices/nearest", h.Attendance.NearestOffice)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(gate.RequireModule(access.ModuleLeave, access.ActionView))
					r.Get("/types", h.Leave.ListTypes)
					r.Get("/balances", h.Leave.MyBalances)
					r.Get("/applications", h.Leave.MyApplications)
				})
				r.With(gate.RequireModule(access.ModuleLeave, access.ActionCreate)).Post("/applications", h.Leave.Apply)

				r.Group(func(r chi.Router) {
					r.Use(gate.RequireModule(access.ModuleLeaveApprovals, access.ActionApprove))
					r.Get("/approvals", h.Leave.PendingApprovals)
					r.Post("/applications/{id}/approve", h.Leave.Approve)
					r.Post("/applications/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(gate.RequireModule(access.ModulePayroll, access.ActionView))
					r.Get("/payslips", h.Payroll.ListPayslips)
					r.Get("/payslips/{id}", h.Payroll.GetPayslip)
				})
				mountResource(r, gate, "/salary-structures", access.ModuleSalaryStructures, h.SalaryStructures)
			})

			r.With(gate.RequireModule(access.ModuleReports, access.ActionView)).Get("/reports/{kind}", h.Report.Get)

			if opts.UploadsDir != "" {
				fs := http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(opts.UploadsDir)))
				r.With(
					gate.RequireModule(access.ModuleAttendance, access.ActionView),
					gate.RequireModuleUnless(access.ModuleAttendance, access.ActionEdit, ownsProof),
				).Handle("/uploads/*", fs)
			}
		})
	})
	return r
}

const uploadsPrefix = "/api/v1/uploads/"

// ownsProof reports whether the requested upload was archived for the
// session's own user. Other users' proofs need attendance edit.
func ownsProof(r *http.Request, sess *session.Session) bool {
	key := strings.TrimPrefix(path.Clean(r.URL.Path), uploadsPrefix)
	return strings.HasPrefix(key, attendance.ProofKeyPrefix(sess.UserID))
}

// mountResource registers the CRUD routes of one entity. Delete is gated on
// edit since roles carry no separate delete flag.
func mountResource(r chi.Router, gate *middleware.Gate, pattern, module string, h ResourceRoutes) {
	r.Route(pattern, func(r chi.Router) {
		r.With(gate.RequireModule(module, access.ActionView)).Get("/", h.List)
		r.With(gate.RequireModule(module, access.ActionView)).Get("/{id}", h.Get)
		r.With(gate.RequireModule(module, access.ActionCreate)).Post("/", h.Create)
		r.With(gate.RequireModule(module, access.ActionEdit)).Put("/{id}", h.Update)
		r.With(gate.RequireModule(module, access.ActionEdit)).Delete("/{id}", h.Delete)
	})
}
