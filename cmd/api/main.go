package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/config"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/asset"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/fiscalyear"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/shift"
	appHTTP "github.com/cmlabs-hris/hrms-portal/internal/handler/http"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geo"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/geocode"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/vault"
	"github.com/cmlabs-hris/hrms-portal/internal/repository/memory"
	"github.com/cmlabs-hris/hrms-portal/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hrms-portal/internal/repository/redis"
	"github.com/cmlabs-hris/hrms-portal/internal/repository/upstream"
	accessService "github.com/cmlabs-hris/hrms-portal/internal/service/access"
	attendanceService "github.com/cmlabs-hris/hrms-portal/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrms-portal/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hrms-portal/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/hrms-portal/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hrms-portal/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hrms-portal/internal/service/report"
	resourceService "github.com/cmlabs-hris/hrms-portal/internal/service/resource"
	goredis "github.com/redis/go-redis/v9"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("portal stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logLevel := parseLevel(cfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).With(
		slog.String("app", "hrms-portal"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("error running migrations: %w", err)
		}
	}

	tokenVault, err := vault.New(cfg.JWT.TokenSealKey)
	if err != nil {
		return fmt.Errorf("error initializing token vault: %w", err)
	}

	m := metrics.New()
	client, err := apiclient.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, apiclient.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("error initializing HRMS client: %w", err)
	}

	roleCache, memCache, closeCache, err := newRoleCache(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeCache()

	fileStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Type, err)
	}

	offices, err := geo.LoadOffices(cfg.Attendance.OfficesFile)
	if err != nil {
		return err
	}

	var reverser geocode.Reverser
	if cfg.Geocoder.Enabled {
		reverser = geocode.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
	}

	// Repositories
	sessionRepo := postgresql.NewSessionRepository(db, tokenVault)
	authGateway := upstream.NewAuthGateway(client)
	roleRepo := upstream.NewRoleRepository(client)
	attendanceRepo := upstream.NewAttendanceRepository(client)
	leaveRepo := upstream.NewLeaveRepository(client)
	payslipRepo := upstream.NewPayslipRepository(client)
	reportRepo := upstream.NewReportRepository(client)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SecureCookie)
	accessSvc := accessService.NewAccessService(roleRepo, roleCache, nil)
	authService := serviceAuth.NewAuthService(authGateway, sessionRepo, accessSvc, JWTService, cfg.JWT.SessionExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, attendanceService.Options{
		Offices:       offices,
		RadiusKm:      cfg.Attendance.RadiusKm,
		RequireOffice: cfg.Attendance.RequireOffice,
		Geocoder:      reverser,
		Storage:       fileStorage,
		Metrics:       m,
	})
	leaveSvc := leaveService.NewLeaveService(leaveRepo)
	payslipSvc := payrollService.NewPayslipService(payslipRepo)
	reportSvc := reportService.NewReportService(reportRepo)

	employeeSvc := resourceService.NewService[employee.Employee, employee.EmployeeRequest](upstream.NewEmployeeRepository(client), employee.Filters)
	assetSvc := resourceService.NewService[asset.Asset, asset.AssetRequest](upstream.NewAssetRepository(client), asset.Filters)
	holidaySvc := resourceService.NewService[holiday.Holiday, holiday.HolidayRequest](upstream.NewHolidayRepository(client), holiday.Filters)
	fiscalYearSvc := resourceService.NewService[fiscalyear.FiscalYear, fiscalyear.FiscalYearRequest](upstream.NewFiscalYearRepository(client), fiscalyear.Filters)
	shiftSvc := resourceService.NewService[shift.Shift, shift.ShiftRequest](upstream.NewShiftRepository(client), shift.Filters)
	salaryStructureSvc := resourceService.NewService[payroll.SalaryStructure, payroll.SalaryStructureRequest](upstream.NewSalaryStructureRepository(client), payroll.SalaryStructureFilters)

	dashboardSvc := dashboardService.NewDashboardService(accessSvc, leaveSvc, attendanceSvc, holidaySvc)

	// A token the HRMS API rejects ends the portal session that carried it.
	client.SetUnauthorizedHook(func(ctx context.Context) {
		if sess, err := session.FromContext(ctx); err == nil {
			slog.Info("upstream rejected session token", "session_id", sess.ID)
			authService.Expire(context.WithoutCancel(ctx), sess.ID)
		}
	})

	uploadsDir := ""
	if cfg.Storage.Type == "local" {
		uploadsDir = cfg.Storage.BasePath
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:         cfg.App.Env,
		Version:     version,
		LogLevel:    logLevel,
		CORSOrigins: cfg.App.CORSOrigins,
		UploadsDir:  uploadsDir,
		Metrics:     m,
	}, JWTService, authService, accessSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Access:     appHTTP.NewAccessHandler(accessSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payslipSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),

		Employees:        appHTTP.NewResourceHandler("Employee", employeeSvc),
		Assets:           appHTTP.NewResourceHandler("Asset", assetSvc),
		Holidays:         appHTTP.NewResourceHandler("Holiday", holidaySvc),
		FiscalYears:      appHTTP.NewResourceHandler("Fiscal year", fiscalYearSvc),
		Shifts:           appHTTP.NewResourceHandler("Shift", shiftSvc),
		SalaryStructures: appHTTP.NewResourceHandler("Salary structure", salaryStructureSvc),
	})

	var pruner cron.Pruner
	if memCache != nil {
		pruner = memCache
	}
	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(sessionRepo, pruner).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRoleCache returns the Redis cache when REDIS_ADDR is set, otherwise the
// in-process one, which is also returned for periodic pruning.
func newRoleCache(ctx context.Context, cfg config.RedisConfig) (access.RoleCache, *memory.RoleCache, func(), error) {
	if cfg.Addr == "" {
		c := memory.NewRoleCache()
		return c, c, func() {}, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return redisRepo.NewRoleCache(rdb), nil, func() { _ = rdb.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
