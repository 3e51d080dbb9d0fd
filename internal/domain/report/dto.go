package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
)

type ReportRequest struct {
	Kind   Kind   `json:"kind"`
	Period string `json:"period"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Format string `json:"format"`
}

// Normalize fills defaults: a monthly JSON report for the current month.
func (r *ReportRequest) Normalize(now time.Time) {
	if r.Period == "" {
		r.Period = PeriodMonth
	}
	if r.Format == "" {
		r.Format = FormatJSON
	}
	if r.Year == 0 {
		r.Year = now.Year()
	}
	if r.Period == PeriodMonth && r.Month == 0 {
		r.Month = int(now.Month())
	}
	if r.Period == PeriodYear {
		r.Month = 0
	}
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.Valid() {
		errs.Add("kind", "kind must be one of: attendance, leave, payroll, headcount")
	}
	if !validator.IsInSlice(r.Period, []string{PeriodMonth, PeriodYear}) {
		errs.Add("period", "period must be one of: month, year")
	}
	if r.Period == PeriodMonth && (r.Month < 1 || r.Month > 12) {
		errs.Add("month", "month must be between 1 and 12")
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs.Add("year", fmt.Sprintf("year must be between 2000 and %d", currentYear+1))
	}
	if !validator.IsInSlice(r.Format, []string{FormatJSON, FormatXLSX}) {
		errs.Add("format", "format must be one of: json, xlsx")
	}

	return errs.Err()
}

// Filename is the download name of an exported report.
func (r *ReportRequest) Filename() string {
	if r.Period == PeriodMonth {
		return fmt.Sprintf("%s-report-%04d-%02d.%s", r.Kind, r.Year, r.Month, r.Format)
	}
	return fmt.Sprintf("%s-report-%04d.%s", r.Kind, r.Year, r.Format)
}
