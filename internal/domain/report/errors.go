package report

import "errors"

var ErrReportNotFound = errors.New("Report not found")
