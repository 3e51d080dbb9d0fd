package fiscalyear

import "errors"

var ErrFiscalYearNotFound = errors.New("Fiscal year not found")
