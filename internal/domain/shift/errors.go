package shift

import "errors"

var ErrShiftNotFound = errors.New("Shift not found")
