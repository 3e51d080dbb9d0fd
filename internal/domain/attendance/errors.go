package attendance

import "errors"

var (
	ErrLocationPermissionDenied = errors.New("Location permission denied")
	ErrLocationUnavailable      = errors.New("Location unavailable")
	ErrLocationTimeout          = errors.New("Location request timed out")
	ErrCameraPermissionDenied   = errors.New("Camera permission denied")
	ErrCameraUnavailable        = errors.New("No camera device available")
	ErrOutsideOffice            = errors.New("You are not within range of any office")
	ErrInvalidKind              = errors.New("Invalid attendance capture kind")
)
