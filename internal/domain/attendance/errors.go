package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Synthesizer configuration errors
	ErrUnknownProfile = errors.New("unknown attendance profile")
	ErrInvalidProfile = errors.New("invalid attendance profile")

	// Persisted state errors
	ErrMalformedState = errors.New("malformed today attendance state")
	ErrStateNotFound  = errors.New("today attendance state not found")

	// General errors
	ErrAttendanceNotFound         = errors.New("attendance record not found")
	ErrNoEmployeeProfile          = errors.New("no employee profile is linked to this account")
	ErrAttendanceAlreadyProcessed = errors.New("attendance has already been approved or rejected")
)
