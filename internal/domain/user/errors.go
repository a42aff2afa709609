package user

import "errors"

var (
	ErrAccessRestricted        = errors.New("access restricted")
	ErrTeamAccessRequired      = errors.New("admin or hr access required")
	ErrEmployeeAccessRequired  = errors.New("employee access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
