package directory

import "errors"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrNameTaken        = errors.New("Employee name already on the active roster")
)
