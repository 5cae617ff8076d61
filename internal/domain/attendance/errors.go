package attendance

import "errors"

var (
	ErrRecordNotFound   = errors.New("Punch record not found")
	ErrEmptySheet       = errors.New("Uploaded sheet contains no punch rows")
	ErrExceptionsDenied = errors.New("Caller's role cannot view attendance exceptions")
	ErrUploadsAdminOnly = errors.New("Punch uploads are reserved for the attendance admin")
)
