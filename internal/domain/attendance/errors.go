package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	// ErrVersionConflict means a concurrent writer updated the record between
	// read and write. The caller leaves the record for the next pass.
	ErrVersionConflict = errors.New("attendance record version conflict")
	ErrInvalidDateRange = errors.New("invalid date range")
)
