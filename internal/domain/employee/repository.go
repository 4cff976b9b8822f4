package employee

import (
	"context"
)

// Repository reads the employee and shift master data owned by the external
// HR process. The engine never mutates it.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	CountActive(ctx context.Context) (int, error)
	CountNonBioExempt(ctx context.Context) (int, error)
	// GetShiftByEmployeeCode returns the employee's assigned shift, or
	// ErrShiftNotFound when no assignment exists.
	GetShiftByEmployeeCode(ctx context.Context, code string) (Shift, error)
}
