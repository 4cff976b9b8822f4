package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123"))
	assert.True(t, IsNumeric("0"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("-1"))
	assert.False(t, IsNumeric("1.5"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-06-02")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("02-06-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidClock(t *testing.T) {
	clock, ok := IsValidClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 9, clock.Hour())
	assert.Equal(t, 30, clock.Minute())

	_, ok = IsValidClock("24:00")
	assert.False(t, ok)

	_, ok = IsValidClock("9:30:00")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"present", "absent", "late"}
	assert.True(t, IsInSlice("late", statuses))
	assert.False(t, IsInSlice("unknown", statuses))
	assert.False(t, IsInSlice("present", nil))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("EMP-001"))
	assert.True(t, IsValidEmployeeCode("A1"))
	assert.False(t, IsValidEmployeeCode("e"))
	assert.False(t, IsValidEmployeeCode("emp-001"))
	assert.False(t, IsValidEmployeeCode("EMP 001"))
	assert.False(t, IsValidEmployeeCode(""))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "startDate", Message: "invalid date format"},
		{Field: "endDate", Message: "must not be before startDate"},
	}

	assert.Equal(t, "startDate: invalid date format; endDate: must not be before startDate", errs.Error())
	assert.Equal(t, map[string]string{
		"startDate": "invalid date format",
		"endDate":   "must not be before startDate",
	}, errs.ToMap())
}
