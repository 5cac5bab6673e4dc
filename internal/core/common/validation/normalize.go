package validation

import (
	"fmt"
	"strings"

	errors "github.com/silcast/crane-admin/internal"
)

// TrimOptional trims s and maps blank strings to nil, the way HTML forms send "no value".
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Taken records a uniqueness violation on field.
func (v *ValidationBuilder) Taken(field string) *ValidationBuilder {
	return v.AddError(field, fmt.Sprintf("the %s has already been taken", field), errors.ErrCodeAlreadyTaken)
}
