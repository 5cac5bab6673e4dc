package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	errors "github.com/silcast/crane-admin/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
	errors []errors.ValidationError
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
		errors: make([]errors.ValidationError, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

// AddError records an error computed outside the fluent chain, e.g. a uniqueness lookup.
func (v *ValidationBuilder) AddError(field, message string, code errors.ErrorCode) *ValidationBuilder {
	v.errors = append(v.errors, errors.ValidationError{Field: field, Message: message, Code: string(code)})
	return v
}

// present unwraps pointers; nil pointers and nil interfaces are absent.
func present(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case *string:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *int64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *int:
		if v == nil {
			return nil, false
		}
		return int64(*v), true
	case int:
		return int64(v), true
	case *float64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *time.Time:
		if v == nil {
			return nil, false
		}
		return *v, true
	case []string:
		return v, v != nil
	}
	return value, true
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationFieldError(fv.FieldName, message, code)
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := present(value)
		if !ok {
			return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
		}
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) == "" {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
			}
		case int64:
			if t == 0 {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
			}
		case time.Time:
			if t.IsZero() {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := present(value); ok {
			if s, ok := v.(string); ok && utf8.RuneCountInString(s) < min {
				return fv.fail(fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min), errors.ErrCodeTooShort)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := present(value); ok {
			if s, ok := v.(string); ok && utf8.RuneCountInString(s) > max {
				return fv.fail(fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max), errors.ErrCodeTooLong)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := present(value); ok {
			if s, ok := v.(string); ok && s != "" && !IsEmail(s) {
				return fv.fail(fmt.Sprintf("%s must be a valid email address", fv.FieldName), errors.ErrCodeInvalidFormat)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := present(value)
		if !ok {
			return nil
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return nil
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fv.fail(fmt.Sprintf("%s must be one of: %s", fv.FieldName, strings.Join(allowed, ", ")), errors.ErrCodeNotAllowed)
	})
	return fv
}

// Between checks numeric values against an inclusive range.
func (fv *FieldValidator) Between(min, max float64) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := present(value)
		if !ok {
			return nil
		}
		var n float64
		switch t := v.(type) {
		case float64:
			n = t
		case int64:
			n = float64(t)
		default:
			return nil
		}
		if n < min || n > max {
			return fv.fail(fmt.Sprintf("%s must be between %s and %s", fv.FieldName, formatNumber(min), formatNumber(max)), errors.ErrCodeOutOfRange)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Min(min float64) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := present(value)
		if !ok {
			return nil
		}
		var n float64
		switch t := v.(type) {
		case float64:
			n = t
		case int64:
			n = float64(t)
		default:
			return nil
		}
		if n < min {
			return fv.fail(fmt.Sprintf("%s must be at least %s", fv.FieldName, formatNumber(min)), errors.ErrCodeOutOfRange)
		}
		return nil
	})
	return fv
}

// Date requires a string parseable by ParseDate.
func (fv *FieldValidator) Date() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := present(value); ok {
			if s, ok := v.(string); ok && s != "" {
				if _, err := ParseDate(s, time.UTC); err != nil {
					return fv.fail(fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", fv.FieldName), errors.ErrCodeInvalidDate)
				}
			}
		}
		return nil
	})
	return fv
}

// DateTime requires a string parseable by ParseDateTime.
func (fv *FieldValidator) DateTime() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := present(value); ok {
			if s, ok := v.(string); ok && s != "" {
				if _, err := ParseDateTime(s, time.UTC); err != nil {
					return fv.fail(fmt.Sprintf("%s must be a valid date and time", fv.FieldName), errors.ErrCodeInvalidDate)
				}
			}
		}
		return nil
	})
	return fv
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// Clock requires HH:MM or HH:MM:SS.
func (fv *FieldValidator) Clock() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := present(value); ok {
			if s, ok := v.(string); ok && s != "" && !clockPattern.MatchString(s) {
				return fv.fail(fmt.Sprintf("%s must be a valid time (HH:MM)", fv.FieldName), errors.ErrCodeInvalidFormat)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	validationErrors := append([]errors.ValidationError{}, v.errors...)

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// IsEmail accepts a bare address, without display name.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, ".")
}

func formatNumber(n float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), ".")
}
