package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 8

// Validator checks account input against the struct tags in models.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom "password" rule registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.ToLower(fld.Name)
	})
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()) == nil
	}); err != nil {
		panic(fmt.Sprintf("register password validation: %v", err))
	}
	return &Validator{validate: v}
}

// Struct validates s and returns a validation ServiceError naming the first bad field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ServiceError{Code: ErrCodeValidation, Message: "invalid input", Err: err}
	}

	fe := fieldErrs[0]
	return &ServiceError{
		Code:    ErrCodeValidation,
		Field:   fe.Field(),
		Message: describeFieldError(fe),
	}
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "password":
		if err := ValidatePassword(stringValue(fe.Value())); err != nil {
			return err.Error()
		}
	}
	return fmt.Sprintf("%s is invalid", field)
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

// ValidatePassword enforces the minimum-strength policy: length plus one
// upper case letter, one lower case letter, one digit and one symbol.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("password must contain an upper case letter")
	case !hasLower:
		return fmt.Errorf("password must contain a lower case letter")
	case !hasDigit:
		return fmt.Errorf("password must contain a digit")
	case !hasSymbol:
		return fmt.Errorf("password must contain a symbol")
	}

	return nil
}

// ValidateID rejects non-positive account ids.
func ValidateID(id int64) error {
	if id <= 0 {
		return &ServiceError{
			Code:    ErrCodeValidation,
			Field:   "id",
			Message: "id must be a positive integer",
		}
	}
	return nil
}
