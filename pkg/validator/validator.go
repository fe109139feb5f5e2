package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// IndianMobileRegex matches a bare 10-digit Indian mobile number.
	IndianMobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

	// IndianMobileCCRegex matches the same number prefixed with country code 91.
	IndianMobileCCRegex = regexp.MustCompile(`^91[6-9]\d{9}$`)

	// GSTINRegex matches a 15-character GST identification number,
	// e.g. 22AAAAA0000A1Z5.
	GSTINRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

	mobileStripper = strings.NewReplacer(" ", "", "-", "", "+", "")
)

// NormalizeMobile strips spaces, dashes and plus signs from raw and, when the
// result is a valid Indian mobile number (with or without the 91 country
// code), returns the bare 10-digit form.
func NormalizeMobile(raw string) (string, bool) {
	cleaned := mobileStripper.Replace(raw)

	if len(cleaned) == 10 && IndianMobileRegex.MatchString(cleaned) {
		return cleaned, true
	}
	if len(cleaned) == 12 && IndianMobileCCRegex.MatchString(cleaned) {
		return cleaned[2:], true
	}

	return "", false
}

// NormalizeGSTIN upper-cases and trims raw and reports whether it is a valid
// GST identification number.
func NormalizeGSTIN(raw string) (string, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if GSTINRegex.MatchString(cleaned) {
		return cleaned, true
	}
	return "", false
}

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator with the billing
// domain's custom validations registered.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("inmobile", validateIndianMobile); err != nil {
		return nil, fmt.Errorf("register inmobile validator: %w", err)
	}

	if err := v.RegisterValidation("gstin", validateGSTIN); err != nil {
		return nil, fmt.Errorf("register gstin validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "inmobile":
		return "must be a valid 10-digit mobile number starting with 6-9"
	case "gstin":
		return "must be a valid GST number, e.g. 22AAAAA0000A1Z5"
	default:
		return "is invalid"
	}
}

func validateIndianMobile(fl validator.FieldLevel) bool {
	_, ok := NormalizeMobile(fl.Field().String())
	return ok
}

func validateGSTIN(fl validator.FieldLevel) bool {
	_, ok := NormalizeGSTIN(fl.Field().String())
	return ok
}
