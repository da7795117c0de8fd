package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation marks bad local input. It is always returned before any
	// request is made.
	ErrValidation = errors.New("validation error")

	ErrEmptyBatch    = fmt.Errorf("%w: no cv files selected", ErrValidation)
	ErrNoJobSelected = fmt.Errorf("%w: no job selected", ErrValidation)

	ErrNotFound   = errors.New("job not found")
	ErrInProgress = errors.New("operation already in progress")
)

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, field+" must not be empty")
		default:
			reasons = append(reasons, fmt.Sprintf("%s is invalid (%s=%s)", field, fe.Tag(), fe.Param()))
		}
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(reasons, ", "))
}
