package loans

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks every input the engine refuses to compute with.
	ErrValidation = errors.New("validation failed")

	// ErrNoTerms is returned when a Calculator is used before SetTerms.
	ErrNoTerms = errors.New("loan terms not set")
)

// Advisory messages shown to the user when an input blocks computation.
const (
	AdvisoryPrincipal     = "Por favor, ingrese un Capital Prestado válido."
	AdvisoryRate          = "Por favor, ingrese una Tasa Anual válida."
	AdvisoryTerm          = "Por favor, ingrese un Plazo Original válido."
	AdvisoryInsuranceRate = "Por favor, ingrese una Tasa de Seguro válida."
	AdvisoryPayment       = "Por favor, ingrese un pago válido."
	AdvisoryInstallment   = "Por favor, seleccione una cuota válida."
)

// ValidationError carries the offending field and the advisory message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Advisory returns the user-facing message for err, or err.Error() when err
// is not a validation error.
func Advisory(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
