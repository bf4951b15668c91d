package loans

import (
	"fmt"
	"time"
)

// Alert is a transient advisory message.
type Alert struct {
	Message   string
	ExpiresAt time.Time
}

// Active reports whether the alert is still visible at now.
func (a Alert) Active(now time.Time) bool {
	return a.Message != "" && now.Before(a.ExpiresAt)
}

// EarlyPayoffMessage congratulates the user on finishing before the term.
func EarlyPayoffMessage(monthsUsed, termMonths int) string {
	return fmt.Sprintf("¡Felicidades! Terminarás de pagar tu préstamo en %d meses en lugar de %d meses.",
		monthsUsed, termMonths)
}
