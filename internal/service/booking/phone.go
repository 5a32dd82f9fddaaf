package booking

import (
	"strings"

	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

// NormalizePhone converts a Turkish mobile number to the +90 canonical
// form. Accepted shapes: 10 digits starting with 5, 11 digits starting
// with 05, or an already normalized number with a 90 country prefix.
// Separators and whitespace are ignored.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	n := digits.String()
	switch {
	case len(n) == 12 && strings.HasPrefix(n, "90"):
		n = n[2:]
	case len(n) == 11 && strings.HasPrefix(n, "0"):
		n = n[1:]
	}

	if len(n) != 10 || n[0] != '5' {
		return "", apperrors.NewValidation("invalid phone number")
	}
	return "+90" + n, nil
}
