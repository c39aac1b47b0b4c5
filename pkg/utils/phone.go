package utils

import (
	"fmt"
	"strings"
)

// NormalizeMsisdn converts a Kenyan subscriber number to the international
// form Daraja expects: "0712345678" -> "254712345678". Accepts already
// normalized numbers and a leading "+".
func NormalizeMsisdn(phone string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	p = strings.TrimPrefix(p, "+")

	switch {
	case strings.HasPrefix(p, "0") && len(p) == 10:
		p = "254" + p[1:]
	case strings.HasPrefix(p, "254") && len(p) == 12:
		// already international
	default:
		return "", fmt.Errorf("%w: phone number %q is not a valid Kenyan MSISDN", ErrValidation, phone)
	}

	for _, r := range p {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: phone number %q contains non-digit characters", ErrValidation, phone)
		}
	}
	return p, nil
}
