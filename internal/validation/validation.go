package validation

import (
	"fmt"
	"strings"
	"time"

	"certbook/internal/certs"
	cberrors "certbook/internal/errors"
)

// RequireAll fails when any of the given form values is empty.
func RequireAll(values ...string) error {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return cberrors.ErrFieldRequired
		}
	}
	return nil
}

// ParseDate parses a submitted calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(certs.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, cberrors.ErrInvalidDate)
	}
	return parsed, nil
}
