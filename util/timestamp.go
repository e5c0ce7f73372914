// Package util provides version, package URL and concurrency helpers shared by the changelog packages.
//
//revive:disable-next-line:var-naming
package util

import (
	"time"

	"github.com/pkg/errors"
)

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTimestamp parses an ISO-8601 instant. Values without an offset are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid timestamp %q", value)
}
