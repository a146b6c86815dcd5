package common

import (
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// Duration is a time.Duration that (un)marshals as a human readable string ("30s", "5m").
type Duration struct {
	time.Duration
}

// NewDuration wraps d.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(data []byte) error {
	parsed, err := time.ParseDuration(string(data))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(data), err)
	}

	d.Duration = parsed
	return nil
}

// MarshalText renders the duration in the same format UnmarshalText accepts.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// JSONSchema describes Duration as a string in generated config schemas.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Duration",
		Description: "Duration expressed in units: [ns, us, ms, s, m, h]",
		Examples: []any{
			"1m",
			"300ms",
			"1h30m",
		},
	}
}
