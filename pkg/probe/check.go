package probe

import (
	"fmt"

	"github.com/matzehuels/catalogprobe/pkg/errors"
)

// Kind selects which catalog check a [Check] runs.
type Kind string

const (
	KindKey Kind = "key" // key present with a meaningful value
	KindURL Kind = "url" // value is a URL answering 2xx
	KindAge Kind = "age" // date value no older than the thresholds
)

// DefaultDateFormat is used by age checks that set no format.
const DefaultDateFormat = "%Y-%m-%d"

// Check describes one assertion against a catalog entry.
type Check struct {
	Name     string `toml:"name" json:"name"`
	Kind     Kind   `toml:"kind" json:"kind"`
	Key      string `toml:"key" json:"key"`
	Format   string `toml:"format" json:"format,omitempty"`     // strftime pattern, age checks only
	Warning  int    `toml:"warning" json:"warning,omitempty"`   // months; 0 disables
	Critical int    `toml:"critical" json:"critical,omitempty"` // months; 0 disables
}

// Label returns Name, or kind:key when Name is empty.
func (c Check) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s:%s", c.Kind, c.Key)
}

// Validate reports the first problem with c as an INVALID_CONFIG error.
func (c Check) Validate() error {
	if c.Key == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "check %s: key is required", c.Label())
	}
	switch c.Kind {
	case KindKey, KindURL:
		return nil
	case KindAge:
		if c.Warning < 0 || c.Critical < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "check %s: thresholds must not be negative", c.Label())
		}
		if c.Warning > 0 && c.Critical > 0 && c.Critical < c.Warning {
			return errors.New(errors.ErrCodeInvalidConfig, "check %s: critical (%d) is below warning (%d)", c.Label(), c.Critical, c.Warning)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "check %s: unknown kind %q", c.Label(), c.Kind)
	}
}

func (c Check) dateFormat() string {
	if c.Format == "" {
		return DefaultDateFormat
	}
	return c.Format
}
