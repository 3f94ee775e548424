package probe

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/catalogprobe/pkg/errors"
)

// Config is the contents of a probe check file.
//
//	base_url    = "https://catalog.example.org/api/services"
//	catalog_id  = "my-service"
//	timeout     = "10s"
//	url_timeout = "30s"
//
//	[[check]]
//	kind = "key"
//	key  = "description"
type Config struct {
	BaseURL    string            `toml:"base_url"`
	CatalogID  string            `toml:"catalog_id"`
	Timeout    time.Duration     `toml:"timeout"`
	URLTimeout time.Duration     `toml:"url_timeout"`
	Headers    map[string]string `toml:"headers"`
	Checks     []Check           `toml:"check"`
}

// LoadConfig reads and parses the TOML check file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a TOML check file. Unknown keys are rejected so that
// typos do not silently drop a check.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse check file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in check file", undecoded[0].String())
	}
	return &cfg, nil
}

// Validate checks the connection settings and every check.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "base_url is required")
	}
	if c.CatalogID == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "catalog_id is required")
	}
	if c.Timeout < 0 || c.URLTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeouts must not be negative")
	}
	return ValidateChecks(c.Checks)
}

// ValidateChecks validates each check and rejects duplicate labels.
func ValidateChecks(checks []Check) error {
	seen := make(map[string]bool, len(checks))
	for _, ch := range checks {
		if err := ch.Validate(); err != nil {
			return err
		}
		label := ch.Label()
		if seen[label] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate check %q", label)
		}
		seen[label] = true
	}
	return nil
}
