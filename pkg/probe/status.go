package probe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is a monitoring probe state. Its value is the process exit code.
type Status int

const (
	OK       Status = 0
	Warning  Status = 1
	Critical Status = 2
	Unknown  Status = 3
)

var statusNames = map[Status]string{
	OK:       "OK",
	Warning:  "WARNING",
	Critical: "CRITICAL",
	Unknown:  "UNKNOWN",
}

// severity orders states for [Worst]: UNKNOWN outranks WARNING but a
// confirmed CRITICAL outranks both.
var severity = map[Status]int{
	OK:       0,
	Warning:  1,
	Unknown:  2,
	Critical: 3,
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ExitCode returns the process exit code for s.
func (s Status) ExitCode() int { return int(s) }

// MarshalJSON encodes s as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses a case-insensitive status name.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return Unknown, fmt.Errorf("unknown status %q", name)
}

// Worst returns the more severe of a and b.
func Worst(a, b Status) Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}
