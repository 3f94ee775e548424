package probe

import (
	"encoding/json"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{OK, "OK"},
		{Warning, "WARNING"},
		{Critical, "CRITICAL"},
		{Unknown, "UNKNOWN"},
		{Status(9), "Status(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestStatusExitCode(t *testing.T) {
	for s, want := range map[Status]int{OK: 0, Warning: 1, Critical: 2, Unknown: 3} {
		if got := s.ExitCode(); got != want {
			t.Errorf("%v.ExitCode() = %d, want %d", s, got, want)
		}
	}
}

func TestWorst(t *testing.T) {
	tests := []struct {
		a, b, want Status
	}{
		{OK, OK, OK},
		{OK, Warning, Warning},
		{Warning, OK, Warning},
		{Warning, Unknown, Unknown},
		{Unknown, Critical, Critical},
		{Critical, Unknown, Critical},
		{Critical, OK, Critical},
	}
	for _, tt := range tests {
		if got := Worst(tt.a, tt.b); got != tt.want {
			t.Errorf("Worst(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(Warning)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"WARNING"` {
		t.Errorf("Marshal = %s, want \"WARNING\"", data)
	}

	var s Status
	if err := json.Unmarshal([]byte(`"critical"`), &s); err != nil {
		t.Fatal(err)
	}
	if s != Critical {
		t.Errorf("Unmarshal = %v, want CRITICAL", s)
	}

	if err := json.Unmarshal([]byte(`"fine"`), &s); err == nil {
		t.Error("Unmarshal of unknown name should fail")
	}
}
