package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/observability"
	"github.com/matzehuels/catalogprobe/pkg/probe"
)

func newEntryServer(t *testing.T) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services/example":
			w.Write([]byte(`{
				"description": "An example",
				"license": "",
				"logo_url": "` + server.URL + `/logo.png",
				"docs_url": "` + server.URL + `/docs",
				"last_updated": "2000-01-01"
			}`))
		case "/logo.png":
			w.Write([]byte("png"))
		case "/docs":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)
	var out, logs bytes.Buffer
	c := New(&out, &logs, log.DebugLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func statusOf(t *testing.T, err error) probe.Status {
	t.Helper()
	if err == nil {
		return probe.OK
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	return se.Status
}

func TestCheckCommandOK(t *testing.T) {
	server := newEntryServer(t)

	out, logs, err := execute(t, "check", "-u", server.URL+"/services/", "-i", "example",
		"--key", "description", "--url-key", "logo_url")
	if err != nil {
		t.Fatalf("check returned %v", err)
	}
	if !strings.Contains(out, "OK - 2/2 checks passed for example") {
		t.Errorf("output missing summary:\n%s", out)
	}
	if !strings.Contains(logs, "fetched catalog entry") {
		t.Errorf("debug logs missing fetch line:\n%s", logs)
	}
	if !strings.Contains(logs, "path=/logo.png") {
		t.Errorf("debug logs missing URL check request:\n%s", logs)
	}
}

func TestCheckCommandCritical(t *testing.T) {
	server := newEntryServer(t)

	out, _, err := execute(t, "check", "-u", server.URL+"/services", "-i", "example",
		"--key", "description", "--key", "license", "--url-key", "docs_url")
	if got := statusOf(t, err); got != probe.Critical {
		t.Errorf("status = %v, want CRITICAL", got)
	}
	if !strings.Contains(out, "CRITICAL - 1/3 checks passed") {
		t.Errorf("output missing summary:\n%s", out)
	}
	if !strings.Contains(out, server.URL+"/docs") {
		t.Errorf("output should name the failing URL:\n%s", out)
	}
}

func TestCheckCommandAgeThresholds(t *testing.T) {
	server := newEntryServer(t)

	_, _, err := execute(t, "check", "-u", server.URL+"/services", "-i", "example",
		"--date-key", "last_updated", "--warning", "6")
	if got := statusOf(t, err); got != probe.Warning {
		t.Errorf("status = %v, want WARNING", got)
	}

	_, _, err = execute(t, "check", "-u", server.URL+"/services", "-i", "example",
		"--date-key", "last_updated", "--date-format", "%d.%m.%Y")
	if got := statusOf(t, err); got != probe.Unknown {
		t.Errorf("status with wrong format = %v, want UNKNOWN", got)
	}
}

func TestCheckCommandFetchFailure(t *testing.T) {
	server := newEntryServer(t)

	out, _, err := execute(t, "check", "-u", server.URL+"/services", "-i", "missing", "--key", "description")
	if got := statusOf(t, err); got != probe.Critical {
		t.Errorf("status = %v, want CRITICAL", got)
	}
	if !strings.Contains(out, "CRITICAL - fetch "+server.URL+"/services/missing failed") {
		t.Errorf("output missing fetch failure:\n%s", out)
	}
}

func TestCheckCommandJSON(t *testing.T) {
	server := newEntryServer(t)

	out, _, err := execute(t, "check", "-u", server.URL+"/services", "-i", "example",
		"--key", "description", "--json")
	if err != nil {
		t.Fatalf("check returned %v", err)
	}

	var report probe.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	if report.Status != probe.OK || report.CatalogID != "example" || len(report.Results) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.RunID == "" {
		t.Error("report should carry a run id")
	}
}

func TestCheckCommandConfigFile(t *testing.T) {
	server := newEntryServer(t)

	cfg := `
base_url   = "` + server.URL + `/services"
catalog_id = "example"
timeout    = "5s"

[[check]]
name = "logo"
kind = "url"
key  = "logo_url"
`
	path := filepath.Join(t.TempDir(), "probe.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "check", "--config", path, "--key", "description")
	if err != nil {
		t.Fatalf("check returned %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK - 2/2 checks passed") {
		t.Errorf("output missing summary:\n%s", out)
	}

	_, _, err = execute(t, "check", "--config", path, "-i", "missing")
	if got := statusOf(t, err); got != probe.Critical {
		t.Errorf("flag override: status = %v, want CRITICAL", got)
	}
}

func TestCheckCommandUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code perrors.Code
	}{
		{"no checks", []string{"check", "-u", "http://x", "-i", "y"}, perrors.ErrCodeInvalidConfig},
		{"no url", []string{"check", "-i", "y", "--key", "a"}, perrors.ErrCodeInvalidConfig},
		{"bad header", []string{"check", "-u", "http://x", "-i", "y", "--key", "a", "-H", "nocolon"}, perrors.ErrCodeInvalidInput},
		{"bad thresholds", []string{"check", "-u", "http://x", "-i", "y", "--date-key", "d", "-w", "12", "-x", "6"}, perrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !perrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOutputWriteFailureIsInternal(t *testing.T) {
	server := newEntryServer(t)
	t.Cleanup(observability.Reset)

	for _, args := range [][]string{
		{"check", "-u", server.URL + "/services", "-i", "example", "--key", "description", "--json"},
		{"get", "-u", server.URL + "/services", "-i", "example"},
	} {
		t.Run(args[0], func(t *testing.T) {
			c := New(failingWriter{}, &bytes.Buffer{}, log.InfoLevel)
			root := c.RootCommand()
			root.SetArgs(args)
			err := root.ExecuteContext(context.Background())
			if !perrors.Is(err, perrors.ErrCodeInternal) {
				t.Errorf("error = %v, want %s", err, perrors.ErrCodeInternal)
			}
		})
	}
}

func TestGetCommand(t *testing.T) {
	server := newEntryServer(t)

	out, _, err := execute(t, "get", "-u", server.URL+"/services", "-i", "example", "description")
	if err != nil {
		t.Fatalf("get returned %v", err)
	}
	if strings.TrimSpace(out) != `"An example"` {
		t.Errorf("get description = %q", out)
	}

	out, _, err = execute(t, "get", "-u", server.URL+"/services", "-i", "example")
	if err != nil {
		t.Fatalf("get returned %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("get output is not JSON: %v", err)
	}
	if len(doc) != 5 {
		t.Errorf("document has %d keys, want 5", len(doc))
	}

	_, _, err = execute(t, "get", "-u", server.URL+"/services", "-i", "example", "absent")
	if !perrors.Is(err, perrors.ErrCodeKeyNotFound) {
		t.Errorf("get absent error = %v, want KEY_NOT_FOUND", err)
	}

	_, _, err = execute(t, "get", "-u", server.URL+"/services", "-i", "missing")
	if !perrors.Is(err, perrors.ErrCodeFetchFailed) {
		t.Errorf("get missing error = %v, want FETCH_FAILED", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion returned %v", err)
	}
	if !strings.Contains(out, "catalogprobe") {
		t.Error("bash completion should mention the command name")
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Status: probe.Warning}
	if err.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", err.ExitCode())
	}
	if err.Error() != "probe status WARNING" {
		t.Errorf("Error() = %q", err.Error())
	}
}
