package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeKeyNotFound, "key %q missing", "logo")

	if err.Code != ErrCodeKeyNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeKeyNotFound)
	}

	if err.Message != `key "logo" missing` {
		t.Errorf("Message = %v, want %v", err.Message, `key "logo" missing`)
	}

	expected := `KEY_NOT_FOUND: key "logo" missing`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("bad month")
	err := Wrap(ErrCodeInvalidDate, cause, "parse date")

	if err.Code != ErrCodeInvalidDate {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDate)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestFetchError(t *testing.T) {
	cause := errors.New("status 500")
	err := &FetchError{URL: "https://example.org/logo.png", Status: 500, Cause: cause}

	want := "fetch https://example.org/logo.png failed: status 500"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("FetchError should unwrap to its cause")
	}
	if err.Code() != ErrCodeFetchFailed {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeFetchFailed)
	}

	wrapped := fmt.Errorf("check logo: %w", err)
	fe, ok := AsFetch(wrapped)
	if !ok {
		t.Fatal("AsFetch() did not find FetchError")
	}
	if fe.URL != "https://example.org/logo.png" {
		t.Errorf("URL = %q", fe.URL)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeFetchFailed,
			expected: false,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "fetch error",
			err:      &FetchError{URL: "u", Cause: errors.New("x")},
			code:     ErrCodeFetchFailed,
			expected: true,
		},
		{
			name:     "fetch error behind fmt wrap",
			err:      fmt.Errorf("ctx: %w", &FetchError{URL: "u", Cause: errors.New("x")}),
			code:     ErrCodeFetchFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidValue, "test"), ErrCodeInvalidValue},
		{"FetchError", &FetchError{Cause: errors.New("x")}, ErrCodeFetchFailed},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"Error with cause", Wrap(ErrCodeInvalidDate, errors.New("bad day"), "parse date"), "parse date: bad day"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
