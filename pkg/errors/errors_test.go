package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeDuplicateID, "edge %q appears twice", "e3")
	if err.Code != ErrCodeDuplicateID || err.Message != `edge "e3" appears twice` {
		t.Errorf("New = %+v", err)
	}
	if got, want := err.Error(), `DUPLICATE_ID: edge "e3" appears twice`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeInvalidFormat, cause, "read conllu")
	if got, want := wrapped.Error(), "INVALID_FORMAT: read conllu: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Unwrap(wrapped) != cause || !errors.Is(wrapped, cause) {
		t.Error("Wrap must keep the cause reachable")
	}
}

func TestCodeLookup(t *testing.T) {
	nested := Wrap(ErrCodeDanglingEdge, New(ErrCodeInvalidInput, "inner"), "outer")
	tests := []struct {
		name string
		err  error
		code Code
		is   bool
	}{
		{"coded", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"other code", New(ErrCodeInvalidInput, "x"), ErrCodeDanglingEdge, false},
		{"outermost wins", nested, ErrCodeDanglingEdge, true},
		{"fmt wrapped", fmt.Errorf("layout s1: %w", New(ErrCodeNotFound, "x")), ErrCodeNotFound, true},
		{"plain", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.is {
				t.Errorf("Is(%q) = %v, want %v", tt.code, got, tt.is)
			}
			if tt.is && GetCode(tt.err) != tt.code {
				t.Errorf("GetCode = %q, want %q", GetCode(tt.err), tt.code)
			}
			if tt.code == "" && GetCode(tt.err) != "" {
				t.Errorf("GetCode = %q, want none", GetCode(tt.err))
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
		{
			name:     "nested codes",
			err:      Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidFormat, "bad line 3"), "sentence s1"),
			expected: "sentence s1: bad line 3",
		},
		{
			name:     "wrapped with fmt",
			err:      fmt.Errorf("load a.conllu: %w", New(ErrCodeFileNotFound, "no such file")),
			expected: "load a.conllu: no such file",
		},
		{
			name:     "uncoded cause",
			err:      Wrap(ErrCodeInternal, errors.New("disk full"), "write cache"),
			expected: "write cache: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInput, 400},
		{ErrCodeInvalidFormat, 400},
		{ErrCodeDanglingEdge, 422},
		{ErrCodeNotFound, 404},
		{ErrCodeUnsupported, 501},
		{ErrCodeInternal, 500},
		{"", 500},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"invalid format", New(ErrCodeInvalidFormat, "x"), ExitInvalid},
		{"duplicate id", fmt.Errorf("load: %w", New(ErrCodeDuplicateID, "x")), ExitInvalid},
		{"file not found", New(ErrCodeFileNotFound, "x"), ExitNotFound},
		{"dangling", New(ErrCodeDanglingEdge, "x"), ExitFailure},
		{"cancelled", Wrap(ErrCodeInternal, context.Canceled, "layout"), ExitInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
