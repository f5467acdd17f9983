package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingInput, "input file not found: %s", "tree.json")

	if err.Code != ErrCodeMissingInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingInput)
	}

	if err.Message != "input file not found: tree.json" {
		t.Errorf("Message = %v, want %v", err.Message, "input file not found: tree.json")
	}

	expected := "MISSING_INPUT: input file not found: tree.json"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("graphviz init failed")
	err := Wrap(ErrCodeLayoutUnavailable, cause, "dot layout failed")

	if err.Code != ErrCodeLayoutUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeLayoutUnavailable)
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

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDataIntegrity, "test"),
			code:     ErrCodeDataIntegrity,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDataIntegrity, "test"),
			code:     ErrCodeMissingInput,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidFormat,
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
		{name: "Error type", err: New(ErrCodeInvalidConfig, "test"), expected: ErrCodeInvalidConfig},
		{name: "plain error", err: errors.New("plain"), expected: ""},
		{name: "nil", err: nil, expected: ""},
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
		{name: "Error type", err: New(ErrCodeInvalidInput, "friendly message"), expected: "friendly message"},
		{name: "plain error", err: errors.New("plain error"), expected: "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	if IsFatal(nil) {
		t.Error("IsFatal(nil) = true")
	}
	if IsFatal(Wrap(ErrCodeLayoutUnavailable, errors.New("x"), "dot failed")) {
		t.Error("layout failures must not be fatal")
	}
	if !IsFatal(New(ErrCodeMissingInput, "gone")) {
		t.Error("missing input must be fatal")
	}
	if !IsFatal(errors.New("plain")) {
		t.Error("uncoded errors must be fatal")
	}
}
