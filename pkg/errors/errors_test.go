package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidFormat, "unknown format %q", "pdf"), `INVALID_FORMAT: unknown format "pdf"`},
		{"wrap", Wrap(ErrCodeInvalidDocument, cause, "parse %s", "house.json"), "INVALID_DOCUMENT: parse house.json: unexpected end of JSON input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write layout")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if New(ErrCodeBlocked, "blocked").Unwrap() != nil {
		t.Error("New() has a cause")
	}
}

func TestIs(t *testing.T) {
	blocked := Wrap(ErrCodeBlocked, New(ErrCodeInvalidDocument, "bad room"), "render")
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"other code", New(ErrCodeInvalidInput, "x"), ErrCodeFileNotFound, false},
		{"outer of chain", blocked, ErrCodeBlocked, true},
		{"inner of chain", blocked, ErrCodeInvalidDocument, true},
		{"behind fmt wrap", fmt.Errorf("layout: %w", blocked), ErrCodeInvalidDocument, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeDocumentNotFound, "x"), ErrCodeDocumentNotFound},
		{"outermost wins", Wrap(ErrCodeTimeout, New(ErrCodeInternal, "x"), "y"), ErrCodeTimeout},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "no documents given"), "no documents given"},
		{"with cause", Wrap(ErrCodeInvalidDocument, errors.New("unexpected end of JSON input"), "parse house.json"), "parse house.json: unexpected end of JSON input"},
		{"plain", errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
