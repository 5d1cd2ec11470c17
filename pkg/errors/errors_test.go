package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingColumns, "missing required columns: %s", "Parent")

	if err.Code != ErrCodeMissingColumns {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingColumns)
	}

	if err.Message != "missing required columns: Parent" {
		t.Errorf("Message = %v", err.Message)
	}

	expected := "MISSING_COLUMNS: missing required columns: Parent"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRenderFailed, cause, "render pdf")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
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
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidWorkbook, "bad workbook"), ErrCodeInvalidWorkbook, true},
		{"different code", New(ErrCodeInvalidWorkbook, "bad workbook"), ErrCodeRenderFailed, false},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(ErrCodeSheetNotFound, "no sheet")), ErrCodeSheetNotFound, true},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "gone")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeRenderFailed, errors.New("exit status 1"), "PDF generation failed")
	if got := UserMessage(err); got != "PDF generation failed" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage() = %q", got)
	}
}
