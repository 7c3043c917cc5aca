package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestToToolErrorWrapsUnknown(t *testing.T) {
	err := ToToolError(fmt.Errorf("boom: password=secret"))
	if err.Code != CodeInternalError {
		t.Fatalf("expected internal error code, got %s", err.Code)
	}
	if err.Details["cause"] == "boom: password=secret" {
		t.Fatalf("expected scrubbed cause, got %v", err.Details["cause"])
	}
}

func TestToToolErrorUnwraps(t *testing.T) {
	inner := NewInvalidPreference("bad preference", map[string]any{"key": "min_safety"})
	err := ToToolError(fmt.Errorf("parse: %w", inner))
	if err != inner {
		t.Fatalf("expected wrapped error to be returned as-is, got %v", err)
	}
	if CodeOf(fmt.Errorf("x: %w", inner)) != CodeInvalidPreference {
		t.Fatalf("CodeOf did not find %s", CodeInvalidPreference)
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Fatalf("expected empty code for plain error")
	}
}

func TestNewDataUnavailableScrubsDSN(t *testing.T) {
	e := NewDataUnavailable("postgres", fmt.Errorf("dial postgres://u:p@host/db"))
	if e.Code != CodeDataUnavailable {
		t.Fatalf("expected %s, got %s", CodeDataUnavailable, e.Code)
	}
	if e.Details["cause"] == "dial postgres://u:p@host/db" {
		t.Fatalf("expected scrubbed cause, got %v", e.Details["cause"])
	}
}

func TestInferenceFailureUnwraps(t *testing.T) {
	cause := fmt.Errorf("no rule activated the output")
	e := NewInferenceFailure("t-1", cause)
	if !stderrors.Is(e, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
	if e.Details["trail_id"] != "t-1" {
		t.Fatalf("expected trail id detail, got %v", e.Details)
	}
}

func TestNewInvalidInput(t *testing.T) {
	e := NewInvalidInput("bad", "hint", map[string]any{"field": "x"})
	if e.Code != CodeInvalidInput {
		t.Fatalf("expected %s, got %s", CodeInvalidInput, e.Code)
	}
}
