// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Error codes surfaced to CLI and MCP callers.

package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode string

const (
	CodeDataUnavailable   ErrorCode = "DATA_UNAVAILABLE"
	CodeMissingCriterion  ErrorCode = "MISSING_CRITERION"
	CodeInferenceFailure  ErrorCode = "INFERENCE_FAILURE"
	CodeInvalidPreference ErrorCode = "INVALID_PREFERENCE"
	CodeInvalidInput      ErrorCode = "INVALID_INPUT"
	CodeUnavailable       ErrorCode = "UNAVAILABLE"
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

type RecommenderError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Details map[string]any `json:"details,omitempty"`

	cause error
}

func (e *RecommenderError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func (e *RecommenderError) Unwrap() error { return e.cause }

// WithCause records err so errors.Is and errors.As can reach it.
func (e *RecommenderError) WithCause(err error) *RecommenderError {
	e.cause = err
	return e
}

func New(code ErrorCode, msg, hint string, details map[string]any) *RecommenderError {
	return &RecommenderError{Code: code, Message: msg, Hint: hint, Details: sanitize(details)}
}

func NewInvalidInput(msg, hint string, details map[string]any) *RecommenderError {
	return New(CodeInvalidInput, msg, hint, details)
}

func NewInvalidPreference(msg string, details map[string]any) *RecommenderError {
	return New(CodeInvalidPreference, msg, "preferences must be a JSON object of numeric thresholds", details)
}

func NewDataUnavailable(source string, err error) *RecommenderError {
	details := map[string]any{"source": source}
	if err != nil {
		details["cause"] = err.Error()
	}
	return New(CodeDataUnavailable, "trail data unavailable", "check the configured source", details).WithCause(err)
}

func NewInferenceFailure(trailID string, err error) *RecommenderError {
	details := map[string]any{"trail_id": trailID}
	if err != nil {
		details["cause"] = err.Error()
	}
	return New(CodeInferenceFailure, "fuzzy inference failed", "", details).WithCause(err)
}

func NewMissingCriterion(criterion string) *RecommenderError {
	return New(CodeMissingCriterion, "criterion missing", "", map[string]any{"criterion": criterion})
}

func NewUnavailable(msg string) *RecommenderError {
	return New(CodeUnavailable, msg, "retry later", nil)
}

func NewInternal(err error) *RecommenderError {
	if err == nil {
		return New(CodeInternalError, "internal error", "see logs", nil)
	}
	return New(CodeInternalError, "internal error", "see logs", map[string]any{"cause": scrub(err.Error())})
}

// ToToolError converts any error to a RecommenderError;
// unknown errors are wrapped as internal error with scrubbed message.
func ToToolError(err error) *RecommenderError {
	if err == nil {
		return nil
	}
	var re *RecommenderError
	if errors.As(err, &re) {
		return re
	}
	return NewInternal(err)
}

// CodeOf returns the code of a wrapped RecommenderError, or "" if none.
func CodeOf(err error) ErrorCode {
	var re *RecommenderError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		out[k] = scrub(fmt.Sprint(v))
	}
	return out
}

// scrub best-effort masks DSN credentials and passwords.
func scrub(s string) string {
	replacements := []struct{ find, repl string }{
		{"postgres://", "postgres://***:***@"},
		{"postgresql://", "postgresql://***:***@"},
		{"password=", "password=***"},
		{"pwd=", "pwd=***"},
	}
	out := s
	for _, r := range replacements {
		out = strings.ReplaceAll(out, r.find, r.repl)
	}
	return out
}
