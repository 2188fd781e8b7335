package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(CodeValidation, "reservation failed validation", http.StatusUnprocessableEntity)
	if err.Code != CodeValidation || err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("New() = %s/%d, want %s/%d", err.Code, err.HTTPStatus, CodeValidation, http.StatusUnprocessableEntity)
	}
	if err.Message != "reservation failed validation" {
		t.Errorf("Message = %q", err.Message)
	}

	cause := errors.New("mongo: no documents in result")
	wrapped := Wrap(cause, CodeInternal, "lookup failed", http.StatusInternalServerError)
	if wrapped.Err != cause {
		t.Error("Wrap() dropped the cause")
	}
	if unwrapped := errors.Unwrap(wrapped); unwrapped != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestAppError_Error(t *testing.T) {
	bare := &AppError{Code: CodeNotFound, Message: "court not found"}
	if got := bare.Error(); got != "NOT_FOUND: court not found" {
		t.Errorf("Error() = %q", got)
	}

	caused := &AppError{
		Code:    CodeInternal,
		Message: "could not save reservation",
		Err:     errors.New("write concern timeout"),
	}
	want := "INTERNAL_ERROR: could not save reservation (caused by: write concern timeout)"
	if got := caused.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Reservation"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", map[string]any{"field": "date"}), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("duration must be positive"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("identity headers required"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("guests cannot book"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("slot already reserved"), CodeConflict, http.StatusConflict},
		{"internal", Internal("save failed", errors.New("broken pipe")), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("courts lookup timed out"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Courts"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Reservation", "res-42")
	if err.Code != CodeNotFound {
		t.Errorf("Code = %s, want %s", err.Code, CodeNotFound)
	}
	if err.Details["resource"] != "Reservation" || err.Details["id"] != "res-42" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestWithDetails(t *testing.T) {
	err := Conflict("overlapping reservation").WithDetails(map[string]any{
		"court_id": "court-1",
		"date":     "2026-09-05",
	})
	if err.Details["court_id"] != "court-1" {
		t.Errorf("Details[court_id] = %v", err.Details["court_id"])
	}
	if err.Details["date"] != "2026-09-05" {
		t.Errorf("Details[date] = %v", err.Details["date"])
	}
}

func TestUnavailableNamesTheService(t *testing.T) {
	err := Unavailable("Open Matches")
	if !strings.Contains(err.Message, "Open Matches") {
		t.Errorf("Message = %q, want the service name in it", err.Message)
	}
}

func TestIsAndAsAppError(t *testing.T) {
	appErr := NotFound("Court")
	plain := errors.New("plain failure")

	if !IsAppError(appErr) {
		t.Error("IsAppError() = false for an AppError")
	}
	if IsAppError(plain) {
		t.Error("IsAppError() = true for a plain error")
	}

	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError() should hand back the same AppError")
	}
	got := AsAppError(plain)
	if got.Code != CodeInternal || got.Err != plain {
		t.Errorf("AsAppError(plain) = %s wrapping %v", got.Code, got.Err)
	}
}

func TestToJSON(t *testing.T) {
	payload := string(NotFoundWithID("Court", "court-9").ToJSON())
	if !strings.Contains(payload, "NOT_FOUND") || !strings.Contains(payload, "court-9") {
		t.Errorf("ToJSON() = %s, want code and id in it", payload)
	}
}
