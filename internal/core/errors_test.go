package core

import (
	"errors"
	"fmt"
	"testing"

	"staffcast/internal/engine"
)

func TestMapError_KnownPatterns(t *testing.T) {
	tests := []struct {
		err      error
		wantCode string
		wantMsg  string
	}{
		{engine.ErrInvalidArea, "VAL001", "Enter a valid square footage (> 0)"},
		{engine.ErrInvalidFootfall, "VAL002", "Enter a valid mall footfall (>= 0)"},
		{ErrNoFile, "FILE001", "No file was selected"},
		{ErrEmptyFile, "FILE002", "The uploaded file is empty"},
		{ErrEmptyBatch, "BATCH001", "Upload a CSV first, then process it"},
		{ErrNoResults, "BATCH002", "No results to download yet"},
		{ErrSessionNotFound, "SES001", "This batch session has expired"},
		{errors.New("rate limit exceeded"), "RATE001", "Too many requests"},
		{errors.New("context canceled"), "REQ001", "Request was cancelled"},
	}

	for _, tt := range tests {
		msg := MapError(tt.err)
		if msg.Code != tt.wantCode {
			t.Errorf("MapError(%v).Code = %q, want %q", tt.err, msg.Code, tt.wantCode)
		}
		if msg.Message != tt.wantMsg {
			t.Errorf("MapError(%v).Message = %q, want %q", tt.err, msg.Message, tt.wantMsg)
		}
	}
}

func TestMapError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("process batch: %w", ErrEmptyBatch)
	if got := MapError(wrapped).Code; got != "BATCH001" {
		t.Errorf("wrapped error mapped to %q, want BATCH001", got)
	}
}

func TestMapError_Fallback(t *testing.T) {
	msg := MapError(errors.New("something exploded"))
	if msg.Code != "ERR000" {
		t.Errorf("fallback code = %q, want ERR000", msg.Code)
	}
}

func TestMapError_Nil(t *testing.T) {
	if msg := MapError(nil); msg.Code != "" || msg.Message != "" {
		t.Errorf("MapError(nil) = %+v, want zero value", msg)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrEmptyBatch)
	want := "Upload a CSV first, then process it (Code: BATCH001). Select a file with at least one data row and upload it"
	if got != want {
		t.Errorf("FormatUserError = %q, want %q", got, want)
	}

	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(ErrEmptyBatch) {
		t.Error("ErrEmptyBatch should be user-facing")
	}
	if IsUserFacing(errors.New("internal wiring fault")) {
		t.Error("unknown errors should not be user-facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user-facing")
	}
}
