// Package core provides the business logic for the staffing recommendation
// workflow: batch sessions, per-row processing, and result assembly.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid area: square footage is missing, zero, or negative
//	         Action: Enter a valid square footage (> 0)
//	         Patterns: "invalid area"
//
//	VAL002 - Invalid footfall: mall footfall is missing or negative
//	         Action: Enter a valid mall footfall (>= 0)
//	         Patterns: "invalid footfall"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - No file: no file was selected for upload
//	          Action: Please select a CSV file to upload
//	          Patterns: "no file provided"
//
//	FILE002 - Empty file: the uploaded file has no header row
//	          Action: Please upload a CSV file with a header and data rows
//	          Patterns: "empty file"
//
//	FILE003 - File too large: file exceeds the configured size limit
//	          Action: Split the file into smaller chunks
//	          Patterns: "file too large"
//
// # Batch Errors (BATCH001-BATCH099)
//
//	BATCH001 - Empty batch: process was requested before any rows were loaded
//	           Action: Upload a CSV first, then process it
//	           Patterns: "empty batch"
//
//	BATCH002 - No results: download was requested before processing
//	           Action: Process the uploaded file first
//	           Patterns: "no results"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session not found: the batch session expired or never existed
//	         Action: Upload the file again to start a new session
//	         Patterns: "session not found"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: too many requests from one address
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Support staff should check the
// application logs for the original technical error when users report ERR000.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the batch workflow. Handlers compare with errors.Is
// to choose status codes; MapError turns them into user-facing messages.
var (
	ErrNoFile          = errors.New("no file provided")
	ErrEmptyFile       = errors.New("empty file")
	ErrEmptyBatch      = errors.New("empty batch")
	ErrNoResults       = errors.New("no results")
	ErrSessionNotFound = errors.New("session not found")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. First match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// Validation errors for the interactive single-record path.
	{
		pattern: "invalid area",
		msg: UserMessage{
			Message: "Enter a valid square footage (> 0)",
			Action:  "Square footage must be a positive number",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid footfall",
		msg: UserMessage{
			Message: "Enter a valid mall footfall (>= 0)",
			Action:  "Mall footfall must be zero or a positive number",
			Code:    "VAL002",
		},
	},

	// File errors raised while handling an upload.
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with a header and data rows",
			Code:    "FILE002",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE003",
		},
	},

	// Batch workflow preconditions.
	{
		pattern: "empty batch",
		msg: UserMessage{
			Message: "Upload a CSV first, then process it",
			Action:  "Select a file with at least one data row and upload it",
			Code:    "BATCH001",
		},
	},
	{
		pattern: "no results",
		msg: UserMessage{
			Message: "No results to download yet",
			Action:  "Process the uploaded file first",
			Code:    "BATCH002",
		},
	},

	// Session lifecycle.
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "This batch session has expired",
			Action:  "Upload the file again to start a new session",
			Code:    "SES001",
		},
	},

	// Rate limiting.
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},

	// Request lifecycle.
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern and can be
// shown to users as-is, rather than hidden behind the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
