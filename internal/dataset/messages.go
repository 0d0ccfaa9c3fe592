package dataset

// messages.go maps the dataset error taxonomy to user-facing messages and
// HTTP statuses for the caller boundary.
//
// The mapping is an ordered table evaluated with first-match-wins
// semantics and an explicit fallback, so more specific errors must appear
// before general ones. Codes are stable and safe to quote in bug reports;
// messages never leak internal filesystem paths.

import (
	"errors"
	"net/http"
)

// UserMessage provides user-friendly error information with a stable code.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorMapping binds a sentinel error to its HTTP status and user message.
type errorMapping struct {
	sentinel error
	status   int
	msg      UserMessage
}

// errorMappings is evaluated in order; the first errors.Is match wins.
var errorMappings = []errorMapping{
	{
		sentinel: ErrInvalidRequest,
		status:   http.StatusBadRequest,
		msg: UserMessage{
			Message: "A required parameter is missing",
			Action:  "Provide the dir query parameter",
			Code:    "REQ001",
		},
	},
	{
		sentinel: ErrInvalidPath,
		status:   http.StatusForbidden,
		msg: UserMessage{
			Message: "The requested path is not allowed",
			Action:  "Request one of the published dataset directories",
			Code:    "PATH001",
		},
	},
	{
		sentinel: ErrNotFound,
		status:   http.StatusNotFound,
		msg: UserMessage{
			Message: "The requested dataset file does not exist",
			Action:  "List the directory to see available files",
			Code:    "FILE001",
		},
	},
	{
		sentinel: ErrTooLarge,
		status:   http.StatusRequestEntityTooLarge,
		msg: UserMessage{
			Message: "The dataset file exceeds the size limit",
			Action:  "Contact the maintainers if this file should be served",
			Code:    "FILE002",
		},
	},
	{
		sentinel: ErrTooManyLines,
		status:   http.StatusRequestEntityTooLarge,
		msg: UserMessage{
			Message: "The dataset file exceeds the line count limit",
			Action:  "Contact the maintainers if this file should be served",
			Code:    "FILE003",
		},
	},
	{
		sentinel: ErrUnsupportedType,
		status:   http.StatusBadRequest,
		msg: UserMessage{
			Message: "This file type cannot be served as a dataset",
			Action:  "Request a .json or .jsonl file",
			Code:    "FILE004",
		},
	},
	{
		sentinel: ErrParseFailure,
		status:   http.StatusBadRequest,
		msg: UserMessage{
			Message: "The dataset file could not be parsed",
			Action:  "Report the file so it can be regenerated",
			Code:    "PARSE001",
		},
	},
}

// defaultMessage is the explicit fallback for unmapped errors.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError returns the user message for an error from this package.
func MapError(err error) UserMessage {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return m.msg
		}
	}
	return defaultMessage
}

// HTTPStatus returns the stable status code for an error from this
// package. Unmapped errors are internal failures.
func HTTPStatus(err error) int {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
