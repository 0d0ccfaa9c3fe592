package dataset

// errors.go defines the closed failure set for dataset operations.
//
// Policy rejections (invalid path, caps exceeded) are expected outcomes
// with stable codes, not exceptional conditions. Anything outside this set
// is an internal failure and surfaces to callers generically while the
// full detail is logged server-side.

import "errors"

var (
	// ErrInvalidRequest is returned when a required parameter is missing.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidPath is returned when PathGuard rejects the request.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound is returned when the resolved file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrTooLarge is returned when file size metadata exceeds the byte cap.
	ErrTooLarge = errors.New("file too large")

	// ErrTooManyLines is returned when a JSONL file exceeds the line cap.
	ErrTooManyLines = errors.New("too many lines")

	// ErrUnsupportedType is returned for extensions no parser handles.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrParseFailure is returned when a whole document fails to parse.
	ErrParseFailure = errors.New("parse failure")
)
