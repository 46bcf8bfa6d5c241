package acquire

import "errors"

var (
	// ErrValidation marks input the caller must fix (missing URL, short content, unknown kind).
	ErrValidation = errors.New("validation failed")
	// ErrFetch marks a URL that could not be retrieved or returned a non-2xx status.
	ErrFetch = errors.New("fetch failed")
)
