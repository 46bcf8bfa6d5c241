package extract

import "errors"

var (
	// ErrExtraction means the model output could not be turned into a complete result.
	ErrExtraction = errors.New("failed to generate summary")
	// ErrCompletion means the completion call itself failed.
	ErrCompletion = errors.New("completion failed")
)
