package contract

import "errors"

var (
	// ErrExtraction marks structured text that could not be located or
	// parsed. Recovered locally via default substitution, never surfaced.
	ErrExtraction = errors.New("structured extraction failed")

	// ErrStageCall marks a completion call that failed or returned empty
	// content. Recovered via default substitution for stages 1-4.
	ErrStageCall = errors.New("stage call failed")

	// ErrTransport marks an unreachable completion service. Fatal for the
	// turn; transcript and profile are left unchanged.
	ErrTransport = errors.New("completion transport failed")

	ErrValidation = errors.New("validation failed")
)
