package domain

import "errors"

var (
	// ErrCapabilityFailure marks a data source error during dispatch.
	ErrCapabilityFailure = errors.New("capability invocation failed")
	// ErrValidation marks malformed arguments or requests.
	ErrValidation = errors.New("validation failed")
)
