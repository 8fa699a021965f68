package classify

import "errors"

var (
	// ErrMalformedPayload is returned when the model output is not valid YAML.
	ErrMalformedPayload = errors.New("malformed classification payload")

	// ErrInvalidPayload is returned when decoded output fails validation.
	ErrInvalidPayload = errors.New("invalid classification payload")
)
