package ports

import "errors"

// ErrInvalidInput marks request data the caller must fix. Match with
// errors.Is; the concrete error carries the caller-facing message.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError is a caller-facing validation failure.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidInput builds a validation failure with the given message.
func InvalidInput(msg string) error {
	return &InvalidInputError{Msg: msg}
}
