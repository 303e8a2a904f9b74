package maze

import "errors"

var (
	ErrInvalidDimensions = errors.New("rows and cols must be positive")
	ErrUnknownMode       = errors.New("unknown search mode")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
