package countdown

import "errors"

var (
	// ErrInvalidArgument indicates a subscription was requested with a bad interval or callback.
	ErrInvalidArgument = errors.New("invalid argument")
)
