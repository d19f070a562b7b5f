package models

import (
	"errors"
)

// Error kinds surfaced by the search engine. Callers match them with
// errors.Is; the wrapping message embeds the offending parameter.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrDependencyFailure = errors.New("dependency failure")
)
