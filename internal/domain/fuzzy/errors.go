package fuzzy

import "errors"

// Sentinel kinds for scorer errors.
var (
	ErrUnknownVariant = errors.New("unknown scoring variant")
)
