package roster

import "errors"

// Sentinel errors returned by the roster loader.
var (
	// ErrReadFile indicates a roster file could not be read.
	ErrReadFile = errors.New("failed to read roster file")
	// ErrParseFile indicates a roster file is not valid YAML.
	ErrParseFile = errors.New("failed to parse roster file")
	// ErrInvalidRecord indicates a player or team record is missing a
	// required field.
	ErrInvalidRecord = errors.New("invalid roster record")
)
