package index

import "errors"

// Sentinel kinds for index build errors. Build fails fast on any of these;
// a partially valid roster is never served.
var (
	ErrNoEntities      = errors.New("no entities to index")
	ErrEmptyName       = errors.New("entity has empty canonical name")
	ErrDuplicateEntity = errors.New("duplicate entity id")
	ErrDuplicateTeam   = errors.New("duplicate team code")
	ErrUnknownEntity   = errors.New("alias references unknown entity id")
	ErrUnknownTeam     = errors.New("entity references unknown team code")
)
