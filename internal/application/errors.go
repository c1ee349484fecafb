package application

import "errors"

// Sentinel errors for preconditions the controller cannot work around
var (
	ErrNotAuthed    = errors.New("not authenticated")
	ErrNoMembership = errors.New("no Destiny membership selected")
)
