package interfaces

import "errors"

// Errors shared by repository implementations.
var (
	// ErrSequenceConflict is returned when a sequential code could not be
	// assigned after the retry budget was exhausted.
	ErrSequenceConflict = errors.New("sequence counter conflict")
	// ErrAlreadyExists is returned when a create hits an existing primary key.
	ErrAlreadyExists = errors.New("record already exists")
)
