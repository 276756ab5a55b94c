package repository

import "errors"

// ErrVersionConflict means the stored job changed since it was loaded.
var ErrVersionConflict = errors.New("job version conflict")

// ErrNotFound means the requested record does not exist.
var ErrNotFound = errors.New("record not found")
