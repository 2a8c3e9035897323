package journal

import "errors"

// ErrEntryNotFound is returned when no entry file exists for the requested day.
var ErrEntryNotFound = errors.New("no entry for that day")

// ErrEntryExists is returned when creating an entry for a day that already has one.
var ErrEntryExists = errors.New("an entry for that day already exists")
