package files

import "errors"

var (
	// ErrExists is returned by CreateNew when the target file is already present.
	ErrExists = errors.New("entry file already exists")

	// ErrTooLarge is returned when an entry file reaches the configured size bound.
	ErrTooLarge = errors.New("file is longer than maximum length allowed")

	// ErrInvalidUTF8 is returned when an entry file is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("file is not valid UTF-8")
)
