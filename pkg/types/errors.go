package types

import "errors"

// Store errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidID    = errors.New("invalid record ID")
	ErrInvalidName  = errors.New("invalid name")
	ErrStoreMissing = errors.New("store does not exist")
)

// Editor errors. Their messages are shown to the user as-is.
var (
	ErrUnknownTemplate  = errors.New("template not found")
	ErrProjectExists    = errors.New("directory already exists")
	ErrNoProject        = errors.New("no projects found; initialize a project first using 'vibe init'")
	ErrSectionNotFound  = errors.New("section not found")
	ErrAborted          = errors.New("aborted by user")
	ErrInvalidSelection = errors.New("invalid selection")
)
