package snapshot

import "fmt"

// FileAccessError means the snapshot could not be read from disk.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("read snapshot %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError means the snapshot was read but is not well-formed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse snapshot %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
