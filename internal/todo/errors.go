package todo

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// ParseError reports content that could not be parsed: either the list file
// or a user-supplied index.
type ParseError struct {
	Path  string // file path or JSON path, empty for argument errors
	Input string // offending argument, empty for file errors
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Input != "":
		return fmt.Sprintf("invalid index %q: %s", e.Input, e.Err)
	case e.Path != "":
		return fmt.Sprintf("parse %s: %s", e.Path, e.Err)
	default:
		return fmt.Sprintf("parse: %s", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IndexError reports a 1-based position outside the list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of range: list is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of range: list has %d item(s)", e.Index, e.Len)
}

// Is lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// FileError reports a read or write failure on the list file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s todo file %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
