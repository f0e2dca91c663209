package image2excel

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input image file does not exist.
var ErrFileNotFound = errors.New("image file not found")

// ErrSinkUnavailable indicates the spreadsheet workbook could not be
// initialized for the requested grid.
var ErrSinkUnavailable = errors.New("spreadsheet sink unavailable")

// ConversionError represents an error during a conversion stage.
type ConversionError struct {
	Path  string
	Stage string // "decode", "write", "finalize", "save"
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error for %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(path, stage string, err error) *ConversionError {
	return &ConversionError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
