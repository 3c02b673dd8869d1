package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrFetch ErrorType = iota
	ErrMalformedRecord
	ErrDuplicatePackage
	ErrEncoding
	ErrSignature
	ErrInvalidConfig
	ErrOutput
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrFetch:
		return "Fetch"
	case ErrMalformedRecord:
		return "MalformedRecord"
	case ErrDuplicatePackage:
		return "DuplicatePackage"
	case ErrEncoding:
		return "Encoding"
	case ErrSignature:
		return "Signature"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrOutput:
		return "Output"
	default:
		return "Unknown"
	}
}

// DiffError represents an error raised while fetching, indexing or comparing
// branch package lists. Branch and Package are optional context.
type DiffError struct {
	Type    ErrorType
	Branch  string
	Package string
	Err     error
}

// Error implements the error interface
func (e *DiffError) Error() string {
	switch {
	case e.Branch != "" && e.Package != "":
		return fmt.Sprintf("[%s] %s: %s: %v", e.Type, e.Branch, e.Package, e.Err)
	case e.Branch != "":
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Branch, e.Err)
	case e.Package != "":
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *DiffError) Unwrap() error {
	return e.Err
}

// IsType reports whether any error in err's chain is a DiffError of type t.
func IsType(err error, t ErrorType) bool {
	var de *DiffError
	if !errors.As(err, &de) {
		return false
	}
	return de.Type == t
}
