package bill

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedDocument means a document passed the issuer check but
	// matched no classification rule.
	ErrUnrecognizedDocument = errors.New("unrecognized document")
	// ErrFieldParse means a matched rule could not parse a required field.
	ErrFieldParse = errors.New("field parse error")
	// ErrWaterResolution means a water invoice was left without a period.
	ErrWaterResolution = errors.New("water resolution inconsistency")
	// ErrNoDocumentsFound means the batch produced no bill records.
	ErrNoDocumentsFound = errors.New("no documents found")
)

// DocumentError carries the offending file and value for a batch failure.
type DocumentError struct {
	Filename string
	Field    string
	Value    string
	Err      error
}

func (e *DocumentError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s %q", e.Filename, e.Err, e.Field, e.Value)
	case e.Value != "":
		return fmt.Sprintf("%s: %s: %q", e.Filename, e.Err, e.Value)
	default:
		return fmt.Sprintf("%s: %s", e.Filename, e.Err)
	}
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ParseError builds a DocumentError wrapping ErrFieldParse.
func ParseError(filename, field, value string) error {
	return &DocumentError{Filename: filename, Field: field, Value: value, Err: ErrFieldParse}
}
