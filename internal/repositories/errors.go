package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("decode error")
)

// NetworkError is a transport failure (StatusCode == 0) or a non-2xx upstream status.
type NetworkError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error: upstream returned %s", e.Status)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

type DecodeErrorKind string

const (
	DecodeMalformed    DecodeErrorKind = "malformed"
	DecodeTypeMismatch DecodeErrorKind = "type_mismatch"
	DecodeMissingField DecodeErrorKind = "missing_field"
)

// DecodeError reports a body that does not have the expected shape. Field is the JSON path
// of the offending value when known.
type DecodeError struct {
	Kind  DecodeErrorKind
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode error (%s) at %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("decode error (%s): %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
