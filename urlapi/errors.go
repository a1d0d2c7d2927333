/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package urlapi

import (
	"errors"
	"fmt"
)

// Error kinds reported by this package. Every error returned by Parse, Get,
// Set and Dup matches exactly one of them through errors.Is.
var (
	// ErrMalformedInput is returned when the URL, or a part of it, does not
	// follow the accepted syntax.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnsupportedScheme is returned for a scheme missing from the registry
	// unless AllowUnknownScheme is set.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	// ErrBadPortNumber is returned for a non-numeric port or one outside
	// [1, 65535].
	ErrBadPortNumber = errors.New("bad port number")
	// ErrUserNotAllowed is returned when DisallowUser is set and the URL
	// carries a user name.
	ErrUserNotAllowed = errors.New("user not allowed")
	// ErrOutOfMemory is kept for parity with the error taxonomy. The Go
	// runtime aborts on allocation failure, so it is never produced here.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrUnknownPart is returned for a Part value outside the enumeration.
	ErrUnknownPart = errors.New("unknown part")
	// ErrBadHandle is returned when a method is called on a nil *URL.
	ErrBadHandle = errors.New("bad handle")
	// ErrBadPartPointer is returned when the destination of GetTo is nil.
	ErrBadPartPointer = errors.New("bad part pointer")
	// ErrMissingPart is matched by every *MissingPartError.
	ErrMissingPart = errors.New("missing part")
)

// ParseError is the error type returned by the parsing functions.
// Err holds the error kind, Message the detailed description.
type ParseError struct {
	Message string
	Err     error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("URL parse error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingPartError reports that the requested part is not stored in the
// handle. A part that is stored but empty is not missing.
type MissingPartError struct {
	Part Part
}

// Error implements the error interface.
func (e *MissingPartError) Error() string {
	return "no " + e.Part.String()
}

// Is makes every MissingPartError match ErrMissingPart.
func (e *MissingPartError) Is(target error) bool {
	return target == ErrMissingPart
}

// kindError is produced internally while parsing. It carries the error kind
// plus the offending character or text.
type kindError struct {
	kind    error
	message string
	char    byte
	details string
}

// Error formats the message with the character or details when present.
func (e *kindError) Error() string {
	msg := e.message
	if e.char != 0 {
		msg = fmt.Sprintf("%s %q", msg, e.char)
	} else if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	return msg
}

// Unwrap returns the error kind.
func (e *kindError) Unwrap() error {
	return e.kind
}

func malformed(message, details string) *kindError {
	return &kindError{kind: ErrMalformedInput, message: message, details: details}
}

// newParseError wraps err into a ParseError. It returns nil if err is nil.
// Errors that already are a *ParseError or a *MissingPartError pass through.
func newParseError(err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	var mp *MissingPartError
	if errors.As(err, &mp) {
		return mp
	}
	kind := errors.Unwrap(err)
	if kind == nil {
		kind = err
	}
	return &ParseError{Message: err.Error(), Err: kind}
}
