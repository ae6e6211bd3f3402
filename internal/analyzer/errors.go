package analyzer

import (
	"fmt"

	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

// ErrorKind identifies why a scan was aborted
type ErrorKind string

const (
	// UnrecognizedIdentifier: an identifier key missing from the registry
	UnrecognizedIdentifier ErrorKind = "unrecognized identifier"
	// UnrecognizedPasswordUsage: a password login declared under an unregistered name
	UnrecognizedPasswordUsage ErrorKind = "unrecognized password usage"
	// MalformedArguments: a wrapper call whose identifier is not a string literal
	MalformedArguments ErrorKind = "malformed arguments"
	// UnexpectedTopLevelDeclaration: a top-level statement outside the allowed shapes
	UnexpectedTopLevelDeclaration ErrorKind = "unexpected top-level declaration"
)

// Error reports code that disagrees with the registry. It is never
// recoverable: the registry has to be updated or the code changed.
type Error struct {
	Kind     ErrorKind
	Subject  string
	Location syntax.Location
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Kind, e.Subject)
}

func newError(kind ErrorKind, subject string, loc syntax.Location) *Error {
	return &Error{Kind: kind, Subject: subject, Location: loc}
}
