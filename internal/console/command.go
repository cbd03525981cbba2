// Package console implements the hbnb command interpreter. Two surface
// syntaxes are accepted:
//
//	update Place 1234 name "My House"
//	Place.update("1234", "name", "My House")
//
// Both are parsed into the same Command and dispatched through one handler
// table, so argument validation lives in exactly one place.
package console

import "errors"

// Verbs understood by the interpreter.
const (
	VerbCreate  = "create"
	VerbShow    = "show"
	VerbDestroy = "destroy"
	VerbAll     = "all"
	VerbUpdate  = "update"
	VerbCount   = "count"
	VerbHelp    = "help"
	VerbQuit    = "quit"
	VerbEOF     = "EOF"
)

// Command is the canonical form of one input line. An empty Verb means
// there is nothing to do.
type Command struct {
	Verb string
	Args []string
}

// Interpreter diagnostics. Each is printed as "** <message> **".
var (
	ErrClassMissing      = errors.New("class name missing")
	ErrIDMissing         = errors.New("instance id missing")
	ErrAttrMissing       = errors.New("attribute name missing")
	ErrValueMissing      = errors.New("value missing")
	ErrInvalidCommand    = errors.New("invalid command")
	ErrInvalidUpdate     = errors.New("invalid update syntax")
	ErrDictionaryMissing = errors.New("dictionary missing")
)

func isVerb(word string) bool {
	switch word {
	case VerbCreate, VerbShow, VerbDestroy, VerbAll, VerbUpdate, VerbCount,
		VerbHelp, VerbQuit, VerbEOF:
		return true
	}
	return false
}
