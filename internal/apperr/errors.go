// Package apperr defines the kind-tagged errors raised at item, modifier,
// and character operation boundaries.
//
// The teacher repo's model package favors plain package-level sentinel
// errors (see internal/model/player_subclass.go: ErrSubclassLocked,
// ErrMaxSubclasses, ...). That works when a handful of fixed sentinels
// cover the space. This codec raises the same kind of error from many call
// sites with different messages (e.g. UnsupportedModCode naming the
// specific code), so a single kind-tagged type that still participates in
// errors.Is/errors.As is used instead of seventeen separate sentinels.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a codec error, matching the string codes
// named in the save-file format's error handling design.
type Kind string

const (
	InvalidParams       Kind = "InvalidParams"
	InvalidItem         Kind = "InvalidItem"
	InvalidRarity       Kind = "InvalidRarity"
	InvalidItemType     Kind = "InvalidItemType"
	UnsupportedAction   Kind = "UnsupportedAction"
	UnsupportedStorage  Kind = "UnsupportedStorage"
	UnsupportedLocation Kind = "UnsupportedLocation"
	UnsupportedModCode  Kind = "UnsupportedModCode"
	UnsupportedShrine   Kind = "UnsupportedShrine"
	UnsupportedFormular Kind = "UnsupportedFormular"
	UnsupportedRarity   Kind = "UnsupportedRarity"
	ModNotFoundInItem   Kind = "ModNotFoundInItem"
	DuplicateMod        Kind = "DuplicateMod"
	AlreadyBlessed      Kind = "AlreadyBlessed"
	AlreadyUpgraded     Kind = "AlreadyUpgraded"
	AlreadyCorrupted    Kind = "AlreadyCorrupted"
	PropCodeNotFound    Kind = "PropCodeNotFound"
)

// Error is a structured error carrying a Kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Is makes errors.Is(err, apperr.New(kind, "")) match any *Error of the
// same Kind, regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

// Of reports whether err carries the given Kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
