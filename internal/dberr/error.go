// Package dberr distinguishes errors the storage layer can recover from
// from those that mean the open table can no longer be trusted.
package dberr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindFatal covers environment failures and broken invariants: the
	// file could not be opened, a read/write/seek failed, or a page was
	// addressed outside the table. Callers should stop using the table.
	KindFatal Kind = iota

	// KindRecoverable errors leave the table untouched and may be
	// reported to the user as an ordinary result.
	KindRecoverable
)

func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindRecoverable:
		return "recoverable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "pager.GetPage".
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Fatal(op string, err error) error {
	return &Error{Kind: KindFatal, Op: op, Err: err}
}

func Fatalf(op string, format string, args ...any) error {
	return &Error{Kind: KindFatal, Op: op, Err: fmt.Errorf(format, args...)}
}

func Recoverable(op string, err error) error {
	return &Error{Kind: KindRecoverable, Op: op, Err: err}
}

// IsFatal reports whether any error in err's chain is a fatal *Error.
func IsFatal(err error) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == KindFatal {
			return true
		}
		err = e.Err
	}
	return false
}
