// Package errors re-exports github.com/cockroachdb/errors and defines the two
// failure kinds a chart render can end in.
//
// Usage:
//
//	if os.IsNotExist(err) {
//	    return errors.Mark(errors.Wrapf(err, "open %s", path), errors.ErrInputNotFound)
//	}
//	if errors.Is(err, errors.ErrInputNotFound) {
//	    // report the missing path
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Mark  = crdb.Mark
)

// User-facing details
var (
	WithHintf    = crdb.WithHintf
	FlattenHints = crdb.FlattenHints
)

var Is = crdb.Is

var (
	// ErrInputNotFound marks failures caused by a missing or unreadable input file.
	ErrInputNotFound = crdb.New("input file not found")
	// ErrParse marks structural problems with the strategy table.
	ErrParse = crdb.New("malformed strategy table")
)

// NotFound wraps err as an input-not-found failure for path.
func NotFound(err error, path string) error {
	return crdb.Mark(crdb.Wrapf(err, "open %s", path), ErrInputNotFound)
}

// Parsef builds a parse failure with a formatted message.
func Parsef(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrParse)
}
