package machine

import (
	"errors"

	"github.com/ezrec/zenbasic/translate"
)

var f = translate.From

var (
	// Listing errors
	ErrLineNumber = errors.New(f("line number missing"))
)

// ErrListing indicates the location of a bad line in a program listing.
type ErrListing struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrListing) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrListing) Unwrap() error {
	return err.Err
}
