package profile

import (
	"errors"

	"github.com/ezrec/zenbasic/translate"
)

var f = translate.From

var (
	// Profile errors
	ErrLayoutOrder = errors.New(f("memory regions out of order"))
	ErrGeometry    = errors.New(f("disk geometry invalid"))
)
