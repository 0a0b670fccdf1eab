package basic

import (
	"errors"

	"github.com/ezrec/zenbasic/translate"
)

var f = translate.From

var (
	// Program store errors
	ErrProgramFull = errors.New(f("program memory full"))
)
