package mem

import (
	"errors"

	"github.com/ezrec/zenbasic/translate"
)

var f = translate.From

var (
	// Allocation errors
	ErrMemoryFull      = errors.New(f("variable memory full"))
	ErrSymbolTableFull = errors.New(f("symbol table full"))
	ErrSymbolName      = errors.New(f("symbol name invalid"))
)

// ErrAddress reports an access outside the address space.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address $%04X out of range", uint16(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}
