package ncdos

import (
	"errors"

	"github.com/ezrec/zenbasic/translate"
)

var f = translate.From

var (
	// Filesystem errors
	ErrDiskFull      = errors.New(f("disk full"))
	ErrDirectoryFull = errors.New(f("directory full"))
	ErrFileNotFound  = errors.New(f("file not found"))
	ErrNameInvalid   = errors.New(f("file name invalid"))
	ErrFileTooLarge  = errors.New(f("file too large"))

	// ErrCorruptChain reports a FAT chain that reached a free sector
	// before its end-of-chain marker. It is deliberately distinct from
	// ErrFileNotFound: the directory entry exists, the chain under it is
	// damaged.
	ErrCorruptChain = errors.New(f("file chain corrupt"))

	// Image errors
	ErrImageSize = errors.New(f("disk image size mismatch"))
)
