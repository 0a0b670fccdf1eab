// Package machine assembles the ZenBasic storage core: the 64K memory
// arena, the tokenized program store living inside it, and the NCDOS
// virtual floppy. The surrounding REPL, parser, and evaluator are hosts of
// this package, not part of it.
package machine

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/zenbasic/basic"
	"github.com/ezrec/zenbasic/internal"
	"github.com/ezrec/zenbasic/mem"
	"github.com/ezrec/zenbasic/ncdos"
	"github.com/ezrec/zenbasic/profile"
)

const PROGRAM_EXT = "BAS" // Default extension for program files.

// Machine is the storage core of one ZenBasic instance. It is owned by a
// single host; no operation is safe to overlap with another structural
// mutation on the same instance.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Profile profile.Profile

	Memory  *mem.Arena
	Program *basic.Program
	Disk    *ncdos.Disk
}

// New builds a machine from a profile. A profile with a DiskImage path gets
// a persistent disk, loading the image if it already exists; otherwise the
// disk stays in memory, freshly formatted.
func New(prof profile.Profile) (mc *Machine, err error) {
	err = prof.Validate()
	if err != nil {
		return
	}

	mc = &Machine{
		Profile: prof,
		Memory:  mem.NewArena(prof.Layout),
	}
	mc.Program = basic.NewProgram(mc.Memory)

	if prof.DiskImage != "" {
		mc.Disk, err = ncdos.Open(prof.DiskImage, prof.Geometry, prof.Label)
		if err != nil {
			mc = nil
			return
		}
	} else {
		mc.Disk = ncdos.NewDisk(prof.Geometry)
		err = mc.Disk.Format(prof.Label)
		if err != nil {
			mc = nil
			return
		}
	}

	return
}

// SetVerbose propagates verbose logging to every component.
func (mc *Machine) SetVerbose(verbose bool) {
	mc.Verbose = verbose
	mc.Memory.Verbose = verbose
	mc.Program.Verbose = verbose
	mc.Disk.Verbose = verbose
}

// Defines returns an iterator over all of the component defines.
func (mc *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		mc.Memory.Defines(),
		mc.Disk.Defines(),
	)
}

// programName applies the default .BAS extension.
func programName(filename string) string {
	if !strings.Contains(filename, ".") {
		filename += "." + PROGRAM_EXT
	}
	return filename
}

// SaveProgram writes the current program listing to disk as detokenized
// text, one "NNN text" line per program line.
func (mc *Machine) SaveProgram(filename string) (err error) {
	var sb strings.Builder
	for line, text := range mc.Program.Lines() {
		fmt.Fprintf(&sb, "%d %v\n", line, text)
	}

	err = mc.Disk.SaveFile(programName(filename), []byte(sb.String()))
	return
}

// LoadProgram replaces the current program with a listing from disk.
// The program in memory is only cleared once the file has been read.
func (mc *Machine) LoadProgram(filename string) (err error) {
	data, err := mc.Disk.LoadFile(programName(filename))
	if err != nil {
		return
	}

	mc.Program.Clear()

	for n, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		digits := 0
		for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			err = ErrListing{LineNo: n + 1, Line: line, Err: ErrLineNumber}
			return
		}

		number, convErr := strconv.ParseUint(line[:digits], 10, 16)
		if convErr != nil {
			err = ErrListing{LineNo: n + 1, Line: line, Err: convErr}
			return
		}

		text := strings.TrimPrefix(line[digits:], " ")
		err = mc.Program.AddLine(uint16(number), text)
		if err != nil {
			err = ErrListing{LineNo: n + 1, Line: line, Err: err}
			return
		}
	}

	return
}
