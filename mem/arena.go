// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mem

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log"
	"maps"
	"math"
	"strings"

	"github.com/ezrec/zenbasic/profile"
)

const (
	ARENA_SIZE = 65536 // Size of the address space in bytes.

	// Header field offsets, relative to the start of the system area.
	HEADER_VAR_COUNT = 0 // Variable count (u16).
	HEADER_SYM_NEXT  = 2 // Next free symbol-table offset (u16).
	HEADER_VAR_NEXT  = 4 // Next free variable address (u16).
	HEADER_PAGE      = 6 // Address of the first program node, 0 if none (u16).
	HEADER_SIZE      = 8
)

var _mem_defines = map[string]string{
	"ARENA_SIZE":  fmt.Sprintf("%v", ARENA_SIZE),
	"HEADER_SIZE": fmt.Sprintf("%v", HEADER_SIZE),
}

// Arena is the 64K byte buffer standing in for the machine's memory.
type Arena struct {
	Verbose bool // Set to enable verbose logging.

	Layout profile.Layout
	Data   []byte
}

// NewArena creates an arena with the given memory map and initializes the
// system-area header.
func NewArena(layout profile.Layout) (ar *Arena) {
	ar = &Arena{
		Layout: layout,
		Data:   make([]byte, ARENA_SIZE),
	}

	ar.Reset()

	return
}

// Defines for the memory arena.
func (ar *Arena) Defines() iter.Seq2[string, string] {
	return maps.All(_mem_defines)
}

// Reset reinitializes the header: no variables, no symbols, no program.
// Region contents are left as-is.
func (ar *Arena) Reset() {
	ar.setHeader(HEADER_VAR_COUNT, 0)
	ar.setHeader(HEADER_SYM_NEXT, ar.Layout.SystemStart+HEADER_SIZE)
	ar.setHeader(HEADER_VAR_NEXT, ar.Layout.VarsStart)
	ar.setHeader(HEADER_PAGE, 0)

	if ar.Verbose {
		log.Printf("mem: reset")
	}
}

// bounds verifies an n-byte access starting at addr.
func (ar *Arena) bounds(addr uint16, n int) (err error) {
	if int(addr)+n > len(ar.Data) {
		err = ErrAddress(addr)
	}
	return
}

// StoreInt16 writes a 16-bit little-endian value. The value is clamped to
// 16 bits before the write.
func (ar *Arena) StoreInt16(addr uint16, value int) (err error) {
	err = ar.bounds(addr, 2)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint16(ar.Data[addr:], uint16(value&0xFFFF))
	return
}

// ReadInt16 reads a 16-bit little-endian value.
func (ar *Arena) ReadInt16(addr uint16) (value uint16, err error) {
	err = ar.bounds(addr, 2)
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint16(ar.Data[addr:])
	return
}

// StoreFloat32 writes a 32-bit little-endian IEEE-754 value.
func (ar *Arena) StoreFloat32(addr uint16, value float32) (err error) {
	err = ar.bounds(addr, 4)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint32(ar.Data[addr:], math.Float32bits(value))
	return
}

// ReadFloat32 reads a 32-bit little-endian IEEE-754 value.
func (ar *Arena) ReadFloat32(addr uint16) (value float32, err error) {
	err = ar.bounds(addr, 4)
	if err != nil {
		return
	}

	value = math.Float32frombits(binary.LittleEndian.Uint32(ar.Data[addr:]))
	return
}

// StoreByte writes a single byte.
func (ar *Arena) StoreByte(addr uint16, value uint8) (err error) {
	err = ar.bounds(addr, 1)
	if err != nil {
		return
	}

	ar.Data[addr] = value
	return
}

// ReadByte reads a single byte.
func (ar *Arena) ReadByte(addr uint16) (value uint8, err error) {
	err = ar.bounds(addr, 1)
	if err != nil {
		return
	}

	value = ar.Data[addr]
	return
}

// StoreBytes writes a byte run starting at addr.
func (ar *Arena) StoreBytes(addr uint16, data []byte) (err error) {
	err = ar.bounds(addr, len(data))
	if err != nil {
		return
	}

	copy(ar.Data[addr:], data)
	return
}

// ReadBytes reads an n-byte run starting at addr. The result aliases the
// arena buffer and is only valid until the next write.
func (ar *Arena) ReadBytes(addr uint16, n int) (data []byte, err error) {
	err = ar.bounds(addr, n)
	if err != nil {
		return
	}

	data = ar.Data[addr : int(addr)+n]
	return
}

// header accessors; header fields are always in range by Layout validation.

func (ar *Arena) getHeader(field uint16) uint16 {
	return binary.LittleEndian.Uint16(ar.Data[ar.Layout.SystemStart+field:])
}

func (ar *Arena) setHeader(field uint16, value uint16) {
	binary.LittleEndian.PutUint16(ar.Data[ar.Layout.SystemStart+field:], value)
}

// Page returns the address of the first program node, 0 for an empty program.
func (ar *Arena) Page() uint16 {
	return ar.getHeader(HEADER_PAGE)
}

// SetPage updates the first-program-node pointer.
func (ar *Arena) SetPage(addr uint16) {
	ar.setHeader(HEADER_PAGE, addr)
}

// VarCount returns the number of allocated variables.
func (ar *Arena) VarCount() int {
	return int(ar.getHeader(HEADER_VAR_COUNT))
}

// VarNext returns the next free variable address.
func (ar *Arena) VarNext() uint16 {
	return ar.getHeader(HEADER_VAR_NEXT)
}

// ClearVariables resets the variable and symbol cursors. The underlying
// bytes are not zeroed; stale records are simply unreachable.
func (ar *Arena) ClearVariables() {
	ar.setHeader(HEADER_VAR_COUNT, 0)
	ar.setHeader(HEADER_SYM_NEXT, ar.Layout.SystemStart+HEADER_SIZE)
	ar.setHeader(HEADER_VAR_NEXT, ar.Layout.VarsStart)

	if ar.Verbose {
		log.Printf("mem: variables cleared")
	}
}

// Dump renders a hex view of memory in 16-byte rows, clipped at the arena
// bound. It never fails.
func (ar *Arena) Dump(addr uint16, length int) (text string) {
	if length <= 0 {
		length = 64
	}

	var sb strings.Builder
	for i := 0; i < length; i += 16 {
		at := int(addr) + i
		if at >= len(ar.Data) {
			break
		}

		fmt.Fprintf(&sb, "$%04X:", at)
		for j := range 16 {
			if at+j < len(ar.Data) {
				fmt.Fprintf(&sb, " %02X", ar.Data[at+j])
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// MemoryMap returns a human-readable summary of the memory regions and the
// current variable allocation.
func (ar *Arena) MemoryMap() (text string) {
	lay := ar.Layout
	regions := []struct {
		name       string
		start, end uint16
	}{
		{"Zero Page", lay.ZeroPageStart, lay.ZeroPageEnd},
		{"Stack", lay.StackStart, lay.StackEnd},
		{"System Area", lay.SystemStart, lay.SystemEnd},
		{"Screen Memory", lay.ScreenStart, lay.ScreenEnd},
		{"Variable Storage", lay.VarsStart, lay.VarsEnd},
		{"Program Memory", lay.ProgramStart, lay.ProgramEnd},
		{"Hardware Registers", lay.HardwareStart, lay.HardwareEnd},
	}

	var sb strings.Builder
	sb.WriteString("Memory Map:\n")
	for _, reg := range regions {
		fmt.Fprintf(&sb, "$%04X-$%04X  %v (%v bytes)\n",
			reg.start, reg.end, reg.name, int(reg.end)-int(reg.start)+1)
	}
	fmt.Fprintf(&sb, "\nVariable allocation: $%04X (%v bytes used)\n",
		ar.VarNext(), ar.VarNext()-lay.VarsStart)

	return sb.String()
}
