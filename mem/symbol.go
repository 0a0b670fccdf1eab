package mem

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log"
	"strings"
)

// Symbol is one variable record: where it lives and how many bytes it owns.
type Symbol struct {
	Name    string
	Address uint16
	Size    uint8
}

// Symbol records are packed into the system area after the header:
// [name_len:u8][name][address:u16 LE][size:u8], terminated by a
// zero-length-name sentinel.

// Symbols returns an iterator over the symbol table in write order.
func (ar *Arena) Symbols() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		offset := int(ar.Layout.SystemStart) + HEADER_SIZE

		// The cursor and record lengths come from arena bytes the host
		// can scribble on; never walk or slice past the system area.
		end := min(int(ar.getHeader(HEADER_SYM_NEXT)), int(ar.Layout.SystemEnd)+1)

		for offset < end {
			nameLen := int(ar.Data[offset])
			if nameLen == 0 || offset+4+nameLen > end {
				return
			}

			sym := Symbol{
				Name:    string(ar.Data[offset+1 : offset+1+nameLen]),
				Address: binary.LittleEndian.Uint16(ar.Data[offset+1+nameLen:]),
				Size:    ar.Data[offset+3+nameLen],
			}
			if !yield(sym) {
				return
			}

			offset += 4 + nameLen
		}
	}
}

// FindSymbol looks up a variable by name. Records are append-only and the
// first match by write order wins.
func (ar *Arena) FindSymbol(name string) (sym Symbol, ok bool) {
	for cand := range ar.Symbols() {
		if cand.Name == name {
			sym = cand
			ok = true
			return
		}
	}
	return
}

// AllocateVariable reserves size bytes in the variable area for name and
// records it in the symbol table. Allocation is idempotent: if the name is
// already present, its existing address is returned and no cursor moves.
func (ar *Arena) AllocateVariable(name string, size int) (addr uint16, err error) {
	if len(name) == 0 || len(name) > 255 || size < 1 || size > 255 {
		err = ErrSymbolName
		return
	}

	sym, ok := ar.FindSymbol(name)
	if ok {
		addr = sym.Address
		return
	}

	varNext := int(ar.getHeader(HEADER_VAR_NEXT))
	if varNext+size-1 > int(ar.Layout.VarsEnd) {
		err = ErrMemoryFull
		return
	}

	// The record, plus one byte so the sentinel stays in the system area.
	symNext := int(ar.getHeader(HEADER_SYM_NEXT))
	recLen := 4 + len(name)
	if symNext+recLen > int(ar.Layout.SystemEnd) {
		err = ErrSymbolTableFull
		return
	}

	// Write the record and its trailing sentinel first; only then advance
	// the header cursors, so the header never points past unwritten bytes.
	ar.Data[symNext] = uint8(len(name))
	copy(ar.Data[symNext+1:], name)
	binary.LittleEndian.PutUint16(ar.Data[symNext+1+len(name):], uint16(varNext))
	ar.Data[symNext+3+len(name)] = uint8(size)
	ar.Data[symNext+recLen] = 0

	addr = uint16(varNext)
	ar.setHeader(HEADER_SYM_NEXT, uint16(symNext+recLen))
	ar.setHeader(HEADER_VAR_NEXT, uint16(varNext+size))
	ar.setHeader(HEADER_VAR_COUNT, uint16(ar.VarCount()+1))

	if ar.Verbose {
		log.Printf("mem: %v = $%04X (%v bytes)", name, addr, size)
	}

	return
}

// SymbolTable renders the symbol table for diagnostics.
func (ar *Arena) SymbolTable() (text string) {
	var sb strings.Builder
	sb.WriteString("Symbol Table:\n")
	for sym := range ar.Symbols() {
		fmt.Fprintf(&sb, "%-8v $%04X %3v\n", sym.Name, sym.Address, sym.Size)
	}
	fmt.Fprintf(&sb, "%v variables\n", ar.VarCount())

	return sb.String()
}
