package mem

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateVariable(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	addr, err := ar.AllocateVariable("X", 2)
	assert.NoError(err)
	assert.Equal(uint16(0x0800), addr)
	assert.Equal(1, ar.VarCount())
	assert.Equal(uint16(0x0802), ar.VarNext())

	addr, err = ar.AllocateVariable("Y", 4)
	assert.NoError(err)
	assert.Equal(uint16(0x0802), addr)
	assert.Equal(uint16(0x0806), ar.VarNext())
}

func TestAllocateVariable_Idempotent(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	first, err := ar.AllocateVariable("X", 2)
	assert.NoError(err)

	again, err := ar.AllocateVariable("X", 2)
	assert.NoError(err)
	assert.Equal(first, again)
	assert.Equal(uint16(0x0802), ar.VarNext())
	assert.Equal(1, ar.VarCount())
}

func TestAllocateVariable_MemoryFull_AtBoundary(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()

	// The variable area is 2048 bytes; fill all but the last 8.
	for n := range 8 {
		_, err := ar.AllocateVariable(fmt.Sprintf("A%d", n), 255)
		assert.NoError(err)
	}
	assert.Equal(uint16(0x0FF8), ar.VarNext())

	// Exactly to the boundary is fine.
	addr, err := ar.AllocateVariable("LAST", 8)
	assert.NoError(err)
	assert.Equal(uint16(0x0FF8), addr)
	assert.Equal(uint16(0x1000), ar.VarNext())

	// One more byte is not.
	_, err = ar.AllocateVariable("OVER", 1)
	assert.ErrorIs(err, ErrMemoryFull)
	assert.Equal(uint16(0x1000), ar.VarNext())
}

func TestAllocateVariable_SymbolTableFull(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()

	var err error
	count := 0
	for count < 1000 {
		_, err = ar.AllocateVariable(fmt.Sprintf("VAR%03d", count), 1)
		if err != nil {
			break
		}
		count++
	}
	assert.ErrorIs(err, ErrSymbolTableFull)
	assert.Greater(count, 0)

	// The table that was built stays intact.
	sym, ok := ar.FindSymbol("VAR000")
	assert.True(ok)
	assert.Equal(uint16(0x0800), sym.Address)
	assert.Equal(count, ar.VarCount())
}

func TestFindSymbol_RecordBytes(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	_, err := ar.AllocateVariable("AB", 3)
	assert.NoError(err)

	// [name_len][name][address LE][size], then the sentinel.
	record := ar.Data[0x0208:0x020F]
	assert.Equal([]byte{2, 'A', 'B', 0x00, 0x08, 3, 0}, record)
}

func TestFindSymbol_FirstWriteWins(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	_, err := ar.AllocateVariable("X", 2)
	assert.NoError(err)

	// Hand-append a duplicate record pointing elsewhere, as a table
	// rebuild could produce. Lookup must keep returning the first.
	symNext, err := ar.ReadInt16(0x0202)
	assert.NoError(err)
	assert.NoError(ar.StoreBytes(symNext, []byte{1, 'X', 0x34, 0x12, 2, 0}))
	assert.NoError(ar.StoreInt16(0x0202, int(symNext)+5))

	sym, ok := ar.FindSymbol("X")
	assert.True(ok)
	assert.Equal(uint16(0x0800), sym.Address)
}

func TestClearVariables(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	_, err := ar.AllocateVariable("X", 2)
	assert.NoError(err)

	ar.ClearVariables()
	assert.Equal(0, ar.VarCount())
	assert.Equal(uint16(0x0800), ar.VarNext())

	_, ok := ar.FindSymbol("X")
	assert.False(ok)

	// The stale record bytes are still in place, just unreachable.
	assert.Equal(uint8(1), ar.Data[0x0208])
}

func TestSymbols_Order(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	for _, name := range []string{"ZED", "ALPHA", "MID"} {
		_, err := ar.AllocateVariable(name, 1)
		assert.NoError(err)
	}

	var names []string
	for sym := range ar.Symbols() {
		names = append(names, sym.Name)
	}
	assert.Equal([]string{"ZED", "ALPHA", "MID"}, names)
}

func TestAllocateVariable_BadArgs(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	_, err := ar.AllocateVariable("", 2)
	assert.ErrorIs(err, ErrSymbolName)

	_, err = ar.AllocateVariable("X", 0)
	assert.ErrorIs(err, ErrSymbolName)
}

func TestSymbols_PokedHeaderClamped(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	_, err := ar.AllocateVariable("X", 2)
	assert.NoError(err)

	// Scribble the symbol cursor past the system area and plant a huge
	// record length; the walk must stop at the area bound, not slice off
	// the end of the arena.
	assert.NoError(ar.StoreInt16(ar.Layout.SystemStart+HEADER_SYM_NEXT, 0xFFF0))
	assert.NoError(ar.StoreByte(ar.Layout.SystemStart+HEADER_SIZE, 0xFF))

	assert.NotPanics(func() {
		_, ok := ar.FindSymbol("X")
		assert.False(ok)
	})
}

func TestSymbols_TruncatedRecordStopsWalk(t *testing.T) {
	assert := assert.New(t)

	ar := testArena()
	base := ar.Layout.SystemStart + HEADER_SIZE

	// Hand-craft two records: a long valid one, then one whose name runs
	// past the system area. The walk yields the first and ends at the
	// second instead of slicing beyond the bound.
	name := make([]byte, 245)
	for n := range name {
		name[n] = 'A'
	}
	record := append([]byte{245}, name...)
	record = append(record, 0x00, 0x08, 1)
	assert.NoError(ar.StoreBytes(base, record))

	truncated := base + uint16(len(record))
	assert.NoError(ar.StoreByte(truncated, 0xFF))
	assert.NoError(ar.StoreInt16(ar.Layout.SystemStart+HEADER_SYM_NEXT, int(ar.Layout.SystemEnd)+1))

	assert.NotPanics(func() {
		count := 0
		for sym := range ar.Symbols() {
			assert.Equal(string(name), sym.Name)
			count++
		}
		assert.Equal(1, count)
	})
}
