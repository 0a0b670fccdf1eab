package basic

import (
	"encoding/binary"
	"iter"
	"log"
	"strings"

	"github.com/ezrec/zenbasic/mem"
)

// Program node field offsets.
const (
	NODE_NEXT   = 0 // Next node address (u16 LE), 0 at the tail.
	NODE_LINE   = 2 // Line number (u16 LE).
	NODE_TOKENS = 4 // Tokenized text, terminated by TOKEN_EOL.
)

// Program manages the tokenized program list embedded in arena memory.
// It owns the program area exclusively; the arena's PAGE header field is
// the list head.
type Program struct {
	Verbose bool // Set to enable verbose logging.

	Mem *mem.Arena

	top uint16 // Next append address.
}

// NewProgram creates a program store over an arena with no program in it.
func NewProgram(ar *mem.Arena) (prog *Program) {
	prog = &Program{
		Mem: ar,
		top: ar.Layout.ProgramStart,
	}

	ar.SetPage(0)

	return
}

// maxNodes bounds every next-pointer walk: the program area cannot hold
// more nodes than its size divided by the minimum node size, so a longer
// walk means a corrupted pointer loop.
func (prog *Program) maxNodes() int {
	area := int(prog.Mem.Layout.ProgramEnd) - int(prog.Mem.Layout.ProgramStart) + 1
	return area / (NODE_TOKENS + 1)
}

func (prog *Program) nodeNext(addr uint16) (next uint16) {
	next, _ = prog.Mem.ReadInt16(addr + NODE_NEXT)
	return
}

func (prog *Program) nodeLine(addr uint16) (line uint16) {
	line, _ = prog.Mem.ReadInt16(addr + NODE_LINE)
	return
}

func (prog *Program) nodeTokens(addr uint16) (tokens []byte) {
	at := addr + NODE_TOKENS
	for {
		b, err := prog.Mem.ReadByte(at)
		if err != nil || b == TOKEN_EOL {
			return
		}
		tokens = append(tokens, b)
		at++
	}
}

// AddLine stores a program line, replacing any line with the same number.
// Blank text deletes the line instead. The node is appended at the
// top-of-program cursor and spliced into number order by pointer rewrites
// alone.
func (prog *Program) AddLine(line uint16, text string) (err error) {
	if strings.TrimSpace(text) == "" {
		prog.DeleteLine(line)
		return
	}

	tokens := Tokenize(Normalize(text))
	size := NODE_TOKENS + len(tokens) + 1

	// Room is checked before anything is unlinked, so a full program
	// keeps its previous version of the line.
	if int(prog.top)+size-1 > int(prog.Mem.Layout.ProgramEnd) {
		err = ErrProgramFull
		return
	}

	prog.DeleteLine(line)

	var prev uint16
	next := prog.Mem.Page()
	for range prog.maxNodes() {
		if next == 0 || prog.nodeLine(next) >= line {
			break
		}
		prev = next
		next = prog.nodeNext(next)
	}

	// Write the whole node before touching any live pointer.
	node := make([]byte, NODE_TOKENS, size)
	binary.LittleEndian.PutUint16(node[NODE_NEXT:], next)
	binary.LittleEndian.PutUint16(node[NODE_LINE:], line)
	node = append(node, tokens...)
	node = append(node, TOKEN_EOL)

	addr := prog.top
	err = prog.Mem.StoreBytes(addr, node)
	if err != nil {
		return
	}

	if prev == 0 {
		prog.Mem.SetPage(addr)
	} else {
		err = prog.Mem.StoreInt16(prev+NODE_NEXT, int(addr))
		if err != nil {
			return
		}
	}

	prog.top += uint16(size)

	if prog.Verbose {
		log.Printf("basic: line %v stored at $%04X", line, addr)
	}

	return
}

// DeleteLine unlinks the numbered line. The node bytes stay behind; only
// pointers change. Reports whether the line existed.
func (prog *Program) DeleteLine(line uint16) (ok bool) {
	var prev uint16
	cur := prog.Mem.Page()

	for range prog.maxNodes() {
		if cur == 0 {
			return
		}
		at := prog.nodeLine(cur)
		if at > line {
			return
		}
		if at == line {
			next := prog.nodeNext(cur)
			if prev == 0 {
				prog.Mem.SetPage(next)
			} else {
				prog.Mem.StoreInt16(prev+NODE_NEXT, int(next))
			}
			if prog.Verbose {
				log.Printf("basic: line %v deleted", line)
			}
			ok = true
			return
		}
		prev = cur
		cur = prog.nodeNext(cur)
	}

	return
}

// Lines iterates the program in line-number order, detokenizing each node.
// The walk stops at the node-count bound, so a pointer loop cannot hang the
// iterator.
func (prog *Program) Lines() iter.Seq2[uint16, string] {
	return func(yield func(line uint16, text string) bool) {
		cur := prog.Mem.Page()
		for range prog.maxNodes() {
			if cur == 0 {
				return
			}
			if !yield(prog.nodeLine(cur), Detokenize(prog.nodeTokens(cur))) {
				return
			}
			cur = prog.nodeNext(cur)
		}
	}
}

// GetLine returns the detokenized text of one line.
func (prog *Program) GetLine(line uint16) (text string, ok bool) {
	for at, candidate := range prog.Lines() {
		if at == line {
			text = candidate
			ok = true
			return
		}
	}
	return
}

// Len returns the number of program lines.
func (prog *Program) Len() (count int) {
	for range prog.Lines() {
		count++
	}
	return
}

// Used returns the bytes consumed in the program area, including orphaned
// nodes.
func (prog *Program) Used() int {
	return int(prog.top - prog.Mem.Layout.ProgramStart)
}

// Clear forgets the whole program and rewinds the append cursor; this is
// the only operation that reclaims program memory.
func (prog *Program) Clear() {
	prog.Mem.SetPage(0)
	prog.top = prog.Mem.Layout.ProgramStart

	if prog.Verbose {
		log.Printf("basic: program cleared")
	}
}
