// Package mem implements the 64K address space of the ZenBasic machine.
//
// The arena is a flat byte buffer partitioned into fixed regions by a
// profile.Layout: zero page, hardware stack, system area, screen memory,
// variable storage, program memory, and hardware registers. A small header
// at the start of the system area records the allocator cursors (variable
// count, next symbol-table offset, next variable address, and the PAGE
// pointer to the first tokenized program node).
//
// Every "pointer" in the machine is a validated 16-bit offset into this
// buffer; the only way in or out is through the bounds-checked typed
// accessors on Arena.
package mem
