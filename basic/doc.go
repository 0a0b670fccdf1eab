// Package basic stores tokenized BASIC programs in arena memory.
//
// A source line is normalized, tokenized against the BBC BASIC keyword
// table, and written as a node of an intrusive singly linked list living in
// the arena's program area:
//
//	[next:u16 LE][line:u16 LE][tokens...][0x0D]
//
// The arena header's PAGE field points at the first node; a next pointer of
// 0 marks the tail. Nodes are only ever appended at the top-of-program
// cursor, so deleting or replacing a line rewrites pointers and leaves the
// old bytes orphaned. Space comes back on Clear, which rewinds the cursor.
package basic
