package ncdos

import (
	"encoding/binary"
	"strings"
)

const (
	DIR_ENTRY_SIZE = 32

	// Attribute bits.
	ATTR_VOLUME  = 0x08 // Entry is the volume label.
	ATTR_DELETED = 0x80 // Entry is soft-deleted.
)

// Status classifies a directory slot.
type Status int

const (
	StatusFree Status = iota
	StatusActive
	StatusDeleted
	StatusVolume
)

// DirEntry is one 32-byte directory record:
//
//	[name:8][ext:3][attr:1][track:1][sector:1][size:u16 LE][reserved:16]
type DirEntry struct {
	Name   [8]byte
	Ext    [3]byte
	Attr   byte
	Track  byte
	Sector byte
	Size   uint16
}

// parseDirEntry decodes a 32-byte directory slot.
func parseDirEntry(raw []byte) (entry DirEntry) {
	copy(entry.Name[:], raw[0:8])
	copy(entry.Ext[:], raw[8:11])
	entry.Attr = raw[11]
	entry.Track = raw[12]
	entry.Sector = raw[13]
	entry.Size = binary.LittleEndian.Uint16(raw[14:16])
	return
}

// encode writes the entry into a 32-byte directory slot, zeroing the
// reserved tail.
func (entry *DirEntry) encode(raw []byte) {
	clear(raw[:DIR_ENTRY_SIZE])
	copy(raw[0:8], entry.Name[:])
	copy(raw[8:11], entry.Ext[:])
	raw[11] = entry.Attr
	raw[12] = entry.Track
	raw[13] = entry.Sector
	binary.LittleEndian.PutUint16(raw[14:16], entry.Size)
}

// Status reports the slot state. A first name byte of 0x00 or 0xFF means
// the slot was never written (or was blanked by format padding).
func (entry *DirEntry) Status() Status {
	switch {
	case entry.Name[0] == 0x00 || entry.Name[0] == 0xFF:
		return StatusFree
	case entry.Attr&ATTR_DELETED != 0:
		return StatusDeleted
	case entry.Attr&ATTR_VOLUME != 0:
		return StatusVolume
	default:
		return StatusActive
	}
}

// Filename returns the entry's name in NAME.EXT form.
func (entry *DirEntry) Filename() (name string) {
	name = strings.TrimRight(string(entry.Name[:]), " ")
	ext := strings.TrimRight(string(entry.Ext[:]), " ")
	if ext != "" {
		name += "." + ext
	}
	return
}

// splitName canonicalizes a filename to its 8.3 form: upper-cased,
// space-padded, truncated.
func splitName(filename string) (name [8]byte, ext [3]byte, err error) {
	base, tail, _ := strings.Cut(filename, ".")
	base = strings.ToUpper(strings.TrimSpace(base))
	tail = strings.ToUpper(strings.TrimSpace(tail))
	if base == "" {
		err = ErrNameInvalid
		return
	}

	copy(name[:], "        ")
	copy(ext[:], "   ")
	copy(name[:], base)
	copy(ext[:], tail)
	return
}
