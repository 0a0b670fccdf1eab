// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ncdos

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ezrec/zenbasic/profile"
)

const (
	BOOT_SIGNATURE = "NCDOS1.0" // Written to track 0, sector 0 by format.

	// FAT markers. Any other value is the index of the next sector in
	// the chain (track*sectors_per_track + sector).
	FAT_FREE = 0xFF
	FAT_EOF  = 0xFE
	// Track 0 system sectors are held with a 0x00 FAT entry, as the
	// original controller ROM did.
	FAT_SYSTEM = 0x00
)

var _dos_defines = map[string]string{
	"FAT_FREE": fmt.Sprintf("0x%02X", FAT_FREE),
	"FAT_EOF":  fmt.Sprintf("0x%02X", FAT_EOF),
}

// FileInfo is one directory listing row.
type FileInfo struct {
	Name string
	Size int
}

// Disk is a virtual floppy image. The zero Geometry is not usable; build
// disks with NewDisk or Open.
type Disk struct {
	Verbose bool // Set to enable verbose logging.

	Geometry profile.Geometry
	Path     string // Backing image file; empty keeps the disk in memory.

	Data []byte
}

// NewDisk creates an unformatted in-memory disk image.
func NewDisk(geo profile.Geometry) (disk *Disk) {
	disk = &Disk{
		Geometry: geo,
		Data:     make([]byte, geo.Size()),
	}

	return
}

// Open loads a disk image from path, or formats a fresh one there if the
// file does not exist. The image is persisted back to path after every
// mutation.
func Open(path string, geo profile.Geometry, label string) (disk *Disk, err error) {
	disk = NewDisk(geo)
	disk.Path = path

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return
		}
		err = disk.Format(label)
		return
	}
	defer file.Close()

	err = disk.Unmarshal(file)
	return
}

// Defines for the disk controller.
func (disk *Disk) Defines() iter.Seq2[string, string] {
	return maps.All(_dos_defines)
}

// Unmarshal replaces the image with the reader's contents.
func (disk *Disk) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}
	if len(data) != disk.Geometry.Size() {
		err = ErrImageSize
		return
	}

	disk.Data = data
	return
}

// Marshal writes the raw image.
func (disk *Disk) Marshal(file io.Writer) (err error) {
	_, err = file.Write(disk.Data)
	return
}

// sync rewrites the whole image to the backing file. This is the only
// persistence mechanism; there is no partial-write protection.
func (disk *Disk) sync() (err error) {
	if disk.Path == "" {
		return
	}

	err = os.WriteFile(disk.Path, disk.Data, 0644)
	return
}

// sector returns the in-image view of one sector.
func (disk *Disk) sector(track, sector int) []byte {
	geo := &disk.Geometry
	offset := (track*geo.SectorsPerTrack + sector) * geo.BytesPerSector
	return disk.Data[offset : offset+geo.BytesPerSector]
}

// fat returns the in-image view of the whole FAT.
func (disk *Disk) fat() []byte {
	geo := &disk.Geometry
	offset := geo.FatSector * geo.BytesPerSector
	return disk.Data[offset : offset+geo.FatSectors*geo.BytesPerSector]
}

// dirSlot returns the in-image view of one 32-byte directory slot.
// The directory starts in sector 1, directly after the boot sector.
func (disk *Disk) dirSlot(index int) []byte {
	offset := disk.Geometry.BytesPerSector + index*DIR_ENTRY_SIZE
	return disk.Data[offset : offset+DIR_ENTRY_SIZE]
}

// Format wipes the image: boot signature, all-free FAT with track 0 held
// as system sectors, and a volume-label directory entry.
func (disk *Disk) Format(label string) (err error) {
	geo := &disk.Geometry

	clear(disk.Data)
	copy(disk.sector(0, 0), BOOT_SIGNATURE)

	fat := disk.fat()
	for n := range fat {
		fat[n] = FAT_FREE
	}
	for n := range geo.SectorsPerTrack {
		fat[n] = FAT_SYSTEM
	}

	// Volume label in the first slot; the rest of its sector is filled
	// with free markers.
	dir := disk.sector(0, 1)
	for n := range dir {
		dir[n] = FAT_FREE
	}
	name, _, err := splitName(label)
	if err != nil {
		name, _, _ = splitName("NCDOS")
	}
	entry := DirEntry{
		Name: name,
		Ext:  [3]byte{'V', 'O', 'L'},
		Attr: ATTR_VOLUME,
	}
	entry.encode(disk.dirSlot(0))

	if disk.Verbose {
		log.Printf("ncdos: formatted %q", entry.Filename())
	}

	err = disk.sync()
	return
}

// findFile locates an active directory entry by 8.3 name.
func (disk *Disk) findFile(filename string) (index int, entry DirEntry, err error) {
	name, ext, err := splitName(filename)
	if err != nil {
		return
	}

	for index = range disk.Geometry.DirEntries {
		entry = parseDirEntry(disk.dirSlot(index))
		if entry.Status() != StatusActive {
			continue
		}
		if entry.Name == name && entry.Ext == ext {
			return
		}
	}

	err = ErrFileNotFound
	return
}

// findFreeSlot locates a reusable directory slot: never written, blanked,
// or soft-deleted.
func (disk *Disk) findFreeSlot() (index int, err error) {
	for index = range disk.Geometry.DirEntries {
		entry := parseDirEntry(disk.dirSlot(index))
		switch entry.Status() {
		case StatusFree, StatusDeleted:
			return
		}
	}

	err = ErrDirectoryFull
	return
}

// allocate finds count free sectors, first-fit from track 1. Only sector
// indexes a FAT byte can express are eligible.
func (disk *Disk) allocate(count int) (sectors []int, err error) {
	fat := disk.fat()

	for index := disk.Geometry.SectorsPerTrack; index < disk.Geometry.Chainable(); index++ {
		if fat[index] != FAT_FREE {
			continue
		}
		sectors = append(sectors, index)
		if len(sectors) == count {
			return
		}
	}

	sectors = nil
	err = ErrDiskFull
	return
}

// SaveFile writes a file, overwriting any previous file of the same name.
// On any failure nothing changes, the previous version included.
func (disk *Disk) SaveFile(filename string, data []byte) (err error) {
	geo := &disk.Geometry

	name, ext, err := splitName(filename)
	if err != nil {
		return
	}

	// The directory entry records the byte length in 16 bits; anything
	// larger would read back truncated.
	if len(data) > 0xFFFF {
		err = ErrFileTooLarge
		return
	}

	// All structure edits go through an image snapshot so a late failure
	// cannot leave a half-written filesystem.
	snapshot := slices.Clone(disk.Data)
	defer func() {
		if err != nil {
			disk.Data = snapshot
		}
	}()

	// Overwrite semantics: drop the old entry first so its sectors are
	// reusable by the new chain.
	_ = disk.deleteFile(filename)

	slot, err := disk.findFreeSlot()
	if err != nil {
		return
	}

	// An empty file still owns one sector, so its entry has a chain.
	count := max(1, (len(data)+geo.BytesPerSector-1)/geo.BytesPerSector)
	sectors, err := disk.allocate(count)
	if err != nil {
		return
	}

	for n, index := range sectors {
		sector := disk.sector(index/geo.SectorsPerTrack, index%geo.SectorsPerTrack)
		clear(sector)
		start := n * geo.BytesPerSector
		copy(sector, data[start:min(start+geo.BytesPerSector, len(data))])
	}

	fat := disk.fat()
	for n, index := range sectors {
		if n+1 < len(sectors) {
			fat[index] = byte(sectors[n+1])
		} else {
			fat[index] = FAT_EOF
		}
	}

	entry := DirEntry{
		Name:   name,
		Ext:    ext,
		Track:  byte(sectors[0] / geo.SectorsPerTrack),
		Sector: byte(sectors[0] % geo.SectorsPerTrack),
		Size:   uint16(len(data)),
	}
	entry.encode(disk.dirSlot(slot))

	if disk.Verbose {
		log.Printf("ncdos: saved %q (%v bytes, %v sectors)",
			entry.Filename(), len(data), len(sectors))
	}

	err = disk.sync()
	return
}

// LoadFile reads a file back, following its FAT chain and truncating to the
// recorded byte length. A free marker mid-chain reports ErrCorruptChain.
func (disk *Disk) LoadFile(filename string) (data []byte, err error) {
	geo := &disk.Geometry

	_, entry, err := disk.findFile(filename)
	if err != nil {
		return
	}

	fat := disk.fat()
	index := int(entry.Track)*geo.SectorsPerTrack + int(entry.Sector)

	// A chain can visit each sector at most once; anything longer is a
	// cycle from outside corruption.
	for range geo.Sectors() {
		data = append(data, disk.sector(index/geo.SectorsPerTrack, index%geo.SectorsPerTrack)...)

		next := fat[index]
		if next == FAT_EOF {
			data = data[:entry.Size]
			return
		}
		if next == FAT_FREE {
			data = nil
			err = ErrCorruptChain
			return
		}
		index = int(next)
	}

	data = nil
	err = ErrCorruptChain
	return
}

// deleteFile is DeleteFile without the image rewrite, for use inside
// compound operations.
func (disk *Disk) deleteFile(filename string) (err error) {
	geo := &disk.Geometry

	slot, entry, err := disk.findFile(filename)
	if err != nil {
		return
	}

	// Soft delete: the entry stays, marked, and its chain goes back to
	// the free pool.
	disk.dirSlot(slot)[11] |= ATTR_DELETED

	fat := disk.fat()
	index := int(entry.Track)*geo.SectorsPerTrack + int(entry.Sector)
	for range geo.Sectors() {
		next := fat[index]
		fat[index] = FAT_FREE
		if next == FAT_EOF || next == FAT_FREE {
			return
		}
		index = int(next)
	}

	return
}

// DeleteFile soft-deletes a file and frees its chain.
func (disk *Disk) DeleteFile(filename string) (err error) {
	err = disk.deleteFile(filename)
	if err != nil {
		return
	}

	if disk.Verbose {
		log.Printf("ncdos: deleted %q", filename)
	}

	err = disk.sync()
	return
}

// ListFiles scans the directory, skipping free, deleted, and volume-label
// slots.
func (disk *Disk) ListFiles() (files []FileInfo) {
	for index := range disk.Geometry.DirEntries {
		entry := parseDirEntry(disk.dirSlot(index))
		if entry.Status() != StatusActive {
			continue
		}
		files = append(files, FileInfo{
			Name: entry.Filename(),
			Size: int(entry.Size),
		})
	}

	return
}

// Label returns the volume label, if the disk has one.
func (disk *Disk) Label() (label string, ok bool) {
	for index := range disk.Geometry.DirEntries {
		entry := parseDirEntry(disk.dirSlot(index))
		if entry.Status() == StatusVolume {
			label = strings.TrimRight(string(entry.Name[:]), " ")
			ok = true
			return
		}
	}
	return
}

// FreeSectors counts the data sectors available for allocation.
func (disk *Disk) FreeSectors() (count int) {
	fat := disk.fat()
	for index := disk.Geometry.SectorsPerTrack; index < disk.Geometry.Chainable(); index++ {
		if fat[index] == FAT_FREE {
			count++
		}
	}
	return
}
