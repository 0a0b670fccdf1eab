// Package profile describes the machine shape: the memory-map regions of the
// 64K address space and the geometry of the virtual floppy. A Profile is
// built once (Default or Load) and passed explicitly to the components that
// need it; nothing in this module reads layout constants from package state.
package profile

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Layout partitions the 64K address space into fixed regions.
// All bounds are inclusive.
type Layout struct {
	ZeroPageStart uint16 `toml:"zero_page_start"`
	ZeroPageEnd   uint16 `toml:"zero_page_end"`
	StackStart    uint16 `toml:"stack_start"`
	StackEnd      uint16 `toml:"stack_end"`
	SystemStart   uint16 `toml:"system_start"`
	SystemEnd     uint16 `toml:"system_end"`
	ScreenStart   uint16 `toml:"screen_start"`
	ScreenEnd     uint16 `toml:"screen_end"`
	VarsStart     uint16 `toml:"vars_start"`
	VarsEnd       uint16 `toml:"vars_end"`
	ProgramStart  uint16 `toml:"program_start"`
	ProgramEnd    uint16 `toml:"program_end"`
	HardwareStart uint16 `toml:"hardware_start"`
	HardwareEnd   uint16 `toml:"hardware_end"`
}

// Geometry describes the virtual floppy.
type Geometry struct {
	Tracks          int `toml:"tracks"`
	SectorsPerTrack int `toml:"sectors_per_track"`
	BytesPerSector  int `toml:"bytes_per_sector"`
	DirEntries      int `toml:"dir_entries"`
	FatSector       int `toml:"fat_sector"` // First FAT sector on track 0.
	FatSectors      int `toml:"fat_sectors"`
}

// Profile bundles the machine configuration.
type Profile struct {
	Layout   Layout   `toml:"layout"`
	Geometry Geometry `toml:"geometry"`

	DiskImage string `toml:"disk_image"` // Backing file for the disk, empty for in-memory.
	Label     string `toml:"label"`      // Volume label written by format.
}

// DefaultLayout returns the authentic 8-bit memory map.
func DefaultLayout() Layout {
	return Layout{
		ZeroPageStart: 0x0000,
		ZeroPageEnd:   0x00FF,
		StackStart:    0x0100,
		StackEnd:      0x01FF,
		SystemStart:   0x0200,
		SystemEnd:     0x03FF,
		ScreenStart:   0x0400,
		ScreenEnd:     0x07FF,
		VarsStart:     0x0800,
		VarsEnd:       0x0FFF,
		ProgramStart:  0x1000,
		ProgramEnd:    0xEFFF,
		HardwareStart: 0xF000,
		HardwareEnd:   0xFFFF,
	}
}

// DefaultGeometry returns the 5.25" floppy shape: 40 tracks of 16 sectors
// of 256 bytes, with an 8-sector FAT in the second half of track 0.
func DefaultGeometry() Geometry {
	return Geometry{
		Tracks:          40,
		SectorsPerTrack: 16,
		BytesPerSector:  256,
		DirEntries:      64,
		FatSector:       8,
		FatSectors:      8,
	}
}

// Default returns the stock machine profile.
func Default() Profile {
	return Profile{
		Layout:   DefaultLayout(),
		Geometry: DefaultGeometry(),
		Label:    "NCDOS",
	}
}

// Size returns the disk image size in bytes.
func (geo Geometry) Size() int {
	return geo.Tracks * geo.SectorsPerTrack * geo.BytesPerSector
}

// Sectors returns the total sector count.
func (geo Geometry) Sectors() int {
	return geo.Tracks * geo.SectorsPerTrack
}

// Chainable returns the number of sectors addressable by a one-byte FAT
// entry. Indexes 0xFE and 0xFF are the end-of-chain and free markers, so
// sectors past index 0xFD can never appear in a file chain.
func (geo Geometry) Chainable() int {
	return min(geo.Sectors(), 0xFE)
}

// Validate checks region ordering and geometry sanity.
func (prof *Profile) Validate() (err error) {
	lay := &prof.Layout
	bounds := []uint16{
		lay.ZeroPageStart, lay.ZeroPageEnd,
		lay.StackStart, lay.StackEnd,
		lay.SystemStart, lay.SystemEnd,
		lay.ScreenStart, lay.ScreenEnd,
		lay.VarsStart, lay.VarsEnd,
		lay.ProgramStart, lay.ProgramEnd,
		lay.HardwareStart, lay.HardwareEnd,
	}
	for n := 1; n < len(bounds); n++ {
		if bounds[n] <= bounds[n-1] {
			err = ErrLayoutOrder
			return
		}
	}

	// The program list uses next pointer 0 as its end marker.
	if lay.ProgramStart == 0 {
		err = ErrLayoutOrder
		return
	}

	geo := &prof.Geometry
	if geo.Tracks < 2 || geo.SectorsPerTrack < 1 || geo.BytesPerSector < 32 {
		err = ErrGeometry
		return
	}
	if geo.DirEntries < 1 || geo.FatSectors < 1 {
		err = ErrGeometry
		return
	}

	if geo.FatSector+geo.FatSectors > geo.SectorsPerTrack {
		err = ErrGeometry
		return
	}
	if geo.FatSectors*geo.BytesPerSector < geo.Sectors() {
		err = ErrGeometry
		return
	}
	if (geo.FatSector-1)*geo.BytesPerSector < geo.DirEntries*32 {
		err = ErrGeometry
		return
	}

	return
}

// Load reads a machine profile from a TOML file. Fields not present keep
// their defaults.
func Load(path string) (prof Profile, err error) {
	prof = Default()

	_, err = toml.DecodeFile(path, &prof)
	if err != nil {
		return
	}

	err = prof.Validate()
	return
}

// Save writes the profile as TOML.
func (prof *Profile) Save(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer file.Close()

	err = toml.NewEncoder(file).Encode(prof)
	return
}
