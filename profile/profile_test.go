package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Default(t *testing.T) {
	assert := assert.New(t)

	prof := Default()
	assert.NoError(prof.Validate())
	assert.Equal(uint16(0x1000), prof.Layout.ProgramStart)
	assert.Equal("NCDOS", prof.Label)
}

func TestGeometry_Default(t *testing.T) {
	assert := assert.New(t)

	geo := DefaultGeometry()
	assert.Equal(163840, geo.Size())
	assert.Equal(640, geo.Sectors())
	assert.Equal(0xFE, geo.Chainable())
}

func TestProfile_Validate_LayoutOrder(t *testing.T) {
	assert := assert.New(t)

	prof := Default()
	prof.Layout.VarsEnd = prof.Layout.VarsStart
	assert.ErrorIs(prof.Validate(), ErrLayoutOrder)

	prof = Default()
	prof.Layout.ProgramStart = prof.Layout.ScreenEnd
	assert.ErrorIs(prof.Validate(), ErrLayoutOrder)
}

func TestProfile_Validate_Geometry(t *testing.T) {
	assert := assert.New(t)

	prof := Default()
	prof.Geometry.Tracks = 1
	assert.ErrorIs(prof.Validate(), ErrGeometry)

	// FAT too small to map every sector.
	prof = Default()
	prof.Geometry.FatSectors = 2
	assert.ErrorIs(prof.Validate(), ErrGeometry)

	// FAT region runs off the end of track 0.
	prof = Default()
	prof.Geometry.FatSector = 12
	assert.ErrorIs(prof.Validate(), ErrGeometry)
}

func TestProfile_SaveLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "machine.toml")

	prof := Default()
	prof.Label = "MYDISK"
	prof.Geometry.Tracks = 80
	prof.Geometry.FatSectors = 5
	assert.NoError(prof.Save(path))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(prof, loaded)
}

func TestProfile_Load_Invalid(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "machine.toml")

	prof := Default()
	prof.Geometry.Tracks = 0
	assert.NoError(prof.Save(path))

	_, err := Load(path)
	assert.ErrorIs(err, ErrGeometry)
}

func TestProfile_Load_Missing(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(err)
}
