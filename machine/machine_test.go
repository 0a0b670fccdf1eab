package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/zenbasic/ncdos"
	"github.com/ezrec/zenbasic/profile"
)

func testMachine(t *testing.T) (mc *Machine) {
	mc, err := New(profile.Default())
	assert.NoError(t, err)
	return
}

func TestMachine_Scenario(t *testing.T) {
	assert := assert.New(t)

	mc := testMachine(t)
	assert.NoError(mc.Disk.Format("NCDOS"))

	assert.NoError(mc.Disk.SaveFile("HELLO.BAS", []byte("10 PRINT X\n")))
	assert.Equal([]ncdos.FileInfo{{Name: "HELLO.BAS", Size: 11}}, mc.Disk.ListFiles())

	data, err := mc.Disk.LoadFile("HELLO.BAS")
	assert.NoError(err)
	assert.Equal([]byte("10 PRINT X\n"), data)

	assert.NoError(mc.Disk.DeleteFile("HELLO.BAS"))
	assert.Empty(mc.Disk.ListFiles())
}

func TestMachine_Components(t *testing.T) {
	assert := assert.New(t)

	mc := testMachine(t)

	// Variables and program share the arena; the disk stands alone.
	addr, err := mc.Memory.AllocateVariable("X", 2)
	assert.NoError(err)
	assert.NoError(mc.Memory.StoreInt16(addr, 42))

	assert.NoError(mc.Program.AddLine(10, "PRINT X"))

	value, err := mc.Memory.ReadInt16(addr)
	assert.NoError(err)
	assert.Equal(uint16(42), value)
}

func TestMachine_SaveLoadProgram(t *testing.T) {
	assert := assert.New(t)

	mc := testMachine(t)
	assert.NoError(mc.Program.AddLine(10, "PRINT A"))
	assert.NoError(mc.Program.AddLine(20, "GOTO10"))

	assert.NoError(mc.SaveProgram("TEST"))

	// The listing lands as plain text with the default extension.
	data, err := mc.Disk.LoadFile("TEST.BAS")
	assert.NoError(err)
	assert.Equal("10 PRINT A\n20 GOTO10\n", string(data))

	mc.Program.Clear()
	assert.NoError(mc.LoadProgram("TEST"))

	var lines []uint16
	var texts []string
	for line, text := range mc.Program.Lines() {
		lines = append(lines, line)
		texts = append(texts, text)
	}
	assert.Equal([]uint16{10, 20}, lines)
	assert.Equal([]string{"PRINT A", "GOTO10"}, texts)
}

func TestMachine_LoadProgram_BadListing(t *testing.T) {
	assert := assert.New(t)

	mc := testMachine(t)
	assert.NoError(mc.Disk.SaveFile("BAD.BAS", []byte("PRINT A\n")))

	err := mc.LoadProgram("BAD")
	assert.ErrorIs(err, ErrLineNumber)

	var listing ErrListing
	assert.ErrorAs(err, &listing)
	assert.Equal(1, listing.LineNo)
}

func TestMachine_LoadProgram_Missing(t *testing.T) {
	assert := assert.New(t)

	mc := testMachine(t)
	err := mc.LoadProgram("NOPE")
	assert.ErrorIs(err, ncdos.ErrFileNotFound)
}

func TestMachine_Defines(t *testing.T) {
	assert := assert.New(t)

	mc := testMachine(t)
	defines := map[string]string{}
	for key, value := range mc.Defines() {
		defines[key] = value
	}
	assert.Contains(defines, "ARENA_SIZE")
	assert.Contains(defines, "FAT_EOF")
}
