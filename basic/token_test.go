package basic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_Keyword(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte{0xEA}, Tokenize("PRINT"))
	assert.Equal([]byte{0xEA, ' ', 'X'}, Tokenize("PRINT X"))
}

func TestTokenize_CaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte{0xEA}, Tokenize("print"))
	assert.Equal([]byte{0xDE}, Tokenize("GoTo"))
}

func TestTokenize_LongestMatch(t *testing.T) {
	assert := assert.New(t)

	// INKEY$ must win over INKEY.
	assert.Equal([]byte{0xBF}, Tokenize("INKEY$"))
	assert.Equal([]byte{0xA6}, Tokenize("INKEY"))
}

func TestTokenize_StringVerbatim(t *testing.T) {
	assert := assert.New(t)

	tokens := Tokenize(`PRINT "GOTO 10"`)
	assert.Equal(append([]byte{0xEA, ' '}, []byte(`"GOTO 10"`)...), tokens)
}

func TestTokenize_RemVerbatim(t *testing.T) {
	assert := assert.New(t)

	tokens := Tokenize("REM print this")
	assert.Equal(append([]byte{0xED}, []byte(" print this")...), tokens)
}

func TestTokenize_LiteralFallback(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte("X=1"), Tokenize("X=1"))
}

func TestDetokenize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("PRINT X", Detokenize([]byte{0xEA, ' ', 'X'}))
	assert.Equal(`PRINT "GOTO"`, Detokenize(Tokenize(`PRINT "GOTO"`)))
}

func TestDetokenize_LineToken(t *testing.T) {
	assert := assert.New(t)

	// 0x8D is the line-number reference token; it has no keyword form
	// and never tokenizes back.
	assert.Equal("<line>", Detokenize([]byte{0x8D}))
	assert.NotContains(string(Tokenize("<line>")), "\x8D")
}

func TestTokenize_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, line := range []string{
		"FOR I=1 TO 10",
		`PRINT "HELLO, WORLD"`,
		"IF X>5 THEN GOTO 100",
		"REM unchanged   spacing",
	} {
		assert.Equal(line, Detokenize(Tokenize(line)))
	}
}

func TestNormalize_Operators(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("LET X = 42", Normalize("LET   X   =   42"))
	assert.Equal("PRINT X", Normalize("PRINT    X"))
}

func TestNormalize_PreservesStrings(t *testing.T) {
	assert := assert.New(t)

	// The space ahead of the quote dies, the spaces inside survive.
	assert.Equal(`PRINT"A    B"`, Normalize(`PRINT   "A    B"`))
}

func TestNormalize_PreservesRem(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("REM  two  spaces", Normalize("REM  two  spaces"))
}

func TestNormalize_TrimsEnds(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("GOTO 10", Normalize("  GOTO 10  "))
}
