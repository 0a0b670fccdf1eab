package basic

// BBC BASIC token map, with the ZenBasic extensions in the slots BBC BASIC
// left open. Bytes 0x80-0xFF are keywords; 0x00-0x7F pass through as ASCII.

const (
	TOKEN_BASE = 0x80 // First keyword token value.
	TOKEN_LINE = 0x8D // Line-number reference, followed by a 2-byte number.
	TOKEN_EOL  = 0x0D // End-of-line marker (carriage return).

	KEYWORD_MAX = 8 // Longest keyword considered by the tokenizer.
)

var tokenNames = map[byte]string{
	// 0x80-0x8F
	0x80: "AND",
	0x81: "DIV",
	0x82: "EOR",
	0x83: "MOD",
	0x84: "OR",
	0x85: "ERROR",
	0x86: "LINE",
	0x87: "OFF",
	0x88: "STEP",
	0x89: "SPC",
	0x8A: "TAB(",
	0x8B: "ELSE",
	0x8C: "THEN",
	0x8D: "<line>",
	0x8E: "OPENIN",
	0x8F: "PTR",

	// 0x90-0x9F
	0x90: "PAGE",
	0x91: "TIME",
	0x92: "LOMEM",
	0x93: "HIMEM",
	0x94: "ABS",
	0x95: "ACS",
	0x96: "ADVAL",
	0x97: "ASC",
	0x98: "ASN",
	0x99: "ATN",
	0x9A: "BGET",
	0x9B: "COS",
	0x9C: "COUNT",
	0x9D: "DEG",
	0x9E: "ERL",
	0x9F: "ERR",

	// 0xA0-0xAF
	0xA0: "EVAL",
	0xA1: "EXP",
	0xA2: "EXT",
	0xA3: "FALSE",
	0xA4: "FN",
	0xA5: "GET",
	0xA6: "INKEY",
	0xA7: "INSTR(",
	0xA8: "INT",
	0xA9: "LEN",
	0xAA: "LN",
	0xAB: "LOG",
	0xAC: "NOT",
	0xAD: "OPENUP",
	0xAE: "OPENOUT",
	0xAF: "PI",

	// 0xB0-0xBF
	0xB0: "POINT(",
	0xB1: "POS",
	0xB2: "RAD",
	0xB3: "RND",
	0xB4: "SGN",
	0xB5: "SIN",
	0xB6: "SQR",
	0xB7: "TAN",
	0xB8: "TO",
	0xB9: "TRUE",
	0xBA: "USR",
	0xBB: "VAL",
	0xBC: "VPOS",
	0xBD: "CHR$",
	0xBE: "GET$",
	0xBF: "INKEY$",

	// 0xC0-0xCF
	0xC0: "LEFT$(",
	0xC1: "MID$(",
	0xC2: "RIGHT$(",
	0xC3: "STR$",
	0xC4: "STRING$",
	0xC5: "EOF",
	0xC6: "AUTO",
	0xC7: "DELETE",
	0xC8: "LOAD",
	0xC9: "LIST",
	0xCA: "NEW",
	0xCB: "OLD",
	0xCC: "RENUMBER",
	0xCD: "SAVE",
	0xCE: "PUT",
	0xCF: "PTR",

	// 0xD0-0xDF
	0xD0: "CONT",
	0xD1: "CLEAR",
	0xD2: "CLOSE",
	0xD3: "CLG",
	0xD4: "CLS",
	0xD5: "DATA",
	0xD6: "DEF",
	0xD7: "DIM",
	0xD8: "DRAW",
	0xD9: "END",
	0xDA: "ENDPROC",
	0xDB: "ENVELOPE",
	0xDC: "FOR",
	0xDD: "GOSUB",
	0xDE: "GOTO",
	0xDF: "GCOL",

	// 0xE0-0xEF
	0xE0: "IF",
	0xE1: "INPUT",
	0xE2: "LET",
	0xE3: "LOCAL",
	0xE4: "MODE",
	0xE5: "MOVE",
	0xE6: "NEXT",
	0xE7: "ON",
	0xE8: "VDU",
	0xE9: "PLOT",
	0xEA: "PRINT",
	0xEB: "PROC",
	0xEC: "READ",
	0xED: "REM",
	0xEE: "REPEAT",
	0xEF: "REPORT",

	// 0xF0-0xFF
	0xF0: "RESTORE",
	0xF1: "RETURN",
	0xF2: "RUN",
	0xF3: "STOP",
	0xF4: "COLOUR",
	0xF5: "TRACE",
	0xF6: "UNTIL",
	0xF7: "WIDTH",
	0xF8: "OSCLI",
	0xF9: "ESCAPE",
	0xFA: "TAB",
	0xFB: "QUIT",
	0xFC: "HELP",
	0xFD: "TURBO",
	0xFE: "SLOW",
	0xFF: "VARS",
}

// Extension keywords without BBC equivalents, mapped into the extended
// slots, plus host aliases that share a token.
var extensionTokens = map[string]byte{
	"QUIT":    0xFB,
	"HELP":    0xFC,
	"TURBO":   0xFD,
	"SLOW":    0xFE,
	"VARS":    0xFF,
	"MEMORY":  0xF6,
	"MAP":     0xF6,
	"EXIT":    0xFB,
	"SYMBOLS": 0xFA,
	"DUMP":    0xF9,
}

var keywordTokens map[string]byte

func init() {
	keywordTokens = make(map[string]byte, len(tokenNames)+len(extensionTokens))
	for token := TOKEN_BASE; token <= 0xFF; token++ {
		keyword, ok := tokenNames[byte(token)]
		if !ok || token == TOKEN_LINE {
			continue
		}
		keywordTokens[keyword] = byte(token)
	}
	for keyword, token := range extensionTokens {
		keywordTokens[keyword] = token
	}
}
