package basic

import (
	"fmt"
	"strings"
)

// Tokenize converts a BASIC source line to its tokenized byte form.
// Keywords become single bytes >= 0x80 using the longest match at each
// position; everything inside double quotes or after REM is copied
// literally.
func Tokenize(line string) (tokens []byte) {
	var inString, inRem bool

	i := 0
	for i < len(line) {
		ch := line[i]

		switch {
		case inString:
			if ch == '"' {
				inString = false
			}
			tokens = append(tokens, ch)
			i++
		case inRem:
			tokens = append(tokens, ch)
			i++
		case ch == '"':
			inString = true
			tokens = append(tokens, ch)
			i++
		default:
			matched := false
			for length := min(KEYWORD_MAX, len(line)-i); length > 0; length-- {
				word := strings.ToUpper(line[i : i+length])
				token, ok := keywordTokens[word]
				if !ok {
					continue
				}
				tokens = append(tokens, token)
				if word == "REM" {
					inRem = true
				}
				i += length
				matched = true
				break
			}
			if !matched {
				tokens = append(tokens, ch)
				i++
			}
		}
	}

	return
}

// Detokenize converts tokenized bytes back to BASIC text. This reproduces a
// canonical reformatting of the line, not the bytes the user typed; see
// Normalize.
func Detokenize(tokens []byte) (line string) {
	var sb strings.Builder
	var inString bool

	for _, b := range tokens {
		switch {
		case b >= TOKEN_BASE:
			keyword, ok := tokenNames[b]
			if !ok {
				keyword = fmt.Sprintf("<%02X>", b)
			}
			sb.WriteString(keyword)
		case b == '"':
			inString = !inString
			sb.WriteByte(b)
		default:
			sb.WriteByte(b)
		}
	}

	return sb.String()
}

// Normalize squeezes whitespace out of a source line before tokenizing.
// Spaces survive only around operators and between adjacent words; string
// literals and REM comments are untouched. The transform is lossy on
// purpose: listings come back in this canonical form.
func Normalize(line string) (out string) {
	var sb strings.Builder
	var inString, inRem bool

	const operators = "=<>+-*/"

	isOperator := func(ch byte) bool {
		return strings.IndexByte(operators, ch) >= 0
	}
	isAlnum := func(ch byte) bool {
		return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
	}
	isAlpha := func(ch byte) bool {
		return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
	}
	last := func() (ch byte) {
		if sb.Len() > 0 {
			ch = sb.String()[sb.Len()-1]
		}
		return
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case ch == '"' && !inRem:
			inString = !inString
			sb.WriteByte(ch)
		case inString || inRem:
			sb.WriteByte(ch)
		case ch == ' ' || ch == '\t':
			prev := last()
			var next byte
			if i+1 < len(line) {
				next = line[i+1]
			}
			keep := isOperator(prev) || isOperator(next) ||
				(isAlnum(prev) && isAlpha(next))
			if keep && prev != ' ' && prev != 0 {
				sb.WriteByte(' ')
			}
		default:
			sb.WriteByte(ch)
			// A completed REM keyword starts the comment tail.
			text := sb.String()
			if len(text) >= 3 && strings.ToUpper(text[len(text)-3:]) == "REM" {
				if len(text) == 3 || !isAlpha(text[len(text)-4]) {
					inRem = true
				}
			}
		}
	}

	return strings.TrimSpace(sb.String())
}
