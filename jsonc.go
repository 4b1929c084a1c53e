package jisp

import (
	"bytes"
	"encoding/json"
)

// Program input tolerates // and /* */ comments and trailing commas, like
// the reader flags of the original tooling. StripComments rewrites such a
// byte stream into plain JSON of identical length and layout (comments are
// blanked, trailing commas spaced out), so byte offsets in parse errors stay
// meaningful.
func StripComments(bs []byte) []byte {
	out := make([]byte, len(bs))
	copy(out, bs)
	const (
		code = iota
		str
		strEscape
		lineComment
		blockComment
	)
	state := code
	var commaAt int
	commaAt = -1
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case code:
			switch c {
			case '"':
				state = str
				commaAt = -1
			case '/':
				if i+1 < len(out) {
					if out[i+1] == '/' {
						state = lineComment
						out[i], out[i+1] = ' ', ' '
						i++
						continue
					}
					if out[i+1] == '*' {
						state = blockComment
						out[i], out[i+1] = ' ', ' '
						i++
						continue
					}
				}
			case ',':
				commaAt = i
			case ']', '}':
				if commaAt >= 0 {
					out[commaAt] = ' '
				}
				commaAt = -1
			default:
				if !isJSONSpace(c) {
					commaAt = -1
				}
			}
		case str:
			switch c {
			case '\\':
				state = strEscape
			case '"':
				state = code
			}
		case strEscape:
			state = str
		case lineComment:
			if c == '\n' {
				state = code
			} else {
				out[i] = ' '
			}
		case blockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = code
			} else if c != '\n' {
				out[i] = ' '
			}
		}
	}
	return out
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Parse decodes a single JSON value, tolerating comments and trailing
// commas, and normalizes its numbers.
func Parse(bs []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(StripComments(bs)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}
