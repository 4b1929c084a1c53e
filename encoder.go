package jisp

import (
	"bytes"
	"io"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Marshal returns the compact JSON encoding of v. It accepts only the value
// types the interpreter produces (nil, bool, int, float64, string, []any,
// map[string]any), marshals NaN to null, truncates infinities, and writes
// object keys in sorted order.
func Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	(&encoder{w: &b}).encode(v)
	return b.Bytes(), nil
}

// MarshalIndent is like Marshal with two-space indentation.
func MarshalIndent(v any) ([]byte, error) {
	var b bytes.Buffer
	(&encoder{w: &b, indent: 2}).encode(v)
	return b.Bytes(), nil
}

type encoder struct {
	w interface {
		io.Writer
		io.ByteWriter
		io.StringWriter
	}
	buf    [64]byte
	indent int
	depth  int
}

func (e *encoder) encode(v any) {
	switch v := v.(type) {
	case nil:
		e.w.WriteString("null")
	case bool:
		if v {
			e.w.WriteString("true")
		} else {
			e.w.WriteString("false")
		}
	case int:
		e.w.Write(strconv.AppendInt(e.buf[:0], int64(v), 10))
	case float64:
		e.encodeFloat64(v)
	case string:
		e.encodeString(v)
	case []any:
		e.encodeArray(v)
	case map[string]any:
		e.encodeObject(v)
	default:
		e.w.WriteString("null")
	}
}

// ref: floatEncoder in encoding/json
func (e *encoder) encodeFloat64(f float64) {
	if math.IsNaN(f) {
		e.w.WriteString("null")
		return
	}
	if f >= math.MaxFloat64 {
		f = math.MaxFloat64
	} else if f <= -math.MaxFloat64 {
		f = -math.MaxFloat64
	}
	format := byte('f')
	if x := math.Abs(f); x != 0 && x < 1e-6 || x >= 1e21 {
		format = 'e'
	}
	buf := strconv.AppendFloat(e.buf[:0], f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	e.w.Write(buf)
}

// ref: encodeState#string in encoding/json
func (e *encoder) encodeString(s string) {
	e.w.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if ' ' <= b && b <= '~' && b != '"' && b != '\\' {
				i++
				continue
			}
			if start < i {
				e.w.WriteString(s[start:i])
			}
			switch b {
			case '"':
				e.w.WriteString(`\"`)
			case '\\':
				e.w.WriteString(`\\`)
			case '\b':
				e.w.WriteString(`\b`)
			case '\f':
				e.w.WriteString(`\f`)
			case '\n':
				e.w.WriteString(`\n`)
			case '\r':
				e.w.WriteString(`\r`)
			case '\t':
				e.w.WriteString(`\t`)
			default:
				const hex = "0123456789abcdef"
				e.w.WriteString(`\u00`)
				e.w.WriteByte(hex[b>>4])
				e.w.WriteByte(hex[b&0xF])
			}
			i++
			start = i
			continue
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			if start < i {
				e.w.WriteString(s[start:i])
			}
			e.w.WriteString(`\ufffd`)
			i += size
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		e.w.WriteString(s[start:])
	}
	e.w.WriteByte('"')
}

func (e *encoder) writeNewline() {
	if e.indent == 0 {
		return
	}
	e.w.WriteByte('\n')
	for i := 0; i < e.indent*e.depth; i++ {
		e.w.WriteByte(' ')
	}
}

func (e *encoder) encodeArray(vs []any) {
	e.w.WriteByte('[')
	if len(vs) == 0 {
		e.w.WriteByte(']')
		return
	}
	e.depth++
	for i, v := range vs {
		if i > 0 {
			e.w.WriteByte(',')
		}
		e.writeNewline()
		e.encode(v)
	}
	e.depth--
	e.writeNewline()
	e.w.WriteByte(']')
}

func (e *encoder) encodeObject(vs map[string]any) {
	e.w.WriteByte('{')
	if len(vs) == 0 {
		e.w.WriteByte('}')
		return
	}
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.depth++
	for i, k := range keys {
		if i > 0 {
			e.w.WriteByte(',')
		}
		e.writeNewline()
		e.encodeString(k)
		e.w.WriteByte(':')
		if e.indent > 0 {
			e.w.WriteByte(' ')
		}
		e.encode(vs[k])
	}
	e.depth--
	e.writeNewline()
	e.w.WriteByte('}')
}
