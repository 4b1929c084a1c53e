package jisp

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
)

func prettyFormatter() *prettyjson.Formatter {
	f := prettyjson.NewFormatter()
	f.StringColor = color.New(color.FgGreen)
	f.BoolColor = color.New(color.FgYellow)
	f.NumberColor = color.New(color.FgCyan)
	f.NullColor = color.New(color.FgHiBlack)
	f.KeyColor = color.New(color.FgBlue, color.Bold)
	return f
}

// prettyValue renders v for diagnostics: colorized when the interpreter was
// built with WithColorOutput, plain indented JSON otherwise.
func (it *Interpreter) prettyValue(v any) string {
	if it.colorize {
		if bs, err := prettyFormatter().Marshal(v); err == nil {
			return string(bs)
		}
	}
	bs, _ := MarshalIndent(v)
	return string(bs)
}

// DumpState writes a labeled snapshot of a document state, as emitted on
// fatal errors.
func DumpState(w io.Writer, v any, colorize bool) {
	var bs []byte
	if colorize {
		bs, _ = prettyFormatter().Marshal(v)
	} else {
		bs, _ = MarshalIndent(v)
	}
	fmt.Fprintf(w, "\n---- JSON State Snapshot ----\n%s\n-----------------------------\n", bs)
}
