package cli

import (
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
)

func jsonFormatter() *prettyjson.Formatter {
	f := prettyjson.NewFormatter()
	f.StringColor = color.New(color.FgGreen)
	f.BoolColor = color.New(color.FgYellow)
	f.NumberColor = color.New(color.FgCyan)
	f.NullColor = color.New(color.FgHiBlack)
	f.KeyColor = color.New(color.FgBlue, color.Bold)
	return f
}
