package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/flintwinters/jisp"
)

const name = "jisp"

const version = "0.0.0"

var revision = "HEAD"

const (
	exitCodeOK = iota
	exitCodeErr
	exitCodeFlagParseErr
)

type cli struct {
	inStream  io.Reader
	outStream io.Writer
	errStream io.Writer

	raw        bool
	compact    bool
	yamlOutput bool
}

func (cli *cli) run(args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.errStream)
	fs.Usage = func() {
		fs.SetOutput(cli.outStream)
		fmt.Fprintf(cli.outStream, `%[1]s - JSON-in-place stack machine

Version: %s (rev: %s/%s)

Synopsis:
    %% echo '{"stack":[],"entrypoint":[1,2,{".":"add_two_top"}]}' | %[1]s

Usage: %[1]s [options] [file|-]

A program is a JSON document; executing it mutates the document in place and
prints the final document. Multiple top-level JSON values on the input each
run against a fresh document.

Options:
`, name, version, revision, runtime.Version())
		fs.PrintDefaults()
	}
	var showVersion, listOpcodes bool
	fs.BoolVar(&cli.raw, "r", false, "output raw string if the document root is a string")
	fs.BoolVar(&cli.compact, "c", false, "compact output")
	fs.BoolVar(&cli.yamlOutput, "yaml", false, "output in YAML format")
	fs.BoolVar(&listOpcodes, "opcodes", false, "list the opcode registry and exit")
	fs.BoolVar(&showVersion, "v", false, "print version")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitCodeOK
		}
		return exitCodeFlagParseErr
	}
	if showVersion {
		fmt.Fprintf(cli.outStream, "%s %s (rev: %s/%s)\n", name, version, revision, runtime.Version())
		return exitCodeOK
	}
	if listOpcodes {
		for _, name := range jisp.Opcodes() {
			id, _ := jisp.OpcodeID(name)
			fmt.Fprintf(cli.outStream, "%02d %s\n", id, name)
		}
		return exitCodeOK
	}
	args = fs.Args()
	if len(args) > 1 {
		fmt.Fprintf(cli.errStream, "%s: too many arguments\n", name)
		return exitCodeFlagParseErr
	}
	fname := "-"
	if len(args) == 1 {
		fname = args[0]
	}
	iter, err := cli.newInputIter(fname)
	if err != nil {
		fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
		return exitCodeErr
	}
	defer iter.Close()
	m := cli.createMarshaler()
	for {
		v, ok := iter.Next()
		if !ok {
			return exitCodeOK
		}
		if err, ok := v.(error); ok {
			fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
			return exitCodeErr
		}
		if code := cli.execute(v, m); code != exitCodeOK {
			return code
		}
	}
}

func (cli *cli) execute(v any, m marshaler) int {
	doc := jisp.NewDocument(v)
	interp := jisp.New(cli.interpreterOptions()...)
	defer interp.Close()
	if err := interp.Run(doc); err != nil {
		fmt.Fprintf(cli.errStream, "%s: fatal error: %s\n", name, err)
		var fatal *jisp.FatalError
		if errors.As(err, &fatal) {
			jisp.DumpState(cli.errStream, fatal.Snapshot, false)
		}
		return exitCodeErr
	}
	bs, err := m.Marshal(doc.Root())
	if err != nil {
		fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
		return exitCodeErr
	}
	cli.outStream.Write(bs)
	if len(bs) == 0 || bs[len(bs)-1] != '\n' {
		cli.outStream.Write([]byte{'\n'})
	}
	return exitCodeOK
}

func (cli *cli) interpreterOptions() []jisp.Option {
	opts := []jisp.Option{jisp.WithOutput(cli.outStream)}
	if cli.raw {
		opts = append(opts, jisp.WithRawOutput())
	}
	if cli.compact {
		opts = append(opts, jisp.WithCompactOutput())
	}
	if cli.colorEnabled() {
		opts = append(opts, jisp.WithColorOutput())
	}
	return opts
}

func (cli *cli) colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := cli.outStream.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
