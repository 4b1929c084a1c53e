// Package jisp implements an embedded virtual machine whose instruction
// stream, operand stack, registers, and bookkeeping all live inside a single
// mutable JSON document. Executing a program mutates the document in place;
// the final document is the program's output.
package jisp

import (
	"io"
	"os"
)

// Interpreter drives entrypoint execution over a Document. It is strictly
// single-threaded; opcodes run to completion and the only shared mutable
// state is the document itself.
type Interpreter struct {
	output   io.Writer
	raw      bool
	compact  bool
	colorize bool
	ptrs     []*handle
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer used by print_json and print_error.
func WithOutput(w io.Writer) Option {
	return func(it *Interpreter) { it.output = w }
}

// WithRawOutput makes print_json emit string roots unquoted.
func WithRawOutput() Option {
	return func(it *Interpreter) { it.raw = true }
}

// WithCompactOutput makes print_json emit single-line JSON.
func WithCompactOutput() Option {
	return func(it *Interpreter) { it.compact = true }
}

// WithColorOutput colorizes print_error details. Fatal state snapshots are
// written by the caller through DumpState, which takes its own color flag.
func WithColorOutput() Option {
	return func(it *Interpreter) { it.colorize = true }
}

// New creates an Interpreter writing to standard output by default.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{output: os.Stdout}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Run executes the document's entrypoint, if any. Documents without an
// object root or without an entrypoint key are no-ops. The returned error,
// if non-nil, is a *FatalError carrying a state snapshot.
func (it *Interpreter) Run(doc *Document) error {
	m, ok := doc.rootObject()
	if !ok {
		return nil
	}
	ep, ok := m["entrypoint"]
	if !ok {
		return nil
	}
	return it.runFrame(doc, ep, "/entrypoint")
}

// Close releases all handles still on the pointer stack, as at VM shutdown.
func (it *Interpreter) Close() error {
	for len(it.ptrs) > 0 {
		h := it.ptrs[len(it.ptrs)-1]
		it.ptrs = it.ptrs[:len(it.ptrs)-1]
		h.release()
	}
	return nil
}

// sandbox creates the interpreter used for isolated sub-document execution:
// same output configuration, fresh pointer stack, no residual bleed.
func (it *Interpreter) sandbox() *Interpreter {
	return &Interpreter{
		output:   it.output,
		raw:      it.raw,
		compact:  it.compact,
		colorize: it.colorize,
	}
}
