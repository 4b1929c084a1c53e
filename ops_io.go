package jisp

import (
	"fmt"
	"os"
)

// I/O opcodes: print_json, print_error, load, store.

func (it *Interpreter) printJSON(d *Document) error {
	if s, ok := d.root.(string); ok && it.raw {
		fmt.Fprintln(it.output, s)
		return nil
	}
	var bs []byte
	if it.compact {
		bs, _ = Marshal(d.root)
	} else {
		bs, _ = MarshalIndent(d.root)
	}
	fmt.Fprintf(it.output, "%s\n", bs)
	return nil
}

func (it *Interpreter) printError(d *Document) error {
	if _, err := requireStack(d, "print_error", 1); err != nil {
		return err
	}
	logRemoveLast(d)
	v := removeLast(d)
	obj, ok := v.(map[string]any)
	if !ok {
		fmt.Fprintln(it.output, "Invalid Error Object")
		return nil
	}
	kind, _ := obj["kind"].(string)
	if kind == "" {
		kind = "Unknown Error"
	}
	fmt.Fprintf(it.output, "\n-- %s --\n", kind)
	if msg, _ := obj["message"].(string); msg != "" {
		fmt.Fprintln(it.output, msg)
	}
	details, ok := obj["details"].(map[string]any)
	if !ok {
		return nil
	}
	expected, hasExpected := details["expected"]
	actual, hasActual := details["actual"]
	if hasExpected || hasActual {
		if hasExpected {
			fmt.Fprintf(it.output, "Expected:\n%s\n", it.prettyValue(expected))
		}
		if hasActual {
			fmt.Fprintf(it.output, "Actual:\n%s\n", it.prettyValue(actual))
		}
		return nil
	}
	fmt.Fprintf(it.output, "Details\n%s\n", it.prettyValue(details))
	return nil
}

func (it *Interpreter) load(d *Document) error {
	s, err := requireStack(d, "load", 1)
	if err != nil {
		return err
	}
	path, ok := s[len(s)-1].(string)
	if !ok {
		return fatalf(d, kindTypeMismatch, "load: path must be a string")
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return fatalf(d, kindIOError, "load: failed to read file '%s': %s", path, err)
	}
	v, err := Parse(bs)
	if err != nil {
		return fatalf(d, kindIOError, "load: failed to parse file '%s': %s", path, err)
	}
	logRemoveLast(d)
	removeLast(d)
	pushAndLog(d, v)
	return nil
}

func (it *Interpreter) store(d *Document) error {
	s, err := requireStack(d, "store", 2)
	if err != nil {
		return err
	}
	path, ok := s[len(s)-1].(string)
	if !ok {
		return fatalf(d, kindTypeMismatch, "store: path must be a string")
	}
	bs, err := MarshalIndent(s[len(s)-2])
	if err != nil {
		return fatalf(d, kindIOError, "store: failed to encode value: %s", err)
	}
	if err := os.WriteFile(path, append(bs, '\n'), 0o644); err != nil {
		return fatalf(d, kindIOError, "store: failed to write file '%s': %s", path, err)
	}
	logRemoveLast(d)
	removeLast(d)
	logRemoveLast(d)
	removeLast(d)
	return nil
}
