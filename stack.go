package jisp

import "strconv"

// Operand stack helpers. The stack is the visible array at root.stack; every
// mutation writes the slice back through the root object so the document
// always reflects the machine state.

func getStack(d *Document, op string) ([]any, error) {
	m, ok := d.rootObject()
	if !ok {
		return nil, fatalf(d, kindInvalidDirective, "%s: missing root", op)
	}
	s, ok := m["stack"].([]any)
	if !ok {
		return nil, fatalf(d, kindInvalidDirective, "%s: missing or non-array 'stack'", op)
	}
	return s, nil
}

func requireStack(d *Document, op string, n int) ([]any, error) {
	s, err := getStack(d, op)
	if err != nil {
		return nil, err
	}
	if len(s) < n {
		return nil, fatalf(d, kindStackUnderflow, "%s: need at least %d values on stack", op, n)
	}
	return s, nil
}

func setStack(d *Document, s []any) {
	m, _ := d.rootObject()
	m["stack"] = s
}

func stackElemPath(i int) string {
	return "/stack/" + strconv.Itoa(i)
}

// pushCopyAndLog appends a deep copy of elem and records the push. Used for
// entrypoint literal pushes.
func pushCopyAndLog(d *Document, elem any) error {
	s, err := getStack(d, "push")
	if err != nil {
		return err
	}
	setStack(d, append(s, clone(elem)))
	recordPatch(d, "add", "/stack/-", elem, true)
	return nil
}

// push appends v without logging; callers record their own patch.
func push(d *Document, v any) {
	m, _ := d.rootObject()
	s, _ := m["stack"].([]any)
	setStack(d, append(s, v))
}

// pushAndLog appends v and records a single add patch.
func pushAndLog(d *Document, v any) {
	push(d, v)
	recordPatch(d, "add", "/stack/-", v, true)
}

// removeLast pops the top of the stack without logging.
func removeLast(d *Document) any {
	m, _ := d.rootObject()
	s := m["stack"].([]any)
	v := s[len(s)-1]
	setStack(d, s[:len(s)-1])
	return v
}

// logRemoveLast records the removal of the current top, capturing its value
// so the patch can be inverted. Call immediately before removeLast.
func logRemoveLast(d *Document) {
	if !reversible(d) {
		return
	}
	m, _ := d.rootObject()
	s, _ := m["stack"].([]any)
	if len(s) == 0 {
		return
	}
	recordPatch(d, "remove", stackElemPath(len(s)-1), s[len(s)-1], true)
}

// popPatched pops the top and records the removal into g, for grouped ops.
func popPatched(d *Document, g *patchGroup) any {
	m, _ := d.rootObject()
	s := m["stack"].([]any)
	path := stackElemPath(len(s) - 1)
	v := removeLast(d)
	g.record(d, "remove", path, v, true)
	return v
}
