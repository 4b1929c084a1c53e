package jisp

// Sandboxed opcodes: test, undo, step. Each evaluates a program value in an
// isolated sub-document; nothing is shared with the parent and results are
// deep-copied back.

func (it *Interpreter) test(d *Document) error {
	s, err := requireStack(d, "test", 2)
	if err != nil {
		return err
	}
	expected := s[len(s)-1]
	program := s[len(s)-2]

	sub := NewDocument(clone(program))
	subIt := it.sandbox()
	defer subIt.Close()
	if err := subIt.Run(sub); err != nil {
		return err
	}
	logRemoveLast(d)
	removeLast(d)
	logRemoveLast(d)
	removeLast(d)
	result := sub.root
	if !subsetMatch(expected, result) {
		errObj := newErrorValue(kindTestFailure, "Test failed: result mismatch")
		errObj["details"] = map[string]any{
			"expected": clone(expected),
			"actual":   clone(result),
		}
		pushAndLog(d, errObj)
	}
	sub.release()
	return nil
}

func (it *Interpreter) undo(d *Document) error {
	s, err := requireStack(d, "undo", 1)
	if err != nil {
		return err
	}
	program, ok := s[len(s)-1].(map[string]any)
	if !ok {
		return fatalf(d, kindTypeMismatch, "undo: top of stack must be a program object")
	}
	sub := &Document{root: clone(program)}
	if err := performUndo(sub); err != nil {
		return err
	}
	logRemoveLast(d)
	removeLast(d)
	pushAndLog(d, clone(sub.root))
	return nil
}

func (it *Interpreter) step(d *Document) error {
	s, err := requireStack(d, "step", 1)
	if err != nil {
		return err
	}
	program, ok := s[len(s)-1].(map[string]any)
	if !ok {
		return fatalf(d, kindTypeMismatch, "step: top of stack must be a program object")
	}
	sub := NewDocument(clone(program))
	subIt := it.sandbox()
	defer subIt.Close()
	m, _ := sub.rootObject()
	pc, ok := m["pc"].(int)
	if !ok {
		pc = 0
		m["pc"] = 0
	}
	if ep, ok := m["entrypoint"].([]any); ok && pc >= 0 && pc < len(ep) {
		if _, err := getStack(sub, "step"); err != nil {
			return err
		}
		if err := subIt.runInstruction(sub, ep[pc], "/entrypoint", pc); err != nil {
			return err
		}
		m["pc"] = pc + 1
	}
	logRemoveLast(d)
	removeLast(d)
	pushAndLog(d, clone(sub.root))
	sub.release()
	return nil
}
