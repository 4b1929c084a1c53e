package jisp

import "fmt"

// The entrypoint walker interprets an instruction array: literals are
// deep-copied onto the operand stack, directives dispatch to opcodes, macros,
// or nested frames. Each frame pushes its path onto root.call_stack on entry
// and pops it on every exit path.

func (it *Interpreter) runFrame(doc *Document, frame any, framePath string) error {
	arr, ok := frame.([]any)
	if !ok {
		return fatalf(doc, kindInvalidDirective, "entrypoint must be an array")
	}
	pushCallStack(doc, framePath)
	defer popCallStack(doc)
	if _, err := getStack(doc, "process_entrypoint"); err != nil {
		return err
	}
	for idx, elem := range arr {
		if consumeExitInterrupt(doc) {
			break
		}
		if err := it.runInstruction(doc, elem, framePath, idx); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) runInstruction(doc *Document, elem any, framePath string, idx int) error {
	switch elem := elem.(type) {
	case map[string]any:
		return it.runDirective(doc, elem, framePath, idx)
	case string, int, float64, []any:
		traceInstr(framePath, idx, "literal")
		return pushCopyAndLog(doc, elem)
	default:
		return fatalf(doc, kindInvalidDirective, "entrypoint element is not a string, number, array, or object")
	}
}

func (it *Interpreter) runDirective(doc *Document, elem map[string]any, framePath string, idx int) error {
	dot, ok := elem["."]
	if !ok {
		traceInstr(framePath, idx, "literal")
		return pushCopyAndLog(doc, elem)
	}
	switch dot := dot.(type) {
	case []any:
		traceInstr(framePath, idx, "frame")
		return it.runFrame(doc, dot, fmt.Sprintf("%s/%d/.", framePath, idx))
	case string:
		if op, ok := lookupOpcode(dot); ok {
			traceInstr(framePath, idx, dot)
			return it.applyOpcode(doc, op)
		}
		if m, ok := doc.rootObject(); ok {
			if macro, ok := m[dot].([]any); ok {
				traceInstr(framePath, idx, "macro "+dot)
				return it.runFrame(doc, macro, "/"+dot)
			}
		}
		traceInstr(framePath, idx, "literal")
		return pushCopyAndLog(doc, elem)
	default:
		return fatalf(doc, kindInvalidDirective, "entrypoint object '.' field must be an array or string")
	}
}

// Call-stack reflection. The array is created lazily; its depth always
// equals the number of frames currently on the host stack.

func pushCallStack(doc *Document, framePath string) {
	m, ok := doc.rootObject()
	if !ok {
		return
	}
	cs, ok := m["call_stack"].([]any)
	if !ok {
		cs = []any{}
	}
	m["call_stack"] = append(cs, framePath)
}

func popCallStack(doc *Document) {
	m, ok := doc.rootObject()
	if !ok {
		return
	}
	if cs, ok := m["call_stack"].([]any); ok && len(cs) > 0 {
		m["call_stack"] = cs[:len(cs)-1]
	}
}

// Exit interrupt: the exit opcode sets root._interrupt_exit; the walker
// consumes it at the top of the next iteration, breaking exactly one frame.

func setExitInterrupt(doc *Document) {
	if m, ok := doc.rootObject(); ok {
		m["_interrupt_exit"] = true
	}
}

func consumeExitInterrupt(doc *Document) bool {
	m, ok := doc.rootObject()
	if !ok {
		return false
	}
	if flag, _ := m["_interrupt_exit"].(bool); flag {
		delete(m, "_interrupt_exit")
		return true
	}
	return false
}
