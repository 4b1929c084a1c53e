package jisp

import "strings"

// Residual logging: while root.is_reversible is true, every stack push and
// heap edit appends a JSON Patch object (or a flat group of them) to
// root.residual. The recorded value of a remove patch is what makes the
// patch invertible.

func reversible(d *Document) bool {
	m, ok := d.rootObject()
	if !ok {
		return false
	}
	flag, _ := m["is_reversible"].(bool)
	return flag
}

// residualArray fetches root.residual, creating it when absent. A residual
// key holding a non-array is user data; logging is skipped rather than
// clobbering it.
func residualArray(d *Document) ([]any, bool) {
	m, ok := d.rootObject()
	if !ok {
		return nil, false
	}
	if res, ok := m["residual"]; ok {
		arr, ok := res.([]any)
		return arr, ok
	}
	m["residual"] = []any{}
	return m["residual"].([]any), true
}

func appendResidual(d *Document, entry any) {
	arr, ok := residualArray(d)
	if !ok {
		return
	}
	m, _ := d.rootObject()
	m["residual"] = append(arr, entry)
	traceResidual(entry)
}

func makePatch(op, path string, v any, withValue bool) map[string]any {
	patch := map[string]any{"op": op, "path": path}
	if withValue {
		patch["value"] = clone(v)
	}
	return patch
}

func recordPatch(d *Document, op, path string, v any, withValue bool) {
	if !reversible(d) {
		return
	}
	appendResidual(d, makePatch(op, path, v, withValue))
}

// patchGroup collects the patches of a multi-edit opcode so they commit as a
// single residual entry. A nil group (reversibility off) degrades to direct
// recording, which is itself a no-op.
type patchGroup struct {
	patches []any
}

func beginGroup(d *Document) *patchGroup {
	if !reversible(d) {
		return nil
	}
	return &patchGroup{}
}

func (g *patchGroup) record(d *Document, op, path string, v any, withValue bool) {
	if g == nil {
		recordPatch(d, op, path, v, withValue)
		return
	}
	g.patches = append(g.patches, makePatch(op, path, v, withValue))
}

func (g *patchGroup) commit(d *Document) {
	if g == nil || !reversible(d) {
		return
	}
	appendResidual(d, g.patches)
}

// performUndo pops the last residual entry and applies its inverse: a group
// is inverted patch by patch in reverse order. Only stack-local effects are
// rigorously invertible; other paths are best-effort no-ops.
func performUndo(d *Document) error {
	m, ok := d.rootObject()
	if !ok {
		return fatalf(d, kindInvalidDirective, "undo: missing root")
	}
	res, _ := m["residual"].([]any)
	if len(res) == 0 {
		return fatalf(d, kindNotFound, "undo: 'residual' is missing or empty")
	}
	entry := res[len(res)-1]
	m["residual"] = res[:len(res)-1]
	switch entry := entry.(type) {
	case map[string]any:
		return undoPatch(d, entry)
	case []any:
		for i := len(entry) - 1; i >= 0; i-- {
			patch, ok := entry[i].(map[string]any)
			if !ok {
				return fatalf(d, kindInvalidDirective, "undo: grouped residual contains non-object entry")
			}
			if err := undoPatch(d, patch); err != nil {
				return err
			}
		}
		return nil
	default:
		return fatalf(d, kindInvalidDirective, "undo: top residual entry must be an object or array of objects")
	}
}

func undoPatch(d *Document, patch map[string]any) error {
	op, opOK := patch["op"].(string)
	path, pathOK := patch["path"].(string)
	if !opOK || !pathOK {
		return fatalf(d, kindInvalidDirective, "undo: residual entry must have string 'op' and 'path'")
	}
	m, _ := d.rootObject()
	switch op {
	case "add":
		if path == "/stack/-" {
			if s, ok := m["stack"].([]any); ok && len(s) > 0 {
				m["stack"] = s[:len(s)-1]
			}
		}
	case "remove":
		if strings.HasPrefix(path, "/stack/") {
			if s, ok := m["stack"].([]any); ok {
				if v, ok := patch["value"]; ok {
					m["stack"] = append(s, clone(v))
				}
			}
		}
	}
	// replace is not invertible without the previous value; skip.
	return nil
}
