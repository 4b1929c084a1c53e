package jisp

// Heap opcodes: get, set, append, enter, exit.

func (it *Interpreter) get(d *Document) error {
	if _, err := requireStack(d, "get", 1); err != nil {
		return err
	}
	g := beginGroup(d)
	path, ok := popPatched(d, g).(string)
	if !ok {
		return fatalf(d, kindTypeMismatch, "get: path must be a string")
	}
	loc, err := d.resolve(path)
	if err != nil {
		return fatalf(d, kindForPointerError(err), "get: path not found: %s", path)
	}
	copied := clone(loc.value)
	push(d, copied)
	g.record(d, "add", "/stack/-", copied, true)
	g.commit(d)
	return nil
}

func (it *Interpreter) set(d *Document) error {
	if _, err := requireStack(d, "set", 2); err != nil {
		return err
	}
	g := beginGroup(d)
	path, ok := popPatched(d, g).(string)
	if !ok {
		return fatalf(d, kindTypeMismatch, "set: path must be a string")
	}
	value := popPatched(d, g)
	loc, err := d.resolve(path)
	if err != nil {
		return fatalf(d, kindForPointerError(err), "set: path not found: %s", path)
	}
	if err := d.scalarAssign(loc, value, "set"); err != nil {
		return err
	}
	g.record(d, "replace", path, value, true)
	g.commit(d)
	return nil
}

func (it *Interpreter) append(d *Document) error {
	if _, err := requireStack(d, "append", 2); err != nil {
		return err
	}
	g := beginGroup(d)
	path, ok := popPatched(d, g).(string)
	if !ok {
		return fatalf(d, kindTypeMismatch, "append: path must be a string")
	}
	value := popPatched(d, g)
	loc, err := d.resolve(path)
	if err != nil {
		return fatalf(d, kindForPointerError(err), "append: path must resolve to an array")
	}
	arr, ok := loc.value.([]any)
	if !ok {
		return fatalf(d, kindTypeMismatch, "append: path must resolve to an array")
	}
	arr = append(arr, clone(value))
	switch parent := loc.parent.(type) {
	case nil:
		d.root = arr
	case map[string]any:
		parent[loc.key] = arr
	case []any:
		parent[loc.index] = arr
	}
	apath := "/-"
	if path != "/" {
		apath = path + "/-"
	}
	g.record(d, "add", apath, value, true)
	g.commit(d)
	return nil
}

func (it *Interpreter) enter(d *Document) error {
	if _, err := requireStack(d, "enter", 1); err != nil {
		return err
	}
	switch top := removeLast(d).(type) {
	case string:
		loc, err := d.resolve(top)
		if err != nil {
			return fatalf(d, kindForPointerError(err), "enter: path '%s' does not resolve to an array", top)
		}
		if _, ok := loc.value.([]any); !ok {
			return fatalf(d, kindTypeMismatch, "enter: path '%s' does not resolve to an array", top)
		}
		return it.runFrame(d, loc.value, top)
	case []any:
		return it.runFrame(d, top, "<anonymous>")
	default:
		return fatalf(d, kindTypeMismatch, "enter: top of stack must be a path string or an array")
	}
}

func (it *Interpreter) exit(d *Document) error {
	setExitInterrupt(d)
	return nil
}
