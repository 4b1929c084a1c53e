package jisp

// Pointer-stack opcodes: ptr_new, ptr_release, ptr_get, ptr_set.

func (it *Interpreter) ptrNew(d *Document) error {
	s, err := requireStack(d, "ptr_new", 1)
	if err != nil {
		return err
	}
	path, ok := s[len(s)-1].(string)
	if !ok {
		return fatalf(d, kindTypeMismatch, "ptr_new: path must be a string")
	}
	if _, err := d.resolve(path); err != nil {
		return fatalf(d, kindForPointerError(err), "ptr_new: resolution failed for path '%s': %s", path, err)
	}
	h := newHandle(d, path)
	if err := it.ptrPush(d, h); err != nil {
		h.release()
		return err
	}
	logRemoveLast(d)
	removeLast(d)
	return nil
}

func (it *Interpreter) ptrRelease(d *Document) error {
	h, err := it.ptrPop(d)
	if err != nil {
		return err
	}
	h.release()
	return nil
}

func (it *Interpreter) ptrGet(d *Document) error {
	if _, err := getStack(d, "ptr_get"); err != nil {
		return err
	}
	h, err := it.ptrPeek(d)
	if err != nil {
		return err
	}
	if !h.valid() {
		return fatalf(d, kindInvalidPath, "ptr_get: invalid pointer handle")
	}
	loc, err := h.lookup()
	if err != nil {
		return fatalf(d, kindForPointerError(err), "ptr_get: pointer has null value (stale?)")
	}
	pushAndLog(d, clone(loc.value))
	return nil
}

func (it *Interpreter) ptrSet(d *Document) error {
	if _, err := requireStack(d, "ptr_set", 1); err != nil {
		return err
	}
	h, err := it.ptrPeek(d)
	if err != nil {
		return err
	}
	if !h.valid() {
		return fatalf(d, kindInvalidPath, "ptr_set: invalid pointer handle")
	}
	loc, err := h.lookup()
	if err != nil {
		return fatalf(d, kindForPointerError(err), "ptr_set: pointer has null value (stale?)")
	}
	s, _ := getStack(d, "ptr_set")
	if !isScalar(s[len(s)-1]) {
		return fatalf(d, kindTypeMismatch, "ptr_set: value must be a scalar (null, bool, number, or string)")
	}
	logRemoveLast(d)
	value := removeLast(d)
	// The target edit itself is not residual-logged; only the value pop is.
	return h.doc.scalarAssign(loc, value, "ptr_set")
}
