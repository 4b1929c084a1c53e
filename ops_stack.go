package jisp

// Pure stack opcodes: duplicate_top, pop_and_store, add_two_top, map_over.

func (it *Interpreter) popAndStore(d *Document) error {
	s, err := requireStack(d, "pop_and_store", 2)
	if err != nil {
		return err
	}
	m, _ := d.rootObject()
	if _, ok := s[len(s)-1].(string); !ok {
		return fatalf(d, kindTypeMismatch, "pop_and_store: key must be a string")
	}
	logRemoveLast(d)
	key := removeLast(d).(string)
	logRemoveLast(d)
	value := removeLast(d)
	_, existed := m[key]
	m[key] = value
	op := "add"
	if existed {
		op = "replace"
	}
	recordPatch(d, op, encodePointerKey(key), value, true)
	return nil
}

func (it *Interpreter) duplicateTop(d *Document) error {
	if _, err := requireStack(d, "duplicate_top", 1); err != nil {
		return err
	}
	logRemoveLast(d)
	last := removeLast(d)
	pushAndLog(d, last)
	pushAndLog(d, clone(last))
	return nil
}

func (it *Interpreter) addTwoTop(d *Document) error {
	if _, err := requireStack(d, "add_two_top", 2); err != nil {
		return err
	}
	g := beginGroup(d)
	v1 := popPatched(d, g)
	v2 := popPatched(d, g)
	if !isNumber(v1) || !isNumber(v2) {
		return fatalf(d, kindTypeMismatch, "add_two_top: operands must be numeric")
	}
	var sum any
	if i1, ok1 := v1.(int); ok1 {
		if i2, ok2 := v2.(int); ok2 {
			sum = i1 + i2
		}
	}
	if sum == nil {
		sum = toFloat(v1) + toFloat(v2)
	}
	push(d, sum)
	g.record(d, "add", "/stack/-", sum, true)
	g.commit(d)
	return nil
}

func (it *Interpreter) mapOver(d *Document) error {
	if _, err := requireStack(d, "map_over", 2); err != nil {
		return err
	}
	g := beginGroup(d)
	fn, ok := popPatched(d, g).([]any)
	if !ok {
		return fatalf(d, kindTypeMismatch, "map_over: top of stack must be a function array")
	}
	data, ok := popPatched(d, g).([]any)
	if !ok {
		return fatalf(d, kindTypeMismatch, "map_over: second item on stack must be a data array")
	}
	result := make([]any, 0, len(data))
	s, _ := getStack(d, "map_over")
	origSize := len(s)
	for _, elem := range data {
		push(d, clone(elem))
		if err := it.runFrame(d, fn, "/map_over/function"); err != nil {
			return err
		}
		s, err := getStack(d, "map_over")
		if err != nil {
			return err
		}
		if len(s) != origSize+1 {
			return fatalf(d, kindAssertionFailure, "map_over: function must consume its argument and produce exactly one result on the stack. Stack size mismatch.")
		}
		result = append(result, removeLast(d))
	}
	push(d, result)
	g.record(d, "add", "/stack/-", result, true)
	g.commit(d)
	return nil
}
