package jisp

import orderedmap "github.com/wk8/go-ordered-map/v2"

// opcode identifies a built-in operation. The numeric values are the wire
// ids exposed through the registry listing; they are stable and sparse.
type opcode int

const (
	opPopAndStore  opcode = 1
	opDuplicateTop opcode = 2
	opAddTwoTop    opcode = 3
	opPrintJSON    opcode = 5
	opUndo         opcode = 6
	opMapOver      opcode = 7
	opGet          opcode = 8
	opSet          opcode = 9
	opAppend       opcode = 10
	opPtrNew       opcode = 11
	opPtrRelease   opcode = 12
	opPtrGet       opcode = 13
	opPtrSet       opcode = 14
	opEnter        opcode = 15
	opExit         opcode = 16
	opTest         opcode = 17
	opPrintError   opcode = 18
	opLoad         opcode = 19
	opStore        opcode = 20
	opStep         opcode = 21
)

// registry maps case-sensitive names to opcodes, preserving definition order
// for listings. Read-only after initialization.
var registry = func() *orderedmap.OrderedMap[string, opcode] {
	m := orderedmap.New[string, opcode]()
	for _, op := range []struct {
		name string
		op   opcode
	}{
		{"pop_and_store", opPopAndStore},
		{"duplicate_top", opDuplicateTop},
		{"add_two_top", opAddTwoTop},
		{"print_json", opPrintJSON},
		{"undo", opUndo},
		{"map_over", opMapOver},
		{"get", opGet},
		{"set", opSet},
		{"append", opAppend},
		{"ptr_new", opPtrNew},
		{"ptr_release", opPtrRelease},
		{"ptr_get", opPtrGet},
		{"ptr_set", opPtrSet},
		{"enter", opEnter},
		{"exit", opExit},
		{"test", opTest},
		{"print_error", opPrintError},
		{"load", opLoad},
		{"store", opStore},
		{"step", opStep},
	} {
		m.Set(op.name, op.op)
	}
	return m
}()

func lookupOpcode(name string) (opcode, bool) {
	return registry.Get(name)
}

// Opcodes returns the built-in opcode names in definition order.
func Opcodes() []string {
	names := make([]string, 0, registry.Len())
	for pair := registry.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// OpcodeID returns the numeric id of the named opcode.
func OpcodeID(name string) (int, bool) {
	op, ok := registry.Get(name)
	return int(op), ok
}

func (it *Interpreter) applyOpcode(d *Document, op opcode) error {
	switch op {
	case opPopAndStore:
		return it.popAndStore(d)
	case opDuplicateTop:
		return it.duplicateTop(d)
	case opAddTwoTop:
		return it.addTwoTop(d)
	case opPrintJSON:
		return it.printJSON(d)
	case opUndo:
		return it.undo(d)
	case opMapOver:
		return it.mapOver(d)
	case opGet:
		return it.get(d)
	case opSet:
		return it.set(d)
	case opAppend:
		return it.append(d)
	case opPtrNew:
		return it.ptrNew(d)
	case opPtrRelease:
		return it.ptrRelease(d)
	case opPtrGet:
		return it.ptrGet(d)
	case opPtrSet:
		return it.ptrSet(d)
	case opEnter:
		return it.enter(d)
	case opExit:
		return it.exit(d)
	case opTest:
		return it.test(d)
	case opPrintError:
		return it.printError(d)
	case opLoad:
		return it.load(d)
	case opStore:
		return it.store(d)
	case opStep:
		return it.step(d)
	default:
		return fatalf(d, kindInvalidDirective, "unknown opcode id %d", op)
	}
}
