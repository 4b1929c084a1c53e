package jisp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArithmeticStore(t *testing.T) {
	m := mustRun(t, `{"stack": [], "entrypoint": [10, 20, {".": "add_two_top"}, "temp_sum", {".": "pop_and_store"}]}`)
	if diff := cmp.Diff([]any{}, stackOf(t, m)); diff != "" {
		t.Errorf("stack diff:\n%s", diff)
	}
	if got := m["temp_sum"]; got != 30 {
		t.Errorf("temp_sum: got %#v, expected 30", got)
	}
}

func TestAddTwoTopNumberRepresentation(t *testing.T) {
	testCases := []struct {
		name, src string
		expected  any
	}{
		{"int plus int", `{"stack": [], "entrypoint": [1, 2, {".": "add_two_top"}]}`, 3},
		{"int plus real", `{"stack": [], "entrypoint": [1, 0.5, {".": "add_two_top"}]}`, 1.5},
		{"real plus real", `{"stack": [], "entrypoint": [0.25, 0.25, {".": "add_two_top"}]}`, 0.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := mustRun(t, tc.src)
			if diff := cmp.Diff([]any{tc.expected}, stackOf(t, m)); diff != "" {
				t.Errorf("stack diff:\n%s", diff)
			}
		})
	}
}

func TestPointerInPlaceEdit(t *testing.T) {
	m := mustRun(t, `{"stack": [0, 0, 0], "entrypoint": ["/stack/1", {".": "ptr_new"}, 99, {".": "ptr_set"}, {".": "ptr_release"}]}`)
	if diff := cmp.Diff([]any{0, 99, 0}, stackOf(t, m)); diff != "" {
		t.Errorf("stack diff:\n%s", diff)
	}
	if got := m["ref"]; got != 1 {
		t.Errorf("ref after release: got %v, expected 1", got)
	}
}

func TestPtrGetMatchesGet(t *testing.T) {
	m := mustRun(t, `{
		"stack": [],
		"value": {"deep": [1, {"x": 2}]},
		"entrypoint": [
			"/value", {".": "ptr_new"}, {".": "ptr_get"}, {".": "ptr_release"},
			"/value", {".": "get"}
		]
	}`)
	s := stackOf(t, m)
	if len(s) != 2 {
		t.Fatalf("stack size: got %d, expected 2", len(s))
	}
	if diff := cmp.Diff(s[0], s[1]); diff != "" {
		t.Errorf("ptr_get and get disagree:\n%s", diff)
	}
	if diff := cmp.Diff(m["value"], s[0]); diff != "" {
		t.Errorf("copied value diff:\n%s", diff)
	}
}

func TestDuplicateTop(t *testing.T) {
	m := mustRun(t, `{"stack": [], "entrypoint": [{"a": [1]}, {".": "duplicate_top"}]}`)
	s := stackOf(t, m)
	if len(s) != 2 {
		t.Fatalf("stack size: got %d, expected 2", len(s))
	}
	if diff := cmp.Diff(s[0], s[1]); diff != "" {
		t.Errorf("duplicate diff:\n%s", diff)
	}
	// The duplicate must be an independent copy.
	s[0].(map[string]any)["a"].([]any)[0] = 9
	if s[1].(map[string]any)["a"].([]any)[0] != 1 {
		t.Error("duplicate shares structure with original")
	}
}

func TestDuplicateThenStoreThenGet(t *testing.T) {
	m := mustRun(t, `{
		"stack": [],
		"entrypoint": [
			{"payload": [1, 2]},
			{".": "duplicate_top"},
			"K", {".": "pop_and_store"},
			"/K", {".": "get"}
		]
	}`)
	s := stackOf(t, m)
	if len(s) != 2 {
		t.Fatalf("stack size: got %d, expected 2", len(s))
	}
	if diff := cmp.Diff(s[0], s[1]); diff != "" {
		t.Errorf("round-trip diff:\n%s", diff)
	}
}

func TestPopAndStoreReplaces(t *testing.T) {
	m := mustRun(t, `{"stack": [], "x": 1, "entrypoint": [2, "x", {".": "pop_and_store"}]}`)
	if got := m["x"]; got != 2 {
		t.Errorf("x: got %v, expected 2", got)
	}
}

func TestSetScalar(t *testing.T) {
	m := mustRun(t, `{"stack": [], "reg": {"x": 1}, "entrypoint": [99, "/reg/x", {".": "set"}]}`)
	if got := m["reg"].(map[string]any)["x"]; got != 99 {
		t.Errorf("reg.x: got %v, expected 99", got)
	}
}

func TestAppend(t *testing.T) {
	m := mustRun(t, `{"stack": [], "xs": [1], "entrypoint": [2, "/xs", {".": "append"}, [3], "/xs", {".": "append"}]}`)
	if diff := cmp.Diff([]any{1, 2, []any{3}}, m["xs"]); diff != "" {
		t.Errorf("xs diff:\n%s", diff)
	}
}

func TestMapOverDouble(t *testing.T) {
	m := mustRun(t, `{
		"stack": [],
		"entrypoint": [[1, 2, 3], [{".": "duplicate_top"}, {".": "add_two_top"}], {".": "map_over"}]
	}`)
	if diff := cmp.Diff([]any{[]any{2, 4, 6}}, stackOf(t, m)); diff != "" {
		t.Errorf("stack diff:\n%s", diff)
	}
}

func TestMapOverIdentity(t *testing.T) {
	m := mustRun(t, `{"stack": [], "entrypoint": [[1, [2], {"x": 3}], [], {".": "map_over"}]}`)
	if diff := cmp.Diff([]any{[]any{1, []any{2}, map[string]any{"x": 3}}}, stackOf(t, m)); diff != "" {
		t.Errorf("stack diff:\n%s", diff)
	}
}

func TestMapOverStackDiscipline(t *testing.T) {
	fatal := mustFail(t, `{"stack": [], "entrypoint": [[1], [9], {".": "map_over"}]}`)
	if !strings.Contains(fatal.Message, "map_over: function must consume its argument") {
		t.Errorf("message: got %q", fatal.Message)
	}
}

func TestEnter(t *testing.T) {
	m := mustRun(t, `{
		"stack": [],
		"sub": [1, 2, {".": "add_two_top"}],
		"entrypoint": ["/sub", {".": "enter"}, [10, 20, {".": "add_two_top"}], {".": "enter"}]
	}`)
	if diff := cmp.Diff([]any{3, 30}, stackOf(t, m)); diff != "" {
		t.Errorf("stack diff:\n%s", diff)
	}
}

func TestLoadStore(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "value.json")
	m := mustRun(t, fmt.Sprintf(`{
		"stack": [],
		"entrypoint": [
			{"saved": [1, 2]}, %q, {".": "store"},
			%q, {".": "load"}
		]
	}`, fname, fname))
	if diff := cmp.Diff([]any{map[string]any{"saved": []any{1, 2}}}, stackOf(t, m)); diff != "" {
		t.Errorf("stack diff:\n%s", diff)
	}
	bs, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if expected := "{\n  \"saved\": [\n    1,\n    2\n  ]\n}\n"; string(bs) != expected {
		t.Errorf("file contents: got %q, expected %q", bs, expected)
	}
}

func TestOpcodeFatals(t *testing.T) {
	testCases := []struct {
		name, src, message string
	}{
		{
			"pop_and_store underflow",
			`{"stack": [1], "entrypoint": [{".": "pop_and_store"}]}`,
			"pop_and_store: need at least 2 values on stack",
		},
		{
			"pop_and_store non-string key",
			`{"stack": [1, 2], "entrypoint": [{".": "pop_and_store"}]}`,
			"pop_and_store: key must be a string",
		},
		{
			"add_two_top underflow",
			`{"stack": [], "entrypoint": [{".": "add_two_top"}]}`,
			"add_two_top: need at least 2 values on stack",
		},
		{
			"add_two_top type",
			`{"stack": ["a", 1], "entrypoint": [{".": "add_two_top"}]}`,
			"add_two_top: operands must be numeric",
		},
		{
			"duplicate_top underflow",
			`{"stack": [], "entrypoint": [{".": "duplicate_top"}]}`,
			"duplicate_top: need at least 1 values on stack",
		},
		{
			"get not found",
			`{"stack": ["/nope"], "entrypoint": [{".": "get"}]}`,
			"get: path not found: /nope",
		},
		{
			"get non-string path",
			`{"stack": [1], "entrypoint": [{".": "get"}]}`,
			"get: path must be a string",
		},
		{
			"set container value",
			`{"stack": [[1], "/y"], "y": 1, "entrypoint": [{".": "set"}]}`,
			"set: value must be a scalar (null, bool, number, or string)",
		},
		{
			"append non-array target",
			`{"stack": [1, "/x"], "x": 1, "entrypoint": [{".": "append"}]}`,
			"append: path must resolve to an array",
		},
		{
			"ptr_new unresolvable",
			`{"stack": ["/nope"], "entrypoint": [{".": "ptr_new"}]}`,
			"ptr_new: resolution failed for path '/nope'",
		},
		{
			"ptr_release underflow",
			`{"stack": [], "entrypoint": [{".": "ptr_release"}]}`,
			"Pointer stack underflow",
		},
		{
			"ptr_get underflow",
			`{"stack": [], "entrypoint": [{".": "ptr_get"}]}`,
			"Pointer stack underflow (peek)",
		},
		{
			"enter non-array target",
			`{"stack": ["/x"], "x": 1, "entrypoint": [{".": "enter"}]}`,
			"enter: path '/x' does not resolve to an array",
		},
		{
			"enter scalar",
			`{"stack": [1], "entrypoint": [{".": "enter"}]}`,
			"enter: top of stack must be a path string or an array",
		},
		{
			"load missing file",
			`{"stack": ["/no/such/file.json"], "entrypoint": [{".": "load"}]}`,
			"load: failed to read file",
		},
		{
			"undo non-object program",
			`{"stack": [1], "entrypoint": [{".": "undo"}]}`,
			"undo: top of stack must be a program object",
		},
		{
			"step non-object program",
			`{"stack": [1], "entrypoint": [{".": "step"}]}`,
			"step: top of stack must be a program object",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fatal := mustFail(t, tc.src)
			if !strings.Contains(fatal.Message, tc.message) {
				t.Errorf("message: got %q, expected to contain %q", fatal.Message, tc.message)
			}
		})
	}
}

func TestStackDeltaPerOpcode(t *testing.T) {
	testCases := []struct {
		name, src string
		delta     int
	}{
		{"duplicate_top", `{"stack": [1], "entrypoint": [{".": "duplicate_top"}]}`, 1},
		{"add_two_top", `{"stack": [1, 2], "entrypoint": [{".": "add_two_top"}]}`, -1},
		{"get", `{"stack": ["/x"], "x": 1, "entrypoint": [{".": "get"}]}`, 0},
		{"set", `{"stack": [9, "/x"], "x": 1, "entrypoint": [{".": "set"}]}`, -2},
		{"append", `{"stack": [9, "/xs"], "xs": [], "entrypoint": [{".": "append"}]}`, -2},
		{"exit", `{"stack": [], "entrypoint": [{".": "exit"}]}`, 0},
		{"print_error", `{"stack": [{"error": true}], "entrypoint": [{".": "print_error"}]}`, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse([]byte(tc.src))
			if err != nil {
				t.Fatal(err)
			}
			before := len(v.(map[string]any)["stack"].([]any))
			m := mustRun(t, tc.src)
			if got := len(stackOf(t, m)) - before; got != tc.delta {
				t.Errorf("stack delta: got %d, expected %d", got, tc.delta)
			}
		})
	}
}
