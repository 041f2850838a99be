package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/parser"
)

const sampleSource = `
extern "C" {
    fn putchar(c: i32) -> i32;
    static errno: i32;
}

static mut COUNTER: i32 = 0;

fn emit(c: i32) {
    unsafe { putchar(c); }
}

fn main() -> i32 {
    let mut i: i32 = 0;
    while i < 10 {
        emit(i + 48);
        i = i + 1;
    }
    if i == 10 { emit(10); }
    0
}
`

func parseCrate(t *testing.T, src string) *ast.Crate {
	t.Helper()
	crate, err := parser.New(lexer.New("sample.mrs", strings.NewReader(src))).Parse()
	require.NoError(t, err)
	return crate
}

func TestGenerateDeclBackend(t *testing.T) {
	crate := parseCrate(t, sampleSource)
	backend := NewDeclBackend(crate.Name)
	require.NoError(t, Generate(crate, backend))

	expected := `module sample
  extern fn "C" putchar(i32) -> i32
  extern static errno: i32
  static mut COUNTER: i32
  fn emit(i32) -> () calls putchar
  fn main() -> i32 calls emit
`
	if diff := cmp.Diff(expected, backend.Module.String()); diff != "" {
		t.Errorf("module mismatch (-want +got):\n%s", diff)
	}

	main, ok := backend.Module.Lookup("main")
	require.True(t, ok)
	assert.Equal(t, DeclFunction, main.Kind)
	assert.Equal(t, []string{"emit"}, main.Calls)

	_, ok = backend.Module.Lookup("missing")
	assert.False(t, ok)
}

func TestGenerateDuplicate(t *testing.T) {
	crate := parseCrate(t, "fn f() {}\nstatic f: i32 = 1;")
	err := Generate(crate, NewDeclBackend(crate.Name))
	require.Error(t, err)
	assert.Equal(t, `crate sample: duplicate definition of "f"`, err.Error())
}

// recordingBackend logs every call and fails on the item named failOn.
type recordingBackend struct {
	calls  []string
	failOn string
}

var errBackend = errors.New("backend failure")

func (r *recordingBackend) record(entry, name string) error {
	r.calls = append(r.calls, entry)
	if name == r.failOn {
		return errBackend
	}
	return nil
}

func (r *recordingBackend) DeclareFunction(fn *ast.Function) error {
	return r.record("function "+fn.Proto.Name, fn.Proto.Name)
}

func (r *recordingBackend) DeclareStatic(static *ast.Static, external bool) error {
	entry := "static " + static.Name
	if external {
		entry = "extern " + entry
	}
	return r.record(entry, static.Name)
}

func (r *recordingBackend) DeclareExtern(abi string, proto *ast.FuncProto) error {
	return r.record("extern "+abi+" "+proto.Name, proto.Name)
}

func TestGenerateOrder(t *testing.T) {
	crate := parseCrate(t, sampleSource)

	rec := &recordingBackend{}
	require.NoError(t, Generate(crate, rec))
	assert.Equal(t, []string{
		"extern C putchar",
		"extern static errno",
		"static COUNTER",
		"function emit",
		"function main",
	}, rec.calls)

	rec = &recordingBackend{failOn: "COUNTER"}
	err := Generate(crate, rec)
	assert.ErrorIs(t, err, errBackend)
	assert.Len(t, rec.calls, 3)
}

func TestGenerateNilCrate(t *testing.T) {
	assert.Error(t, Generate(nil, NewDeclBackend("x")))
}
