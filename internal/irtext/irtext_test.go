package irtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvcc/internal/diag"
	"rvcc/internal/ir"
)

func TestParseSimpleFunction(t *testing.T) {
	src := `
func main() {
entry:
  x = const 5
  ret x
}
`
	reporter := diag.NewReporter("test.ir", src)
	module, err := Parse("test.ir", src, reporter)
	require.NoError(t, err)
	require.Len(t, module.Functions, 1)

	fn := module.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Blocks, 1)
	require.Len(t, fn.Blocks[0].Instructions, 2)

	c, ok := fn.Blocks[0].Instructions[0].(*ir.Const)
	require.True(t, ok)
	assert.Equal(t, int64(5), c.Value.Int)

	ret, ok := fn.Blocks[0].Instructions[1].(*ir.Ret)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, ret.Args)
}

func TestParseBranchAndArithmetic(t *testing.T) {
	src := `
func f(a, b) {
entry:
  cond = lt a, b
  br cond, then, else
then:
  r = add a, b
  ret r
else:
  r = sub a, b
  ret r
}
`
	reporter := diag.NewReporter("test.ir", src)
	module, err := Parse("test.ir", src, reporter)
	require.NoError(t, err)
	require.Len(t, module.Functions, 1)

	fn := module.Functions[0]
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Blocks, 3)

	br, ok := fn.Blocks[0].Instructions[1].(*ir.Br)
	require.True(t, ok)
	assert.Equal(t, "then", br.Then)
	assert.Equal(t, "else", br.Else)

	// CFG wiring ran as part of Build: entry must have both successors.
	assert.ElementsMatch(t, []int{1, 2}, fn.Blocks[0].Succs)
}

func TestParseCallWithAndWithoutDest(t *testing.T) {
	src := `
func f() {
entry:
  r = call helper(1, 2)
  call print_int(r)
  ret
}
`
	reporter := diag.NewReporter("test.ir", src)
	module, err := Parse("test.ir", src, reporter)
	require.NoError(t, err)

	instrs := module.Functions[0].Blocks[0].Instructions
	call, ok := instrs[0].(*ir.Call)
	require.True(t, ok)
	assert.True(t, call.HasDest)
	assert.Equal(t, "helper", call.Target)

	bare, ok := instrs[1].(*ir.Call)
	require.True(t, ok)
	assert.False(t, bare.HasDest)
	assert.Equal(t, "print_int", bare.Target)
}

func TestParseUnknownLabelReturnsCoreError(t *testing.T) {
	src := `
func f() {
entry:
  jmp nowhere
}
`
	reporter := diag.NewReporter("test.ir", src)
	_, err := Parse("test.ir", src, reporter)
	require.Error(t, err)
	var coreErr *diag.CoreError
	require.ErrorAs(t, err, &coreErr)
}

func TestParseSyntaxErrorIsReported(t *testing.T) {
	src := `func f( { entry: ret }`
	reporter := diag.NewReporter("test.ir", src)
	_, err := Parse("test.ir", src, reporter)
	require.Error(t, err)
	assert.True(t, reporter.HasErrors())
}
