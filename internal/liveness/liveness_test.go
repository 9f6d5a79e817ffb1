package liveness

import (
	"testing"

	"rvcc/internal/ir"
)

// straightLine builds: entry { a = const 1; b = const 2; c = add a, b;
// ret [c] }. b is dead immediately after its use in c.
func straightLine() *ir.Function {
	fn := ir.NewFunction("f", nil)
	fn.AddBlock("entry")
	fn.Blocks[0].Instructions = []ir.Instruction{
		&ir.Const{Dest: "a", Value: ir.IntLit(1)},
		&ir.Const{Dest: "b", Value: ir.IntLit(2)},
		&ir.Binary{Op: ir.OpAdd, Dest: "c", Lhs: "a", Rhs: "b"},
		&ir.Ret{Args: []string{"c"}},
	}
	return fn
}

func TestComputeStraightLine(t *testing.T) {
	fn := straightLine()
	if err := ir.WireCFG(fn); err != nil {
		t.Fatalf("WireCFG: %v", err)
	}
	res := Compute(fn)

	if len(res.LiveIn[0]) != 0 {
		t.Errorf("LiveIn(entry) = %v, want empty (no free variables)", res.LiveIn[0])
	}
	if len(res.LiveOut[0]) != 0 {
		t.Errorf("LiveOut(entry) = %v, want empty (ret is the exit)", res.LiveOut[0])
	}
}

func TestComputeAcrossBranch(t *testing.T) {
	// entry: x = const 1; br cond, then, else
	// then:  print [x]; ret
	// else:  ret
	fn := ir.NewFunction("f", []string{"cond"})
	fn.AddBlock("entry")
	fn.AddBlock("then")
	fn.AddBlock("else")
	fn.Blocks[0].Instructions = []ir.Instruction{
		&ir.Const{Dest: "x", Value: ir.IntLit(1)},
		&ir.Br{Cond: "cond", Then: "then", Else: "else"},
	}
	fn.Blocks[1].Instructions = []ir.Instruction{
		&ir.Print{Values: []string{"x"}},
		&ir.Ret{},
	}
	fn.Blocks[2].Instructions = []ir.Instruction{&ir.Ret{}}

	if err := ir.WireCFG(fn); err != nil {
		t.Fatalf("WireCFG: %v", err)
	}
	res := Compute(fn)

	if !res.LiveOut[0]["x"] {
		t.Errorf("x must be live out of entry (used in then): LiveOut = %v", res.LiveOut[0])
	}
	if res.LiveIn[2]["x"] {
		t.Errorf("x should not be live into the else branch: LiveIn(else) = %v", res.LiveIn[2])
	}
	if !res.LiveIn[0]["cond"] {
		t.Errorf("cond must be live-in to entry (it's a parameter used by br): LiveIn = %v", res.LiveIn[0])
	}
}
