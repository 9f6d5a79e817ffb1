package ssa

import (
	"reflect"
	"testing"

	"rvcc/internal/ir"
)

// diamondFunc builds the 6-block diamond from the spec's worked
// scenario 1: preds = [[], [0], [1], [1], [2,3], [4]].
func diamondFunc() *ir.Function {
	fn := ir.NewFunction("diamond", nil)
	fn.AddBlock("entry")
	fn.AddBlock("A")
	fn.AddBlock("B")
	fn.AddBlock("C")
	fn.AddBlock("D")
	fn.AddBlock("Exit")

	fn.Blocks[0].Instructions = []ir.Instruction{&ir.Jmp{Label: "A"}}
	fn.Blocks[1].Instructions = []ir.Instruction{&ir.Br{Cond: "cond", Then: "B", Else: "C"}}
	fn.Blocks[2].Instructions = []ir.Instruction{&ir.Jmp{Label: "D"}}
	fn.Blocks[3].Instructions = []ir.Instruction{&ir.Jmp{Label: "D"}}
	fn.Blocks[4].Instructions = []ir.Instruction{&ir.Jmp{Label: "Exit"}}
	fn.Blocks[5].Instructions = []ir.Instruction{&ir.Ret{}}
	return fn
}

func TestBuildDiamondIdomDfDomTree(t *testing.T) {
	fn := diamondFunc()
	if err := ir.WireCFG(fn); err != nil {
		t.Fatalf("WireCFG: %v", err)
	}

	res, err := Build(fn)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantIdom := []int{0, 0, 1, 1, 1, 4}
	if !reflect.DeepEqual(res.Idom, wantIdom) {
		t.Errorf("idom = %v, want %v", res.Idom, wantIdom)
	}

	if !reflect.DeepEqual(res.DomFrontier[2], []int{4}) {
		t.Errorf("DF(2) = %v, want [4]", res.DomFrontier[2])
	}
	if !reflect.DeepEqual(res.DomFrontier[3], []int{4}) {
		t.Errorf("DF(3) = %v, want [4]", res.DomFrontier[3])
	}

	if !reflect.DeepEqual(res.DomTree[1], []int{2, 3, 4}) {
		t.Errorf("domtree children of 1 = %v, want [2 3 4]", res.DomTree[1])
	}
	if !reflect.DeepEqual(res.DomTree[4], []int{5}) {
		t.Errorf("domtree children of 4 = %v, want [5]", res.DomTree[4])
	}
}

func TestBuildTwoDefsMerge(t *testing.T) {
	fn := diamondFunc()
	// block 2 (B): x = 5 ; block 3 (C): x = 10, both feeding block 4 (D).
	fn.Blocks[2].Instructions = []ir.Instruction{
		&ir.Assign{Lhs: "x", Rhs: "5"},
		&ir.Jmp{Label: "D"},
	}
	fn.Blocks[3].Instructions = []ir.Instruction{
		&ir.Assign{Lhs: "x", Rhs: "10"},
		&ir.Jmp{Label: "D"},
	}
	fn.Blocks[4].Instructions = []ir.Instruction{
		&ir.Print{Values: []string{"x"}},
		&ir.Jmp{Label: "Exit"},
	}

	if err := ir.WireCFG(fn); err != nil {
		t.Fatalf("WireCFG: %v", err)
	}
	if _, err := Build(fn); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// block 4 must begin with a phi merging the two incoming x defs.
	phi, ok := fn.Blocks[4].Instructions[0].(*ir.Phi)
	if !ok {
		t.Fatalf("block 4 does not start with a phi: %v", fn.Blocks[4].Instructions[0])
	}
	if len(phi.Sources) != 2 {
		t.Fatalf("phi has %d sources, want 2", len(phi.Sources))
	}
	for i, src := range phi.Sources {
		if src == "" {
			t.Errorf("phi source %d left unfilled", i)
		}
	}
	if phi.Sources[0] == phi.Sources[1] {
		t.Errorf("phi sources should be distinct SSA names, both = %q", phi.Sources[0])
	}

	// the print after the phi should consume the phi's own fresh name,
	// not the pre-SSA "x".
	print, ok := fn.Blocks[4].Instructions[1].(*ir.Print)
	if !ok {
		t.Fatalf("block 4 second instruction is not Print: %v", fn.Blocks[4].Instructions[1])
	}
	if print.Values[0] != phi.Dest {
		t.Errorf("print uses %q, want phi dest %q", print.Values[0], phi.Dest)
	}
}

func TestBuildEmptyFunctionIsNoop(t *testing.T) {
	fn := ir.NewFunction("empty", nil)
	res, err := Build(fn)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Idom) != 0 {
		t.Errorf("expected no idom entries for an empty function, got %v", res.Idom)
	}
}

func TestBuildReportsUnreachableBlock(t *testing.T) {
	fn := ir.NewFunction("f", nil)
	fn.AddBlock("entry")
	fn.AddBlock("dead")
	fn.Blocks[0].Instructions = []ir.Instruction{&ir.Ret{}}
	fn.Blocks[1].Instructions = []ir.Instruction{&ir.Ret{}}
	// no call to WireCFG's fallthrough applies only when a terminator is
	// absent; here both blocks terminate, so block 1 stays unreachable.

	if _, err := Build(fn); err == nil {
		t.Fatal("expected an error for an unreachable block")
	}
}
