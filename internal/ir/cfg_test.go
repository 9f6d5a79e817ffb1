package ir

import (
	"reflect"
	"testing"
)

// diamondFunc builds the 6-block diamond CFG used throughout the spec's
// worked examples (§8 scenario 1): entry -> A -> {B, C} -> D -> Exit.
func diamondFunc() *Function {
	fn := NewFunction("diamond", nil)
	fn.AddBlock("entry")
	fn.AddBlock("A")
	fn.AddBlock("B")
	fn.AddBlock("C")
	fn.AddBlock("D")
	fn.AddBlock("Exit")

	fn.Blocks[0].Instructions = []Instruction{&Jmp{Label: "A"}}
	fn.Blocks[1].Instructions = []Instruction{&Br{Cond: "cond", Then: "B", Else: "C"}}
	fn.Blocks[2].Instructions = []Instruction{&Jmp{Label: "D"}}
	fn.Blocks[3].Instructions = []Instruction{&Jmp{Label: "D"}}
	fn.Blocks[4].Instructions = []Instruction{&Jmp{Label: "Exit"}}
	fn.Blocks[5].Instructions = []Instruction{&Ret{}}
	return fn
}

func TestWireCFGDiamond(t *testing.T) {
	fn := diamondFunc()
	if err := WireCFG(fn); err != nil {
		t.Fatalf("WireCFG: %v", err)
	}

	wantPreds := [][]int{{}, {0}, {1}, {1}, {2, 3}, {4}}
	for i, want := range wantPreds {
		if got := fn.Blocks[i].Preds; !reflect.DeepEqual(got, want) {
			t.Errorf("block %d preds = %v, want %v", i, got, want)
		}
	}

	// invariant 1 (§8): b in succs(a) iff a in preds(b).
	for a, block := range fn.Blocks {
		for _, b := range block.Succs {
			found := false
			for _, p := range fn.Blocks[b].Preds {
				if p == a {
					found = true
				}
			}
			if !found {
				t.Errorf("edge %d->%d not mirrored in preds(%d)", a, b, b)
			}
		}
	}
}

func TestWireCFGFallthrough(t *testing.T) {
	fn := NewFunction("f", nil)
	fn.AddBlock("entry")
	fn.AddBlock("next")
	fn.Blocks[0].Instructions = []Instruction{&Const{Dest: "x", Value: IntLit(1)}}
	fn.Blocks[1].Instructions = []Instruction{&Ret{Args: []string{"x"}}}

	if err := WireCFG(fn); err != nil {
		t.Fatalf("WireCFG: %v", err)
	}
	if !reflect.DeepEqual(fn.Blocks[1].Preds, []int{0}) {
		t.Fatalf("expected fallthrough edge 0->1, got preds=%v", fn.Blocks[1].Preds)
	}
}

func TestWireCFGUnknownLabel(t *testing.T) {
	fn := NewFunction("f", nil)
	fn.AddBlock("entry")
	fn.Blocks[0].Instructions = []Instruction{&Jmp{Label: "nowhere"}}

	err := WireCFG(fn)
	if err == nil {
		t.Fatal("expected an unknown-label error")
	}
}

func TestBlockIndexPartial(t *testing.T) {
	fn := NewFunction("f", nil)
	fn.AddBlock("entry")

	if idx, ok := fn.BlockIndex("entry"); !ok || idx != 0 {
		t.Fatalf("BlockIndex(entry) = (%d, %v), want (0, true)", idx, ok)
	}
	if _, ok := fn.BlockIndex("missing"); ok {
		t.Fatal("BlockIndex(missing) should report not-found")
	}
}
