package ssa

import (
	"fmt"

	"rvcc/internal/ir"
)

// renameState is the per-variable counter/stack pair the rename pass
// threads through the dominator-tree walk: fresh mints the next SSA
// name and pushes it, current reads the top of the stack, pop discards
// it again once the defining block's subtree has been fully visited.
type renameState struct {
	counter map[string]int
	stack   map[string][]string
}

func newRenameState() *renameState {
	return &renameState{counter: map[string]int{}, stack: map[string][]string{}}
}

func (s *renameState) fresh(v string) string {
	n := s.counter[v]
	s.counter[v] = n + 1
	name := fmt.Sprintf("%s$%d", v, n)
	s.stack[v] = append(s.stack[v], name)
	return name
}

// current returns the reaching SSA name for v. A use with no dominating
// def on the stack (a function parameter, or a name live before SSA
// construction runs) resolves to itself.
func (s *renameState) current(v string) string {
	stack := s.stack[v]
	if len(stack) == 0 {
		return v
	}
	return stack[len(stack)-1]
}

func (s *renameState) pop(v string) {
	stack := s.stack[v]
	s.stack[v] = stack[:len(stack)-1]
}

// renamePass walks the dominator tree from the entry block, renaming
// every def to a fresh SSA name, rewriting every use to the name
// currently on top of its variable's stack, and filling in phi sources
// for each CFG successor as the defining block is left.
func renamePass(fn *ir.Function, domTree [][]int, orig phiOrigVar) {
	state := newRenameState()
	for _, p := range fn.Params {
		state.stack[p] = append(state.stack[p], p)
	}
	if len(fn.Blocks) > 0 {
		renameBlock(fn, 0, domTree, orig, state)
	}
}

func renameBlock(fn *ir.Function, b int, domTree [][]int, orig phiOrigVar, state *renameState) {
	block := fn.Blocks[b]
	var defined []string

	for _, instr := range block.Instructions {
		if phi, ok := instr.(*ir.Phi); ok {
			v := orig[phi]
			phi.Dest = state.fresh(v)
			defined = append(defined, v)
			continue
		}

		renameUses(instr, state)
		if defs := instr.Defs(); len(defs) > 0 {
			v := defs[0]
			newName := state.fresh(v)
			setDef(instr, newName)
			defined = append(defined, v)
		}
	}

	for _, s := range block.Succs {
		j := predIndex(fn, s, b)
		if j < 0 {
			continue
		}
		for _, instr := range fn.Blocks[s].Instructions {
			phi, ok := instr.(*ir.Phi)
			if !ok {
				continue
			}
			phi.Sources[j] = state.current(orig[phi])
		}
	}

	for _, c := range domTree[b] {
		renameBlock(fn, c, domTree, orig, state)
	}

	for _, v := range defined {
		state.pop(v)
	}
}

func predIndex(fn *ir.Function, block, pred int) int {
	for i, p := range fn.Blocks[block].Preds {
		if p == pred {
			return i
		}
	}
	return -1
}

// renameUses rewrites every operand an instruction reads to the name
// currently reaching it. Jmp has no uses and Phi's uses are filled by
// its predecessors rather than read here, so both are no-ops.
func renameUses(instr ir.Instruction, state *renameState) {
	switch t := instr.(type) {
	case *ir.Binary:
		t.Lhs = state.current(t.Lhs)
		t.Rhs = state.current(t.Rhs)
	case *ir.Not:
		t.Arg = state.current(t.Arg)
	case *ir.Br:
		t.Cond = state.current(t.Cond)
	case *ir.Ret:
		for i, a := range t.Args {
			t.Args[i] = state.current(a)
		}
	case *ir.Call:
		for i, a := range t.Args {
			t.Args[i] = state.current(a)
		}
	case *ir.Assign:
		t.Rhs = state.current(t.Rhs)
	case *ir.Print:
		for i, v := range t.Values {
			t.Values[i] = state.current(v)
		}
	}
}

// setDef rewrites the single name an instruction defines. Every
// defining instruction but Phi (handled separately in renameBlock) has
// exactly one Dest/Lhs field.
func setDef(instr ir.Instruction, newName string) {
	switch t := instr.(type) {
	case *ir.Binary:
		t.Dest = newName
	case *ir.Not:
		t.Dest = newName
	case *ir.Const:
		t.Dest = newName
	case *ir.Assign:
		t.Lhs = newName
	case *ir.Call:
		if t.HasDest {
			t.Dest = newName
		}
	}
}
