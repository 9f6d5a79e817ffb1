// Package liveness implements the backward fix-point liveness analysis
// of §4.C: per-block use/def sets, then iterating LiveIn/LiveOut over
// the CFG until neither changes. Grounded on
// original_source/passes/src/liveness.rs (compute_block_def_use,
// compute_liveness).
package liveness

import "rvcc/internal/ir"

// Result holds LiveIn/LiveOut for every block of one function, indexed
// the same way as Function.Blocks.
type Result struct {
	LiveIn  []map[string]bool
	LiveOut []map[string]bool
}

// Compute runs the liveness fix-point over fn. fn must already have had
// ir.WireCFG run over it so Preds/Succs are populated.
func Compute(fn *ir.Function) *Result {
	n := len(fn.Blocks)
	use := make([]map[string]bool, n)
	def := make([]map[string]bool, n)
	liveIn := make([]map[string]bool, n)
	liveOut := make([]map[string]bool, n)

	for b, block := range fn.Blocks {
		use[b], def[b] = blockUseDef(block)
		liveIn[b] = map[string]bool{}
		liveOut[b] = map[string]bool{}
	}

	changed := true
	for changed {
		changed = false
		for b := n - 1; b >= 0; b-- {
			block := fn.Blocks[b]

			newOut := map[string]bool{}
			for _, s := range block.Succs {
				for v := range liveIn[s] {
					newOut[v] = true
				}
			}

			newIn := map[string]bool{}
			for v := range use[b] {
				newIn[v] = true
			}
			for v := range newOut {
				if !def[b][v] {
					newIn[v] = true
				}
			}

			if !setEqual(newIn, liveIn[b]) || !setEqual(newOut, liveOut[b]) {
				liveIn[b] = newIn
				liveOut[b] = newOut
				changed = true
			}
		}
	}

	return &Result{LiveIn: liveIn, LiveOut: liveOut}
}

// blockUseDef computes the local use/def sets for a single block: a name
// is "used" if it is read before any earlier instruction in the block
// defines it, and "defined" once any instruction in the block assigns
// it, matching compute_block_def_use's single forward pass.
func blockUseDef(block *ir.BasicBlock) (use, def map[string]bool) {
	use = map[string]bool{}
	def = map[string]bool{}
	for _, instr := range block.Instructions {
		for _, u := range instr.Uses() {
			if !def[u] {
				use[u] = true
			}
		}
		for _, d := range instr.Defs() {
			def[d] = true
		}
	}
	return use, def
}

func setEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}
