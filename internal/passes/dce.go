package passes

import (
	"rvcc/internal/ir"
	"rvcc/internal/liveness"
)

// DeadCodeElimination removes instructions whose def never reaches a
// use, as determined by a fresh liveness computation (§4.E). Only
// side-effect-free instruction kinds — Binary (arithmetic, comparison,
// And/Or), Not, Const, Assign, Phi — are ever dropped; Call, Br, Jmp,
// Ret, and Print always survive
// and always contribute their uses to the live set.
type DeadCodeElimination struct{}

func (DeadCodeElimination) Name() string { return "dead-code-elimination" }

func (DeadCodeElimination) Run(fn *ir.Function) bool {
	res := liveness.Compute(fn)
	changed := false

	for b, block := range fn.Blocks {
		live := map[string]bool{}
		for v := range res.LiveOut[b] {
			live[v] = true
		}

		kept := make([]ir.Instruction, 0, len(block.Instructions))
		for i := len(block.Instructions) - 1; i >= 0; i-- {
			instr := block.Instructions[i]

			if isSideEffectFree(instr) {
				dead := true
				for _, d := range instr.Defs() {
					if live[d] {
						dead = false
					}
				}
				if dead {
					changed = true
					continue
				}
			}

			for _, d := range instr.Defs() {
				delete(live, d)
			}
			for _, u := range instr.Uses() {
				live[u] = true
			}
			kept = append(kept, instr)
		}

		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
		block.Instructions = kept
	}

	return changed
}

func isSideEffectFree(instr ir.Instruction) bool {
	switch instr.(type) {
	case *ir.Binary, *ir.Not, *ir.Const, *ir.Assign, *ir.Phi:
		return true
	default:
		return false
	}
}
