package ssa

import "rvcc/internal/ir"

// phiOrigVar maps each inserted Phi back to the pre-rename variable name
// it merges. renamePass needs this because Phi.Dest is itself rewritten
// to a fresh SSA name the moment the phi's own block is visited, which
// can happen before a loop-back predecessor fills that phi's sources.
type phiOrigVar map[*ir.Phi]string

// phiInsert runs Cytron's placement algorithm: for each original
// variable, compute its definition sites, then iteratively add an empty
// Phi at every block in the dominance frontier of a def site, adding
// that block as a new def site in turn, until no block gains another.
// Phi.Sources is left filled with len(Preds) empty-string placeholders;
// renamePass fills them with the reaching SSA name per predecessor.
func phiInsert(fn *ir.Function, df [][]int) phiOrigVar {
	orig := phiOrigVar{}
	defsites := make(map[string]map[int]bool)
	for b, block := range fn.Blocks {
		for _, instr := range block.Instructions {
			for _, d := range instr.Defs() {
				if defsites[d] == nil {
					defsites[d] = make(map[int]bool)
				}
				defsites[d][b] = true
			}
		}
	}

	hasPhi := make(map[string]map[int]bool)
	for v := range defsites {
		hasPhi[v] = make(map[int]bool)
	}

	for v, sites := range defsites {
		worklist := make([]int, 0, len(sites))
		for b := range sites {
			worklist = append(worklist, b)
		}
		onWorklist := map[int]bool{}
		for _, b := range worklist {
			onWorklist[b] = true
		}

		for len(worklist) > 0 {
			b := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			onWorklist[b] = false

			for _, d := range df[b] {
				if hasPhi[v][d] {
					continue
				}
				hasPhi[v][d] = true

				block := fn.Blocks[d]
				phi := &ir.Phi{Dest: v, Sources: make([]string, len(block.Preds))}
				orig[phi] = v
				block.Instructions = append([]ir.Instruction{phi}, block.Instructions...)

				if !sites[d] {
					sites[d] = true
					if !onWorklist[d] {
						worklist = append(worklist, d)
						onWorklist[d] = true
					}
				}
			}
		}
	}

	return orig
}
