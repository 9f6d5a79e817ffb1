package ir

import "rvcc/internal/diag"

// WireCFG implements the §4.A CFG-wiring algorithm over a function whose
// blocks already carry their instructions (including, where present,
// the terminator as the last instruction of each block):
//
//   - Br(c, then, else): add edges b→then, b→else
//   - Jmp(l):            add edge b→l
//   - Ret:                no outgoing edge
//   - no terminator:      fall through to b+1, if it exists
//
// It is the only place the core can fail with ErrUnknownLabel — every
// other consumer trusts that blocks/labels already resolved here.
func WireCFG(fn *Function) error {
	for b, block := range fn.Blocks {
		if len(block.Instructions) == 0 {
			if b+1 < len(fn.Blocks) {
				fn.AddEdge(b, b+1)
			}
			continue
		}

		last := block.Instructions[len(block.Instructions)-1]
		switch term := last.(type) {
		case *Br:
			thenIx, ok := fn.BlockIndex(term.Then)
			if !ok {
				return unknownLabel(fn.Name, term.Then)
			}
			elseIx, ok := fn.BlockIndex(term.Else)
			if !ok {
				return unknownLabel(fn.Name, term.Else)
			}
			fn.AddEdge(b, thenIx)
			fn.AddEdge(b, elseIx)

		case *Jmp:
			target, ok := fn.BlockIndex(term.Label)
			if !ok {
				return unknownLabel(fn.Name, term.Label)
			}
			fn.AddEdge(b, target)

		case *Ret:
			// no outgoing edge

		default:
			if b+1 < len(fn.Blocks) {
				fn.AddEdge(b, b+1)
			}
		}
	}
	return nil
}

func unknownLabel(fnName, label string) error {
	return diag.NewCoreError(diag.ErrUnknownLabel, fnName, "reference to undefined block label \""+label+"\"")
}
