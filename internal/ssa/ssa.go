// Package ssa implements SSA construction (§4.B): immediate dominators
// via the Cooper-Harvey-Kennedy iterative algorithm, dominance frontiers,
// the dominator tree, Cytron phi-insertion, and the stack-discipline
// rename pass. It is grounded line-for-line on the original SSAFormation
// walk (idom -> df -> dom tree -> phi_insert -> rename_pass), adapted to
// return a *Result plus an error instead of mutating a struct in place
// and panicking on a malformed CFG.
package ssa

import (
	"fmt"
	"sort"

	"rvcc/internal/diag"
	"rvcc/internal/ir"
)

// Result holds the dominance artifacts computed for one function.
type Result struct {
	// Idom[b] is the immediate dominator of block b. Idom[entry] == entry.
	Idom []int

	// DomFrontier[b] is the dominance frontier of block b.
	DomFrontier [][]int

	// DomTree[b] lists the blocks immediately dominated by b.
	DomTree [][]int
}

// Build runs the full SSA construction pipeline over fn, rewriting its
// instructions in place to SSA form and returning the dominance
// artifacts used to do so. fn must already have had ir.WireCFG run over
// it. A function with no blocks yields an empty Result and no error.
// Build returns a *diag.CoreError (wrapped as error) if a block is
// unreachable from the entry, since neither idom nor the dominance
// frontier is well defined then.
func Build(fn *ir.Function) (*Result, error) {
	if len(fn.Blocks) == 0 {
		return &Result{}, nil
	}

	idom, err := computeIdom(fn)
	if err != nil {
		return nil, err
	}
	df := computeDominanceFrontier(fn, idom)
	domTree := buildDomTree(idom)

	res := &Result{Idom: idom, DomFrontier: df, DomTree: domTree}

	orig := phiInsert(fn, df)
	renamePass(fn, domTree, orig)

	return res, nil
}

// computeIdom runs the Cooper-Harvey-Kennedy iterative dominator
// algorithm over plain forward block-index order (1..n), repeatedly
// intersecting the idom candidates of already-processed predecessors,
// until no idom changes. This is forward index order, not reverse
// postorder: it matches what the implementation this was distilled
// from does (a straight `for b in 1..n` scan, comparing raw block
// indices in intersect), which converges correctly for the
// reducible, diamond-shaped CFGs this front end produces. It is not
// guaranteed to converge in one pass — or at all — on an arbitrary
// irreducible graph; spec.md's own open question flags reverse
// postorder as the general fix, deliberately not applied here.
func computeIdom(fn *ir.Function) ([]int, error) {
	n := len(fn.Blocks)
	idom := make([]int, n)
	for i := range idom {
		idom[i] = -1
	}
	idom[0] = 0

	changed := true
	for changed {
		changed = false
		for b := 1; b < n; b++ {
			preds := fn.Blocks[b].Preds
			if len(preds) == 0 {
				continue
			}

			newIdom := -1
			for _, p := range preds {
				if idom[p] != -1 {
					newIdom = p
					break
				}
			}
			if newIdom == -1 {
				continue
			}

			for _, p := range preds {
				if p == newIdom || idom[p] == -1 {
					continue
				}
				newIdom = intersect(newIdom, p, idom)
			}

			if idom[b] != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}

	for b, d := range idom {
		if d == -1 {
			return nil, diag.NewCoreError(diag.ErrMalformedCFG, fn.Name,
				fmt.Sprintf("block %d is unreachable from the entry", b))
		}
	}
	return idom, nil
}

func intersect(a, b int, idom []int) int {
	for a != b {
		for a > b {
			a = idom[a]
		}
		for b > a {
			b = idom[b]
		}
	}
	return a
}

// computeDominanceFrontier computes DF(b) for every block: the set of
// blocks where b's dominance stops, found by walking each join point's
// predecessors up to (but not including) idom[join].
func computeDominanceFrontier(fn *ir.Function, idom []int) [][]int {
	df := make([][]int, len(fn.Blocks))
	seen := make([]map[int]bool, len(fn.Blocks))
	for i := range seen {
		seen[i] = make(map[int]bool)
	}

	for b, block := range fn.Blocks {
		if len(block.Preds) < 2 {
			continue
		}
		for _, p := range block.Preds {
			runner := p
			for runner != idom[b] {
				if !seen[runner][b] {
					seen[runner][b] = true
					df[runner] = append(df[runner], b)
				}
				runner = idom[runner]
			}
		}
	}

	for i := range df {
		sort.Ints(df[i])
	}
	return df
}

// buildDomTree inverts the idom array into a children adjacency list.
func buildDomTree(idom []int) [][]int {
	tree := make([][]int, len(idom))
	for b, d := range idom {
		if b == 0 {
			continue
		}
		tree[d] = append(tree[d], b)
	}
	for i := range tree {
		sort.Ints(tree[i])
	}
	return tree
}
