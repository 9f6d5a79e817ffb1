// Package ir implements the three-address intermediate representation
// (§3) and its control-flow graph: Module, Function, BasicBlock, and the
// Instruction variants the rest of the toolchain (SSA construction,
// liveness, the scalar passes, and the RISC-V backend) operate over.
//
// Ownership follows §3/§5: a Module owns its Functions, and each
// Function exclusively owns its Blocks and Instructions. Passes mutate
// in place through these types; derived analyses (dominance, liveness,
// live intervals) live in their own packages as side structures, never
// stored on the IR itself.
package ir

// Module is an ordered collection of Functions.
type Module struct {
	Functions []*Function
}

// Function is a name, an ordered list of formal parameters, an ordered
// list of BasicBlocks (index 0 is always the entry), and a label→index
// map built incrementally by AddBlock.
type Function struct {
	Name      string
	Params    []string
	Blocks    []*BasicBlock
	labelToIx map[string]int
}

// NewFunction creates an empty function ready to receive blocks via
// AddBlock.
func NewFunction(name string, params []string) *Function {
	return &Function{
		Name:      name,
		Params:    append([]string(nil), params...),
		labelToIx: make(map[string]int),
	}
}

// AddBlock appends a new, edge-less block and returns its index. Labels
// must be unique within a function (§3 invariant); callers that violate
// this will simply overwrite the earlier label's index in the lookup
// map, which is a malformed-input bug upstream of the core.
func (f *Function) AddBlock(label string) int {
	idx := len(f.Blocks)
	f.Blocks = append(f.Blocks, &BasicBlock{Label: label})
	f.labelToIx[label] = idx
	return idx
}

// AddEdge registers b as a successor of a and a as a predecessor of b.
// No duplicate check is performed — §3 forbids duplicate edges by
// invariant, not by runtime guard, matching the original's add_edge.
func (f *Function) AddEdge(a, b int) {
	f.Blocks[a].Succs = append(f.Blocks[a].Succs, b)
	f.Blocks[b].Preds = append(f.Blocks[b].Preds, a)
}

// BlockIndex looks up a block by label. It is a partial function over
// existing labels, per §4.A.
func (f *Function) BlockIndex(label string) (int, bool) {
	idx, ok := f.labelToIx[label]
	return idx, ok
}

// BasicBlock is a label, its ordered instructions, and the two edge sets
// wired by WireCFG.
type BasicBlock struct {
	Label        string
	Instructions []Instruction
	Preds        []int
	Succs        []int
}
