package passes

import "rvcc/internal/ir"

// ConstantPropagate walks each block forward maintaining env: name ->
// Literal, substituting an operand's printed literal form wherever its
// kind matches the position: booleans only into comparison operands and
// Br conditions, integers only into arithmetic operands, Ret args, and
// Assign's right-hand side (§4.E). The environment resets at each
// block, matching the "intra-block" scope of the original pass.
type ConstantPropagate struct{}

func (ConstantPropagate) Name() string { return "constant-propagate" }

func (ConstantPropagate) Run(fn *ir.Function) bool {
	changed := false
	for _, block := range fn.Blocks {
		env := map[string]ir.Literal{}
		for _, instr := range block.Instructions {
			if substitute(instr, env) {
				changed = true
			}
			if c, ok := instr.(*ir.Const); ok {
				env[c.Dest] = c.Value
			}
		}
	}
	return changed
}

func substitute(instr ir.Instruction, env map[string]ir.Literal) bool {
	changed := false
	switch t := instr.(type) {
	case *ir.Binary:
		if isArithmetic(t.Op) {
			if lit, ok := env[t.Lhs]; ok && lit.Kind == ir.LiteralInt {
				t.Lhs = lit.String()
				changed = true
			}
			if lit, ok := env[t.Rhs]; ok && lit.Kind == ir.LiteralInt {
				t.Rhs = lit.String()
				changed = true
			}
		} else if isComparison(t.Op) {
			if lit, ok := env[t.Lhs]; ok && lit.Kind == ir.LiteralBool {
				t.Lhs = lit.String()
				changed = true
			}
			if lit, ok := env[t.Rhs]; ok && lit.Kind == ir.LiteralBool {
				t.Rhs = lit.String()
				changed = true
			}
		}
	case *ir.Br:
		if lit, ok := env[t.Cond]; ok && lit.Kind == ir.LiteralBool {
			t.Cond = lit.String()
			changed = true
		}
	case *ir.Ret:
		for i, a := range t.Args {
			if lit, ok := env[a]; ok && lit.Kind == ir.LiteralInt {
				t.Args[i] = lit.String()
				changed = true
			}
		}
	case *ir.Assign:
		if lit, ok := env[t.Rhs]; ok && lit.Kind == ir.LiteralInt {
			t.Rhs = lit.String()
			changed = true
		}
	}
	return changed
}
