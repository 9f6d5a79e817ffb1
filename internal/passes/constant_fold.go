package passes

import (
	"strconv"

	"rvcc/internal/ir"
)

// ConstantFold folds arithmetic whose operands are both syntactically
// decimal integer literals (§4.E): Add/Sub/Mul/Div become a Const. This
// conflates value names with literals by overloading the operand's
// string form — the same string could in principle name a variable —
// which is the known redesign candidate noted in the expanded spec, not
// something fixed here.
type ConstantFold struct{}

func (ConstantFold) Name() string { return "constant-fold" }

// Run folds every foldable Binary in every block. Division by zero is
// left untouched and does not count as a fold, matching the "error
// condition leaves the instruction unchanged" rule — constant folding
// never introduces a trap.
func (ConstantFold) Run(fn *ir.Function) bool {
	changed := false
	for _, block := range fn.Blocks {
		for i, instr := range block.Instructions {
			bin, ok := instr.(*ir.Binary)
			if !ok {
				continue
			}
			lhs, lok := parseDecimal(bin.Lhs)
			rhs, rok := parseDecimal(bin.Rhs)
			if !lok || !rok {
				continue
			}
			val, ok := evalArith(bin.Op, lhs, rhs)
			if !ok {
				continue
			}
			block.Instructions[i] = &ir.Const{Dest: bin.Dest, Value: ir.IntLit(val)}
			changed = true
		}
	}
	return changed
}

func parseDecimal(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func evalArith(op ir.BinaryOp, lhs, rhs int64) (int64, bool) {
	switch op {
	case ir.OpAdd:
		return lhs + rhs, true
	case ir.OpSub:
		return lhs - rhs, true
	case ir.OpMul:
		return lhs * rhs, true
	case ir.OpDiv:
		if rhs == 0 {
			return 0, false
		}
		return lhs / rhs, true
	default:
		return 0, false
	}
}

func isArithmetic(op ir.BinaryOp) bool {
	switch op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		return true
	default:
		return false
	}
}

func isComparison(op ir.BinaryOp) bool {
	switch op {
	case ir.OpEq, ir.OpLt, ir.OpGt, ir.OpLe, ir.OpGe:
		return true
	default:
		return false
	}
}
