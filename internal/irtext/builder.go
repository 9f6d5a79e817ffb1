package irtext

import (
	"strconv"

	"rvcc/internal/ir"
)

// Build walks a parsed Program and emits an ir.Module, one ir.Function
// and ir.BasicBlock per parsed Function/Block, wiring each function's
// CFG before returning. This mirrors the teacher's builder: a single
// forward walk that appends IR instructions as it goes, with no
// intervening type-checking or name resolution pass.
func Build(prog *Program) (*ir.Module, error) {
	module := &ir.Module{}
	for _, pf := range prog.Functions {
		fn := ir.NewFunction(pf.Name, pf.Params)
		for _, pb := range pf.Blocks {
			idx := fn.AddBlock(pb.Label)
			instrs := make([]ir.Instruction, 0, len(pb.Instructions))
			for _, pi := range pb.Instructions {
				instrs = append(instrs, buildInstruction(pi))
			}
			fn.Blocks[idx].Instructions = instrs
		}
		if err := ir.WireCFG(fn); err != nil {
			return nil, err
		}
		module.Functions = append(module.Functions, fn)
	}
	return module, nil
}

func buildInstruction(pi *Instruction) ir.Instruction {
	switch {
	case pi.Def != nil:
		return buildDef(pi.Def)
	case pi.Call != nil:
		return &ir.Call{Target: pi.Call.Target, Args: pi.Call.Args}
	case pi.Br != nil:
		return &ir.Br{Cond: pi.Br.Cond, Then: pi.Br.Then, Else: pi.Br.Else}
	case pi.Jmp != nil:
		return &ir.Jmp{Label: pi.Jmp.Label}
	case pi.Ret != nil:
		return &ir.Ret{Args: pi.Ret.Args}
	case pi.Print != nil:
		return &ir.Print{Values: pi.Print.Values}
	default:
		// the grammar guarantees exactly one alternative matched.
		return &ir.Ret{}
	}
}

func buildDef(def *DefInstr) ir.Instruction {
	rhs := def.RHS
	switch {
	case rhs.Const != nil:
		return &ir.Const{Dest: def.Dest, Value: buildLiteral(rhs.Const.Value)}
	case rhs.Binary != nil:
		return &ir.Binary{
			Op:   ir.BinaryOp(rhs.Binary.Op),
			Dest: def.Dest,
			Lhs:  rhs.Binary.Lhs,
			Rhs:  rhs.Binary.Rhs,
		}
	case rhs.Not != nil:
		return &ir.Not{Dest: def.Dest, Arg: rhs.Not.Arg}
	case rhs.Call != nil:
		return &ir.Call{Target: rhs.Call.Target, Args: rhs.Call.Args, Dest: def.Dest, HasDest: true}
	default:
		return &ir.Assign{Lhs: def.Dest, Rhs: rhs.Name}
	}
}

func buildLiteral(text string) ir.Literal {
	switch text {
	case "true":
		return ir.BoolLit(true)
	case "false":
		return ir.BoolLit(false)
	default:
		v, _ := strconv.ParseInt(text, 10, 64)
		return ir.IntLit(v)
	}
}
