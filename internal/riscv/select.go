package riscv

import (
	"fmt"

	"rvcc/internal/diag"
	"rvcc/internal/ir"
)

// argRegs names the eight integer argument registers, in order.
var argRegs = [8]string{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7"}

// Select lowers fn's three-address IR to machine instructions over
// virtual registers, per §4.F. It returns an error when fn still
// contains a Phi, a Binary with an opcode it has no mnemonic for, or an
// instruction type it does not lower. Destructing SSA merge points into
// copies is out of scope (§9 Non-goals list SSA destruction explicitly),
// so a surviving Phi at this point means the caller skipped an
// out-of-SSA pass this backend does not provide.
func Select(fn *ir.Function) (*MachineFunction, error) {
	regs := newVRegMap()
	mf := &MachineFunction{Name: fn.Name}

	// Bind each parameter's virtual register to its incoming argument
	// register, symmetric with Call's outgoing-argument lowering.
	var prologue []MachineInstr
	for i, p := range fn.Params {
		if i < len(argRegs) {
			prologue = append(prologue, &Mv{Rd: regs.get(p), Rs1: Physical(argRegs[i])})
		} else {
			// beyond the eighth parameter: loaded from the caller's
			// outgoing-argument stack slots, reusing Ld's shape loosely
			// (these frame-relative offsets are a caller-side concern
			// the emitter's own stack_frame accounting does not cover).
			prologue = append(prologue, &Ld{Rd: regs.get(p), Offset: int64(i-8) * 8})
		}
	}

	for bi, block := range fn.Blocks {
		mb := &MachineBlock{Label: block.Label}
		if bi == 0 {
			mb.Instructions = append(mb.Instructions, prologue...)
		}
		for _, instr := range block.Instructions {
			selected, err := selectInstr(fn.Name, instr, regs)
			if err != nil {
				return nil, err
			}
			mb.Instructions = append(mb.Instructions, selected...)
		}
		mf.Blocks = append(mf.Blocks, mb)
	}

	mf.NumVRegs = regs.next
	return mf, nil
}

func selectInstr(fnName string, instr ir.Instruction, regs *vregMap) ([]MachineInstr, error) {
	switch t := instr.(type) {
	case *ir.Const:
		rd := regs.get(t.Dest)
		if t.Value.Kind == ir.LiteralBool {
			imm := int64(0)
			if t.Value.Bool {
				imm = 1
			}
			return []MachineInstr{&Li{Rd: rd, Imm: imm}}, nil
		}
		return []MachineInstr{&Li{Rd: rd, Imm: t.Value.Int}}, nil

	case *ir.Assign:
		return []MachineInstr{&Mv{Rd: regs.get(t.Lhs), Rs1: regs.get(t.Rhs)}}, nil

	case *ir.Binary:
		mnemonic, ok := binMnemonic[t.Op]
		if !ok {
			return nil, diag.NewCoreError(diag.ErrMalformedCFG, fnName, fmt.Sprintf("unknown binary op %q", t.Op))
		}
		return []MachineInstr{&BinOp{
			Mnemonic: mnemonic,
			Rd:       regs.get(t.Dest),
			Rs1:      regs.get(t.Lhs),
			Rs2:      regs.get(t.Rhs),
		}}, nil

	case *ir.Not:
		return []MachineInstr{&NotOp{Rd: regs.get(t.Dest), Rs1: regs.get(t.Arg)}}, nil

	case *ir.Call:
		return selectCall(t.Target, t.Args, t.Dest, t.HasDest, regs), nil

	case *ir.Print:
		return selectCall("print", t.Values, "", false, regs), nil

	case *ir.Br:
		return []MachineInstr{
			&Beqz{Rs: regs.get(t.Cond), Target: t.Else},
			&Jmp{Target: t.Then},
		}, nil

	case *ir.Jmp:
		return []MachineInstr{&Jmp{Target: t.Label}}, nil

	case *ir.Ret:
		ret := &Ret{}
		if len(t.Args) > 0 {
			arg := regs.get(t.Args[0])
			ret.Arg = &arg
		}
		return []MachineInstr{ret}, nil

	case *ir.Phi:
		return nil, diag.NewCoreError(diag.ErrMalformedCFG, fnName,
			fmt.Sprintf("phi for %q reached instruction selection; SSA destruction is out of scope", t.Dest))

	default:
		return nil, diag.NewCoreError(diag.ErrMalformedCFG, fnName, fmt.Sprintf("unhandled instruction %T", instr))
	}
}

func selectCall(target string, args []string, dest string, hasDest bool, regs *vregMap) []MachineInstr {
	var out []MachineInstr
	for i, a := range args {
		src := regs.get(a)
		if i < 8 {
			out = append(out, &Mv{Rd: Physical(argRegs[i]), Rs1: src})
		} else {
			out = append(out, &Sw{Rs: src, Offset: int64(i-8) * 8})
		}
	}
	out = append(out, &Jal{Target: target})
	if hasDest {
		out = append(out, &Mv{Rd: regs.get(dest), Rs1: Physical("a0")})
	}
	return out
}

var binMnemonic = map[ir.BinaryOp]string{
	ir.OpAdd: "add",
	ir.OpSub: "sub",
	ir.OpMul: "mul",
	ir.OpDiv: "div",
	ir.OpEq:  "seq",
	ir.OpLt:  "slt",
	ir.OpGt:  "sgt",
	ir.OpLe:  "sle",
	ir.OpGe:  "sge",
	ir.OpAnd: "and",
	ir.OpOr:  "or",
}
