package riscv

import "fmt"

// MachineInstr is one selected RV64I (pseudo-)instruction operating on
// VRegs. Defs/Uses mirror ir.Instruction's shape so the allocator can
// build live intervals the same way liveness builds use/def sets.
type MachineInstr interface {
	Defs() []VReg
	Uses() []VReg
	Render(toPhys func(VReg) string) string
}

// Li loads an immediate.
type Li struct {
	Rd  VReg
	Imm int64
}

func (i *Li) Defs() []VReg { return []VReg{i.Rd} }
func (i *Li) Uses() []VReg { return nil }
func (i *Li) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("li %s, %d", toPhys(i.Rd), i.Imm)
}

// Mv is a register copy.
type Mv struct {
	Rd  VReg
	Rs1 VReg
}

func (i *Mv) Defs() []VReg { return []VReg{i.Rd} }
func (i *Mv) Uses() []VReg { return []VReg{i.Rs1} }
func (i *Mv) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("mv %s, %s", toPhys(i.Rd), toPhys(i.Rs1))
}

// BinOp is a three-register ALU operation: Add/Sub/Mul/Div and their
// comparison/logical siblings (Slt/Sgt/Seq/.../And/Or) all share this
// one shape, the way a single Binary IR instruction already does.
type BinOp struct {
	Mnemonic string
	Rd       VReg
	Rs1      VReg
	Rs2      VReg
}

func (i *BinOp) Defs() []VReg { return []VReg{i.Rd} }
func (i *BinOp) Uses() []VReg { return []VReg{i.Rs1, i.Rs2} }
func (i *BinOp) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("%s %s, %s, %s", i.Mnemonic, toPhys(i.Rd), toPhys(i.Rs1), toPhys(i.Rs2))
}

// NotOp flips a boolean represented as 0|1 via xori rd, rs1, 1.
type NotOp struct {
	Rd  VReg
	Rs1 VReg
}

func (i *NotOp) Defs() []VReg { return []VReg{i.Rd} }
func (i *NotOp) Uses() []VReg { return []VReg{i.Rs1} }
func (i *NotOp) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("xori %s, %s, 1", toPhys(i.Rd), toPhys(i.Rs1))
}

// Sw stores a stack-spilled outgoing call argument (i >= 8) at
// (i-8)*8(sp), per §4.F's Call lowering.
type Sw struct {
	Rs     VReg
	Offset int64
}

func (i *Sw) Defs() []VReg { return nil }
func (i *Sw) Uses() []VReg { return []VReg{i.Rs} }
func (i *Sw) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("sw %s, %d(sp)", toPhys(i.Rs), i.Offset)
}

// Sd/Ld are s0-relative doubleword store/load instructions. Select uses
// Ld to bind parameters beyond the eighth; Sd is not produced by the
// selector. The emitter's spill reloads and stores (§4.G's "known gap",
// completed in emit.go against s0-relative per-VReg stack slots) are
// written as text directly and do not go through these types.
type Sd struct {
	Rs     VReg
	Offset int64
}

func (i *Sd) Defs() []VReg { return nil }
func (i *Sd) Uses() []VReg { return []VReg{i.Rs} }
func (i *Sd) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("sd %s, %d(s0)", toPhys(i.Rs), i.Offset)
}

type Ld struct {
	Rd     VReg
	Offset int64
}

func (i *Ld) Defs() []VReg { return []VReg{i.Rd} }
func (i *Ld) Uses() []VReg { return nil }
func (i *Ld) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("ld %s, %d(s0)", toPhys(i.Rd), i.Offset)
}

// Jal is an unconditional call-or-jump-and-link.
type Jal struct {
	Target string
}

func (i *Jal) Defs() []VReg { return nil }
func (i *Jal) Uses() []VReg { return nil }
func (i *Jal) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("jal ra, %s", i.Target)
}

// Beqz branches to Target when Rs is zero.
type Beqz struct {
	Rs     VReg
	Target string
}

func (i *Beqz) Defs() []VReg { return nil }
func (i *Beqz) Uses() []VReg { return []VReg{i.Rs} }
func (i *Beqz) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("beqz %s, %s", toPhys(i.Rs), i.Target)
}

// Jmp is an unconditional jump to a block label.
type Jmp struct {
	Target string
}

func (i *Jmp) Defs() []VReg { return nil }
func (i *Jmp) Uses() []VReg { return nil }
func (i *Jmp) Render(toPhys func(VReg) string) string {
	return fmt.Sprintf("j %s", i.Target)
}

// Ret is the unconditional function return. Arg notes the VReg holding
// the first return value, when the IR Ret had one, purely so the
// allocator keeps it live up to this point — it is never printed. This
// is the resolved "Ret operand bug" (§9): the original's selector
// guarded the index with an inverted is_empty() check and indexed
// args[0] exactly when args was empty; here Arg is simply populated
// when len(args) > 0 and left nil otherwise.
type Ret struct {
	Arg *VReg
}

func (i *Ret) Defs() []VReg { return nil }
func (i *Ret) Uses() []VReg {
	if i.Arg == nil {
		return nil
	}
	return []VReg{*i.Arg}
}
func (i *Ret) Render(toPhys func(VReg) string) string {
	return "ret"
}

// MachineBlock is a selected basic block: a label and its instructions.
type MachineBlock struct {
	Label        string
	Instructions []MachineInstr
}

// MachineFunction is the output of instruction selection: a name, the
// number of distinct virtual registers minted, and the selected blocks
// in the same order as the source ir.Function.
type MachineFunction struct {
	Name      string
	NumVRegs  int
	Blocks    []*MachineBlock
}
