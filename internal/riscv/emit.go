package riscv

import (
	"fmt"
	"sort"
	"strings"

	"rvcc/internal/diag"
)

// spillScratch1/2 are withheld from AllRegs (see regalloc.go) and used
// exclusively here to reload/store a spilled VReg around the one
// instruction that touches it. Because they never enter the allocator,
// they can never collide with a live interval — the guarantee that
// makes completing spill materialization sound.
const (
	spillScratch1 = "t6"
	spillScratch2 = "tp"
)

var spillScratches = [2]string{spillScratch1, spillScratch2}

// Emit renders every function's selected, allocated machine code as
// RV64I assembly text in the §6 output shape. allocs maps each
// function's name to its LinearScan result. Any virtual register the
// allocator left with neither a physical register nor a spill slot is
// still emitted as-is (its raw VReg string) but flagged on reporter as
// WarnUnassignedVReg, per §7's non-fatal diagnostic policy.
func Emit(funcs []*MachineFunction, allocs map[string]*AllocResult, reporter *diag.Reporter) string {
	var out strings.Builder
	out.WriteString(".section .text\n")
	out.WriteString(".p2align 2\n")
	for _, mf := range funcs {
		out.WriteString(fmt.Sprintf(".globl %s\n", mf.Name))
	}

	for _, mf := range funcs {
		out.WriteString("\n")
		emitFunction(&out, mf, allocs[mf.Name], reporter)
	}
	return out.String()
}

// spillSlots assigns a stack-slot offset (0, 8, 16, ...) to every
// spilled virtual register id, in id order for determinism, and
// returns the count alongside the map.
func spillSlots(alloc *AllocResult) (map[int]int64, int) {
	ids := make([]int, 0, len(alloc.Spilled))
	for id, spilled := range alloc.Spilled {
		if spilled {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	slots := map[int]int64{}
	for i, id := range ids {
		slots[id] = int64(i) * 8
	}
	return slots, len(ids)
}

func emitFunction(out *strings.Builder, mf *MachineFunction, alloc *AllocResult, reporter *diag.Reporter) {
	slot, nSpilled := spillSlots(alloc)

	// §4.H's stack_frame = 8 * #spilled reserves room for the spill
	// slots alone; completing spill materialization means the saved
	// ra/s0 pair needs its own 16 bytes too, so whenever any local is
	// spilled the frame grows by that fixed amount to host both without
	// aliasing. With zero spills the frame — and the ra/s0 save it
	// would otherwise require — is omitted exactly as specified.
	var frame int64
	if nSpilled > 0 {
		frame = 8*int64(nSpilled) + 16
	}

	toPhys := func(v VReg) string {
		if v.IsPhysical() {
			return v.Name()
		}
		if reg, ok := alloc.PhysReg[v.ID()]; ok {
			return reg
		}
		if reporter != nil {
			reporter.Add(diag.Diagnostic{
				Level:   diag.Warning,
				Code:    diag.WarnUnassignedVReg,
				Message: fmt.Sprintf("%s: %s has no physical register or spill slot at emit time", mf.Name, v.String()),
			})
		}
		return v.String()
	}

	out.WriteString(mf.Name + ":\n")
	if frame > 0 {
		out.WriteString(fmt.Sprintf("  addi sp, sp, -%d\n", frame))
		out.WriteString(fmt.Sprintf("  sd ra, %d(sp)\n", frame-8))
		out.WriteString(fmt.Sprintf("  sd s0, %d(sp)\n", frame-16))
		out.WriteString("  mv s0, sp\n")
	}

	for _, block := range mf.Blocks {
		out.WriteString(fmt.Sprintf("  .%s:\n", block.Label))
		for _, instr := range block.Instructions {
			emitInstr(out, instr, alloc, slot, toPhys)
		}
	}

	if frame > 0 {
		out.WriteString(fmt.Sprintf("  ld s0, %d(sp)\n", frame-16))
		out.WriteString(fmt.Sprintf("  ld ra, %d(sp)\n", frame-8))
		out.WriteString(fmt.Sprintf("  addi sp, sp, %d\n", frame))
	}
}

// emitInstr renders one instruction, synthesizing ld/sd around any
// spilled operand. At most two distinct spilled VRegs are ever live
// within a single instruction's operand set in this ISA (two sources,
// one destination), and a destination can safely reuse the scratch
// register its first source was reloaded into — the source is read by
// the instruction before the destination is written, exactly as real
// hardware orders it — so two scratch registers are always enough.
func emitInstr(out *strings.Builder, instr MachineInstr, alloc *AllocResult, slot map[int]int64, toPhys func(VReg) string) {
	scratchFor := map[int]string{}
	assignScratch := func(id int) string {
		if s, ok := scratchFor[id]; ok {
			return s
		}
		s := spillScratches[len(scratchFor)%len(spillScratches)]
		scratchFor[id] = s
		return s
	}

	for _, u := range instr.Uses() {
		if !u.IsPhysical() && alloc.Spilled[u.ID()] {
			scratch := assignScratch(u.ID())
			out.WriteString(fmt.Sprintf("  ld %s, %d(s0)\n", scratch, slot[u.ID()]))
		}
	}
	for _, d := range instr.Defs() {
		if !d.IsPhysical() && alloc.Spilled[d.ID()] {
			assignScratch(d.ID())
		}
	}

	render := func(v VReg) string {
		if !v.IsPhysical() {
			if s, ok := scratchFor[v.ID()]; ok {
				return s
			}
		}
		return toPhys(v)
	}
	out.WriteString("  " + instr.Render(render) + "\n")

	for _, d := range instr.Defs() {
		if !d.IsPhysical() && alloc.Spilled[d.ID()] {
			out.WriteString(fmt.Sprintf("  sd %s, %d(s0)\n", scratchFor[d.ID()], slot[d.ID()]))
		}
	}
}
