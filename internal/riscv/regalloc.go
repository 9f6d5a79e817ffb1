package riscv

import (
	"sort"
	"strconv"
)

// AllRegs is the pool available to allocation (§6): t0-t5, a0-a7,
// s1-s11 — 25 registers. t6 and tp are withheld as dedicated spill
// scratch registers (see emit.go) so the emitter can always materialize
// a reload/store without ever contending with a live interval for the
// same physical register; that guarantee is what makes completing the
// "spill materialization" gap sound rather than just plausible.
var AllRegs = buildRegPool()

func buildRegPool() []string {
	var regs []string
	for i := 0; i <= 5; i++ {
		regs = append(regs, tReg(i))
	}
	for i := 0; i <= 7; i++ {
		regs = append(regs, aReg(i))
	}
	for i := 1; i <= 11; i++ {
		regs = append(regs, sReg(i))
	}
	return regs
}

func tReg(i int) string { return "t" + strconv.Itoa(i) }
func aReg(i int) string { return "a" + strconv.Itoa(i) }
func sReg(i int) string { return "s" + strconv.Itoa(i) }

// Interval is a VReg's live range expressed as global instruction
// positions, assigned in-order across the whole function.
type Interval struct {
	VReg  VReg
	Start int
	End   int
}

// AllocResult maps every virtual register id either to a physical
// register or marks it spilled.
type AllocResult struct {
	PhysReg map[int]string
	Spilled map[int]bool
}

// BuildIntervals assigns a global position to every instruction
// (in-order traversal of blocks then instructions) and, for each
// virtual register observed, grows [start,end] to cover every def and
// use site, per §4.G.
func BuildIntervals(mf *MachineFunction) []*Interval {
	byID := map[int]*Interval{}
	pos := 0

	touch := func(v VReg, p int) {
		if v.IsPhysical() {
			return
		}
		iv, ok := byID[v.ID()]
		if !ok {
			iv = &Interval{VReg: v, Start: p, End: p}
			byID[v.ID()] = iv
			return
		}
		if p < iv.Start {
			iv.Start = p
		}
		if p > iv.End {
			iv.End = p
		}
	}

	for _, block := range mf.Blocks {
		for _, instr := range block.Instructions {
			for _, d := range instr.Defs() {
				touch(d, pos)
			}
			for _, u := range instr.Uses() {
				touch(u, pos)
			}
			pos++
		}
	}

	intervals := make([]*Interval, 0, len(byID))
	for _, iv := range byID {
		intervals = append(intervals, iv)
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start < intervals[j].Start })
	return intervals
}

// LinearScan runs the §4.G scan: sort by start, expire finished active
// intervals returning their register to the free pool, assign a free
// register if one exists, otherwise spill the interval with the
// farthest end among {the new interval, the active set} — whichever
// ends sooner keeps (or takes) the register.
func LinearScan(intervals []*Interval, pool []string) *AllocResult {
	result := &AllocResult{PhysReg: map[int]string{}, Spilled: map[int]bool{}}

	free := append([]string(nil), pool...)
	var active []*Interval
	regOf := map[int]string{}

	for _, iv := range intervals {
		// 1. expire
		kept := active[:0]
		for _, old := range active {
			if old.End < iv.Start {
				free = append(free, regOf[old.VReg.ID()])
			} else {
				kept = append(kept, old)
			}
		}
		active = kept
		sort.Slice(active, func(i, j int) bool { return active[i].End < active[j].End })

		// 2. free register available
		if len(free) > 0 {
			reg := free[len(free)-1]
			free = free[:len(free)-1]
			regOf[iv.VReg.ID()] = reg
			result.PhysReg[iv.VReg.ID()] = reg
			active = append(active, iv)
			sort.Slice(active, func(i, j int) bool { return active[i].End < active[j].End })
			continue
		}

		// 3. spill heuristic
		if len(active) == 0 {
			result.Spilled[iv.VReg.ID()] = true
			continue
		}
		worst := active[len(active)-1]
		if worst.End > iv.End {
			reg := regOf[worst.VReg.ID()]
			result.Spilled[worst.VReg.ID()] = true
			delete(result.PhysReg, worst.VReg.ID())
			regOf[iv.VReg.ID()] = reg
			result.PhysReg[iv.VReg.ID()] = reg
			active[len(active)-1] = iv
			sort.Slice(active, func(i, j int) bool { return active[i].End < active[j].End })
		} else {
			result.Spilled[iv.VReg.ID()] = true
		}
	}

	return result
}
