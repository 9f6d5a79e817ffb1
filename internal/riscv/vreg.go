// Package riscv implements the RV64I backend: instruction selection
// over virtual registers (§4.F), linear-scan register allocation with
// a spill heuristic (§4.G), and assembly emission (§4.H). Grounded on
// original_source/riscv-backend/src/{machine_ir,instruction_sel,
// register_alloc,riscv_emission}.rs.
package riscv

import "fmt"

// VReg is either a not-yet-allocated virtual register (an index minted
// by the selector, one per distinct IR name) or a physical register
// name assigned by the allocator or fixed by an ABI lowering (e.g. a
// Call argument landing directly in "a0"), mirroring the teacher's VReg
// enum split between Virtual(id) and Physical(name).
type VReg struct {
	id     int
	name   string
	isPhys bool
}

// Virtual creates a virtual register with the given id.
func Virtual(id int) VReg { return VReg{id: id} }

// Physical creates an already-assigned physical register reference,
// used for ABI-fixed locations (argument/return registers) that never
// go through the allocator.
func Physical(name string) VReg { return VReg{name: name, isPhys: true} }

// IsPhysical reports whether v is already a concrete register.
func (v VReg) IsPhysical() bool { return v.isPhys }

// ID returns the virtual register's allocation-unit id. Only valid
// when !IsPhysical().
func (v VReg) ID() int { return v.id }

// Name returns the physical register name. Only valid when
// IsPhysical().
func (v VReg) Name() string { return v.name }

func (v VReg) String() string {
	if v.isPhys {
		return v.name
	}
	return fmt.Sprintf("%%v%d", v.id)
}

// vregMap assigns a fresh Virtual on first mention of a name and
// returns the same one on every later mention, matching the
// "virtual-id counter plus name -> VReg map" of §4.F.
type vregMap struct {
	next  int
	names map[string]VReg
}

func newVRegMap() *vregMap {
	return &vregMap{names: map[string]VReg{}}
}

func (m *vregMap) get(name string) VReg {
	if v, ok := m.names[name]; ok {
		return v
	}
	v := Virtual(m.next)
	m.next++
	m.names[name] = v
	return v
}
