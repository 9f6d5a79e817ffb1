package ir

import (
	"reflect"
	"testing"
)

func TestBinaryDefsUses(t *testing.T) {
	instr := &Binary{Op: OpAdd, Dest: "d", Lhs: "a", Rhs: "b"}
	if got := instr.Defs(); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("Defs() = %v", got)
	}
	if got := instr.Uses(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Uses() = %v", got)
	}
}

func TestCallWithAndWithoutDest(t *testing.T) {
	withDest := &Call{Target: "f", Args: []string{"a"}, Dest: "r", HasDest: true}
	if got := withDest.Defs(); !reflect.DeepEqual(got, []string{"r"}) {
		t.Errorf("Defs() = %v, want [r]", got)
	}

	noDest := &Call{Target: "f", Args: []string{"a"}}
	if got := noDest.Defs(); got != nil {
		t.Errorf("Defs() = %v, want nil", got)
	}
}

func TestPhiUsesSkipsUnfilledSources(t *testing.T) {
	p := &Phi{Dest: "x$3", Sources: []string{"x$1", "", "x$2"}}
	if got := p.Uses(); !reflect.DeepEqual(got, []string{"x$1", "x$2"}) {
		t.Errorf("Uses() = %v, want [x$1 x$2]", got)
	}
}

func TestIsTerminator(t *testing.T) {
	cases := []struct {
		instr Instruction
		want  bool
	}{
		{&Br{}, true},
		{&Jmp{}, true},
		{&Ret{}, true},
		{&Const{}, false},
		{&Assign{}, false},
		{&Print{}, false},
	}
	for _, c := range cases {
		if got := IsTerminator(c.instr); got != c.want {
			t.Errorf("IsTerminator(%T) = %v, want %v", c.instr, got, c.want)
		}
	}
}

func TestConstLiteralString(t *testing.T) {
	i := Const{Dest: "d", Value: IntLit(5)}
	if got := i.String(); got != "d = const 5" {
		t.Errorf("String() = %q", got)
	}
	b := Const{Dest: "d", Value: BoolLit(true)}
	if got := b.String(); got != "d = const true" {
		t.Errorf("String() = %q", got)
	}
}
