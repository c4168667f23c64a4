package coil

import "testing"

func TestVariableEncodeDecodeRoundTrip(t *testing.T) {
	v := NewVariableWithInitial(5, I32, []byte{1, 2, 3, 4})
	v.ScopeLevel = 2
	b := NewGrowBuffer("var")
	v.Encode(b)
	decoded, next, err := DecodeVariable(b.Bytes(), 0)
	if err != nil {
		t.Fatalf("DecodeVariable: %v", err)
	}
	if next != len(b.Bytes()) {
		t.Fatalf("next = %d, want %d", next, len(b.Bytes()))
	}
	if decoded.ID != 5 || decoded.Type != I32 || decoded.ScopeLevel != 2 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if string(decoded.Initial) != string(v.Initial) {
		t.Fatalf("decoded.Initial = % X, want % X", decoded.Initial, v.Initial)
	}
}

func TestVariableWithoutInitialRoundTrip(t *testing.T) {
	v := NewVariable(1, F64)
	if v.IsInitialized() {
		t.Fatal("a freshly created variable with no initial value should not report initialized")
	}
	b := NewGrowBuffer("var")
	v.Encode(b)
	decoded, _, err := DecodeVariable(b.Bytes(), 0)
	if err != nil {
		t.Fatalf("DecodeVariable: %v", err)
	}
	if decoded.IsInitialized() {
		t.Fatal("decoded variable should not report initialized")
	}
}

func TestVariableDeclarationInstruction(t *testing.T) {
	v := NewVariableWithInitial(9, I32, []byte{1, 0, 0, 0})
	instr := v.Declaration()
	if instr.Opcode != OpVAR {
		t.Fatalf("Declaration().Opcode = 0x%02X, want OpVAR", instr.Opcode)
	}
	if len(instr.Operands) != 3 {
		t.Fatalf("len(Operands) = %d, want 3 (id, type, initial)", len(instr.Operands))
	}
	if instr.Operands[0].ID() != 9 {
		t.Fatalf("first operand id = %d, want 9", instr.Operands[0].ID())
	}
}

func TestScopeManagerGlobalScopeNeverLeft(t *testing.T) {
	m := NewScopeManager()
	if err := m.LeaveScope(); err == nil {
		t.Fatal("leaving the global scope should return an error")
	}
}

func TestScopeManagerNestedLookup(t *testing.T) {
	m := NewScopeManager()
	m.AddVariable(NewVariable(1, I32))
	m.EnterScope()
	m.AddVariable(NewVariable(2, F64))

	if _, ok := m.FindVariable(1); !ok {
		t.Fatal("an outer-scope variable should be visible from a nested scope")
	}
	if _, ok := m.FindVariable(2); !ok {
		t.Fatal("the current scope's own variable should be visible")
	}

	if err := m.LeaveScope(); err != nil {
		t.Fatalf("LeaveScope() from a nested scope: %v", err)
	}
	if _, ok := m.FindVariable(2); ok {
		t.Fatal("a variable from a left scope should no longer be visible")
	}
	if _, ok := m.FindVariable(1); !ok {
		t.Fatal("the global variable should still be visible after leaving a nested scope")
	}
}

func TestScopeManagerCurrentScopeVariables(t *testing.T) {
	m := NewScopeManager()
	m.AddVariable(NewVariable(1, I32))
	m.EnterScope()
	m.AddVariable(NewVariable(2, I32))
	m.AddVariable(NewVariable(3, I32))

	current := m.CurrentScopeVariables()
	if len(current) != 2 {
		t.Fatalf("len(CurrentScopeVariables()) = %d, want 2", len(current))
	}

	all := m.AllVariables()
	if len(all) != 3 {
		t.Fatalf("len(AllVariables()) = %d, want 3", len(all))
	}
}

func TestVariableManagerSequentialIDs(t *testing.T) {
	m := NewVariableManager()
	a := m.CreateVariable(I32, nil)
	b := m.CreateVariable(F64, nil)
	if a != 1 {
		t.Fatalf("first allocated id = %d, want 1 (0 is reserved)", a)
	}
	if b != a+1 {
		t.Fatalf("ids not sequential: %d then %d", a, b)
	}
	if !m.VariableExists(a) {
		t.Fatal("VariableExists should report true for a just-created variable")
	}
}

func TestVariableManagerClearResetsCounter(t *testing.T) {
	m := NewVariableManager()
	m.CreateVariable(I32, nil)
	m.Clear()
	next := m.CreateVariable(I32, nil)
	if next != 1 {
		t.Fatalf("id after Clear() = %d, want 1", next)
	}
}
