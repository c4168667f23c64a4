package coil

// Variable is a typed, optionally-initialized binding tracked against a
// scope level.
type Variable struct {
	ID         uint16
	Type       Type
	ScopeLevel uint32
	Initial    []byte
}

// NewVariable creates a Variable with no initial value.
func NewVariable(id uint16, t Type) Variable {
	return Variable{ID: id, Type: t}
}

// NewVariableWithInitial creates a Variable carrying an initial value.
func NewVariableWithInitial(id uint16, t Type, initial []byte) Variable {
	return Variable{ID: id, Type: t, Initial: initial}
}

// IsInitialized reports whether v carries an initial value.
func (v Variable) IsInitialized() bool { return len(v.Initial) > 0 }

// Declaration returns the VAR instruction that declares v: operands are the
// variable id, its type as an immediate, and (if present) its initial value
// carried in an operand of v's own type.
func (v Variable) Declaration() Instruction {
	operands := []Operand{
		NewVariableOperand(v.ID),
		NewImmediateInt32(int32(v.Type), I32),
	}
	if v.IsInitialized() {
		operands = append(operands, Operand{Type: v.Type, Payload: v.Initial})
	}
	return NewInstruction(OpVAR, operands...)
}

// Encode appends the wire form of v to b: id:u16, type:u16, scope_level:u32,
// initial_value_size:u32, initial value bytes.
func (v Variable) Encode(b *GrowBuffer) {
	PutU16(b, v.ID, LittleEndian)
	PutU16(b, uint16(v.Type), LittleEndian)
	PutU32(b, v.ScopeLevel, LittleEndian)
	PutU32(b, uint32(len(v.Initial)), LittleEndian)
	b.Write(v.Initial)
}

// DecodeVariable reads one Variable from data at offset.
func DecodeVariable(data []byte, offset int) (Variable, int, error) {
	var v Variable
	var err error
	var typeWord uint16

	v.ID, offset, err = ReadU16(data, offset, LittleEndian)
	if err != nil {
		return Variable{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding variable id")
	}
	typeWord, offset, err = ReadU16(data, offset, LittleEndian)
	if err != nil {
		return Variable{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding variable type")
	}
	v.Type = Type(typeWord)
	v.ScopeLevel, offset, err = ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Variable{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding variable scope level")
	}
	size, offset2, err := ReadU32(data, offset, LittleEndian)
	if err != nil {
		return Variable{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding variable initial value size")
	}
	offset = offset2
	if size > 0 {
		v.Initial, offset, err = ReadBytes(data, offset, int(size))
		if err != nil {
			return Variable{}, offset, wrapErr(ErrKindInvalidFormat, err, "decoding variable initial value (%d bytes)", size)
		}
	}
	return v, offset, nil
}

// ScopeManager tracks variables across nested lexical scopes: level 0 is
// the global scope and can never be left. Lookup walks from the innermost
// open scope outward to level 0.
type ScopeManager struct {
	currentLevel uint32
	scopes       []map[uint16]Variable
}

// NewScopeManager creates a manager with only the global scope open.
func NewScopeManager() *ScopeManager {
	return &ScopeManager{scopes: []map[uint16]Variable{make(map[uint16]Variable)}}
}

// EnterScope opens a new nested scope.
func (m *ScopeManager) EnterScope() {
	m.currentLevel++
	if int(m.currentLevel) >= len(m.scopes) {
		m.scopes = append(m.scopes, make(map[uint16]Variable))
	}
}

// LeaveScope closes the current scope, discarding its variables. Returns an
// error (not a panic) if called at the global scope: unlike an
// out-of-range table index, this is a caller-reachable control-flow
// mistake a validator should be able to report rather than crash on.
func (m *ScopeManager) LeaveScope() error {
	if m.currentLevel == 0 {
		return newErr(ErrKindBadState, "cannot leave the global scope")
	}
	m.scopes[m.currentLevel] = make(map[uint16]Variable)
	m.currentLevel--
	return nil
}

// AddVariable records var in the current scope, stamping its ScopeLevel.
func (m *ScopeManager) AddVariable(v Variable) {
	v.ScopeLevel = m.currentLevel
	m.scopes[m.currentLevel][v.ID] = v
}

// FindVariable searches from the current scope outward to the global scope.
func (m *ScopeManager) FindVariable(id uint16) (Variable, bool) {
	for level := int(m.currentLevel); level >= 0; level-- {
		if v, ok := m.scopes[level][id]; ok {
			return v, true
		}
	}
	return Variable{}, false
}

// CurrentScopeLevel returns the currently open scope's level.
func (m *ScopeManager) CurrentScopeLevel() uint32 { return m.currentLevel }

// CurrentScopeVariables returns every variable declared directly in the
// current scope (not its ancestors).
func (m *ScopeManager) CurrentScopeVariables() []Variable {
	scope := m.scopes[m.currentLevel]
	out := make([]Variable, 0, len(scope))
	for _, v := range scope {
		out = append(out, v)
	}
	return out
}

// AllVariables returns every variable in every open scope.
func (m *ScopeManager) AllVariables() []Variable {
	var out []Variable
	for _, scope := range m.scopes {
		for _, v := range scope {
			out = append(out, v)
		}
	}
	return out
}

// Clear resets the manager to a single empty global scope.
func (m *ScopeManager) Clear() {
	m.scopes = []map[uint16]Variable{make(map[uint16]Variable)}
	m.currentLevel = 0
}

// VariableManager assigns sequential ids (starting at 1; 0 is reserved) on
// top of a ScopeManager, the allocation-plus-scoping pairing a module-level
// compiler component needs.
type VariableManager struct {
	scopes *ScopeManager
	nextID uint16
}

// NewVariableManager creates a manager with the first allocatable id at 1.
func NewVariableManager() *VariableManager {
	return &VariableManager{scopes: NewScopeManager(), nextID: 1}
}

// CreateVariable allocates a fresh id, declares it in the current scope,
// and returns the id.
func (m *VariableManager) CreateVariable(t Type, initial []byte) uint16 {
	id := m.nextID
	m.nextID++
	m.scopes.AddVariable(NewVariableWithInitial(id, t, initial))
	return id
}

// GetVariable looks up id, searching outward from the current scope.
func (m *VariableManager) GetVariable(id uint16) (Variable, bool) {
	return m.scopes.FindVariable(id)
}

// VariableExists reports whether id is currently visible.
func (m *VariableManager) VariableExists(id uint16) bool {
	_, ok := m.scopes.FindVariable(id)
	return ok
}

func (m *VariableManager) EnterScope() { m.scopes.EnterScope() }

func (m *VariableManager) LeaveScope() error { return m.scopes.LeaveScope() }

func (m *VariableManager) CurrentScopeLevel() uint32 { return m.scopes.CurrentScopeLevel() }

// Clear resets both the scope stack and the id counter.
func (m *VariableManager) Clear() {
	m.scopes.Clear()
	m.nextID = 1
}

func (m *VariableManager) AllVariables() []Variable { return m.scopes.AllVariables() }
