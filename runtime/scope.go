package runtime

import "errors"

var (
	// ErrAlreadyDeclared means the name exists in this exact scope;
	// callers are expected to assign over the existing binding.
	ErrAlreadyDeclared = errors.New("already declared in this scope")
	// ErrNotDeclared means no scope in the chain holds the name.
	ErrNotDeclared = errors.New("not declared")
	// ErrConstant means the binding rejects re-assignment (a named
	// function expression binding its own name).
	ErrConstant = errors.New("assignment to constant")
)

// Binding is a scope entry. Cells are shared between a scope and its
// forks, so value mutations stay visible through a closure.
type Binding struct {
	Value    *Value
	Constant bool
}

// Scope is one node of the lexical environment chain.
type Scope struct {
	bindings map[string]*Binding
	parent   *Scope
	this     *Value
}

// NewScope creates a root scope with the given this-context value.
func NewScope(this *Value) *Scope {
	return &Scope{bindings: map[string]*Binding{}, this: this}
}

// Child derives a nested scope inheriting the parent's this-context.
func (s *Scope) Child() *Scope {
	return &Scope{bindings: map[string]*Binding{}, parent: s, this: s.this}
}

// This returns the scope's this-context value.
func (s *Scope) This() *Value {
	if s.this == nil {
		return Null
	}
	return s.this
}

// SetThis replaces the scope's this-context value.
func (s *Scope) SetThis(v *Value) {
	s.this = v
}

// Create declares a new binding in this exact scope. It fails if the
// name is already bound here; ancestors are not consulted.
func (s *Scope) Create(name string, v *Value, constant bool) error {
	if _, exists := s.bindings[name]; exists {
		return ErrAlreadyDeclared
	}
	s.bindings[name] = &Binding{Value: v, Constant: constant}
	return nil
}

// HasOwn reports whether this exact scope binds the name.
func (s *Scope) HasOwn(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// Assign walks the chain and writes over the first binding found.
func (s *Scope) Assign(name string, v *Value) error {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			if b.Constant {
				return ErrConstant
			}
			b.Value = v
			return nil
		}
	}
	return ErrNotDeclared
}

// Resolve walks the chain and returns the first binding's value.
func (s *Scope) Resolve(name string) (*Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b.Value, true
		}
	}
	return nil, false
}

// Fork snapshots the whole chain node by node. The copies share binding
// cells with the originals, so a closure sees later value mutations but
// keeps its own structural view of the chain.
func (s *Scope) Fork() *Scope {
	if s == nil {
		return nil
	}
	cp := &Scope{bindings: make(map[string]*Binding, len(s.bindings)), this: s.this}
	for name, b := range s.bindings {
		cp.bindings[name] = b
	}
	cp.parent = s.parent.Fork()
	return cp
}
