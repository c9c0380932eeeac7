package runtime

import "testing"

func TestCreateAndResolve(t *testing.T) {
	s := NewScope(Null)
	if err := s.Create("a", NewNumber(1), false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	v, ok := s.Resolve("a")
	if !ok || v.Number != 1 {
		t.Fatalf("Resolve = %v, %v", v, ok)
	}
	if _, ok := s.Resolve("missing"); ok {
		t.Fatal("unexpected resolution")
	}
}

func TestCreateFailsOnSameScopeRedeclare(t *testing.T) {
	s := NewScope(Null)
	s.Create("a", NewNumber(1), false)
	if err := s.Create("a", NewNumber(2), false); err != ErrAlreadyDeclared {
		t.Fatalf("expected ErrAlreadyDeclared, got %v", err)
	}
	// Shadowing in a child scope is fine.
	child := s.Child()
	if err := child.Create("a", NewNumber(3), false); err != nil {
		t.Fatalf("child Create: %v", err)
	}
	v, _ := child.Resolve("a")
	if v.Number != 3 {
		t.Fatalf("child sees %v", v.Number)
	}
	v, _ = s.Resolve("a")
	if v.Number != 1 {
		t.Fatalf("parent sees %v", v.Number)
	}
}

func TestAssignWalksChain(t *testing.T) {
	s := NewScope(Null)
	s.Create("a", NewNumber(1), false)
	child := s.Child().Child()
	if err := child.Assign("a", NewNumber(9)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	v, _ := s.Resolve("a")
	if v.Number != 9 {
		t.Fatalf("assignment not visible at root: %v", v.Number)
	}
	if err := child.Assign("missing", Null); err != ErrNotDeclared {
		t.Fatalf("expected ErrNotDeclared, got %v", err)
	}
}

func TestConstantRejectsAssignment(t *testing.T) {
	s := NewScope(Null)
	s.Create("fact", NewNumber(1), true)
	if err := s.Assign("fact", NewNumber(2)); err != ErrConstant {
		t.Fatalf("expected ErrConstant, got %v", err)
	}
}

func TestThisInheritance(t *testing.T) {
	this := NewObject()
	s := NewScope(this)
	child := s.Child()
	if child.This() != this {
		t.Fatal("child should inherit this")
	}
	other := NewObject()
	child.SetThis(other)
	if s.This() != this {
		t.Fatal("parent this must not change")
	}
	if child.This() != other {
		t.Fatal("child this not updated")
	}
}

func TestForkSharesBindingCells(t *testing.T) {
	root := NewScope(Null)
	root.Create("count", NewNumber(0), false)
	inner := root.Child()

	fork := inner.Fork()

	// A value mutation through the original chain is visible in the fork.
	if err := root.Assign("count", NewNumber(5)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	v, ok := fork.Resolve("count")
	if !ok || v.Number != 5 {
		t.Fatalf("fork sees %v, %v", v, ok)
	}

	// A structural addition after the fork is not visible.
	root.Create("late", NewNumber(1), false)
	if _, ok := fork.Resolve("late"); ok {
		t.Fatal("fork should not see bindings created after the fork")
	}

	// And the fork's own mutations flow back through the shared cells.
	if err := fork.Assign("count", NewNumber(7)); err != nil {
		t.Fatalf("fork Assign: %v", err)
	}
	v, _ = root.Resolve("count")
	if v.Number != 7 {
		t.Fatalf("root sees %v after fork assign", v.Number)
	}
}

func TestHasOwn(t *testing.T) {
	s := NewScope(Null)
	s.Create("a", Null, false)
	child := s.Child()
	if child.HasOwn("a") {
		t.Fatal("HasOwn must not consult ancestors")
	}
	if !s.HasOwn("a") {
		t.Fatal("HasOwn missed own binding")
	}
}
