package db

import "testing"

func TestInternerStructuralEquality(t *testing.T) {
	in := NewInterner[string]()
	a := in.Intern("foo")
	b := in.Intern("foo")
	c := in.Intern("bar")

	if a != b {
		t.Fatalf("interning the same value twice must return the same id")
	}
	if a == c {
		t.Fatalf("interning different values must return different ids")
	}
	if in.Lookup(a) != "foo" || in.Lookup(c) != "bar" {
		t.Fatalf("lookup did not round-trip")
	}
	if in.Len() != 2 {
		t.Fatalf("expected 2 distinct interned values, got %d", in.Len())
	}
}
