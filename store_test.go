/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	"reflect"
	"testing"

	"github.com/suparena/sfactory/errors"
)

func TestFlatMapInsertionOrder(t *testing.T) {
	m := &flatMap{}

	for _, w := range []string{"a", "b", "c"} {
		if err := m.insert(uint64(w[0]), producer{witness: w}); err != nil {
			t.Fatalf("insert %s failed: %v", w, err)
		}
	}

	// Overwriting b keeps its slot
	if err := m.insert(uint64('b'), producer{witness: "b"}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	var order []string
	for _, e := range m.entries {
		order = append(order, e.p.witness)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("Expected order %v, got %v", want, order)
	}

	if _, ok := m.find(uint64('b')); !ok {
		t.Fatal("find should locate an overwritten entry")
	}
	if _, ok := m.find(999); ok {
		t.Fatal("find should miss an absent id")
	}
}

func TestFlatMapCollision(t *testing.T) {
	m := &flatMap{}

	if err := m.insert(1, producer{witness: "x"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err := m.insert(1, producer{witness: "y"})
	if !errors.IsKeyCollision(err) {
		t.Fatalf("Expected collision, got %v", err)
	}

	if err := m.collides(1, "y"); !errors.IsKeyCollision(err) {
		t.Fatalf("Expected collision from probe, got %v", err)
	}
	if err := m.collides(1, "x"); err != nil {
		t.Fatalf("Same witness should not collide: %v", err)
	}
	if err := m.collides(2, "y"); err != nil {
		t.Fatalf("Absent id should not collide: %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	cases := []struct {
		types []reflect.Type
		want  string
	}{
		{nil, "()"},
		{[]reflect.Type{reflect.TypeOf("")}, "(string)"},
		{[]reflect.Type{reflect.TypeOf(""), reflect.TypeOf(0)}, "(string, int)"},
		{[]reflect.Type{reflect.TypeOf(&widgetA{})}, "(*sfactory.widgetA)"},
	}
	for _, c := range cases {
		if got := fingerprint(c.types); got != c.want {
			t.Errorf("fingerprint(%v): expected %q, got %q", c.types, c.want, got)
		}
	}
}

func TestSignatureOfArgsMatchesFunc(t *testing.T) {
	fn := reflect.TypeOf(func(s string, n int) string { return "" })
	fromFunc := signatureOfFunc(fn)

	fromArgs, vals, err := signatureOfArgs([]any{"x", 1})
	if err != nil {
		t.Fatalf("signatureOfArgs failed: %v", err)
	}
	if fromFunc != fromArgs {
		t.Fatalf("Registration and call fingerprints diverge: %q vs %q", fromFunc, fromArgs)
	}
	if len(vals) != 2 || vals[0].Interface() != "x" {
		t.Fatalf("Unexpected converted values: %v", vals)
	}
}

func TestTypeIdentity(t *testing.T) {
	ta := reflect.TypeOf(widgetA{})
	tb := reflect.TypeOf(widgetB{})

	if typeName(ta) != "github.com/suparena/sfactory.widgetA" {
		t.Fatalf("Unexpected type name %q", typeName(ta))
	}
	if typeID(ta) == typeID(tb) {
		t.Fatal("Distinct types should not share an id")
	}
	if typeID(ta) != typeID(reflect.TypeOf(widgetA{})) {
		t.Fatal("Type ids must be stable")
	}

	// Unnamed types fall back to their syntactic form
	if typeName(reflect.TypeOf(map[string]int{})) != "map[string]int" {
		t.Fatalf("Unexpected unnamed type name %q", typeName(reflect.TypeOf(map[string]int{})))
	}
}

func TestHashString(t *testing.T) {
	if HashString("dog") == HashString("cat") {
		t.Fatal("FNV should separate short distinct keys")
	}
	if HashString("dog") != HashString("dog") {
		t.Fatal("HashString must be pure")
	}
	// FNV-1a 64-bit offset basis for the empty string
	if HashString("") != 0xcbf29ce484222325 {
		t.Fatalf("Unexpected empty-string hash %#x", HashString(""))
	}
}
