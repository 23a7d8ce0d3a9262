/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	stderrors "errors"
	"testing"

	"github.com/suparena/sfactory/errors"
)

func TestTryMakeFirstSuccessWins(t *testing.T) {
	f := New[string]()

	fail := stderrors.New("p1 down")
	if err := f.RegisterFunc("p1", func() (string, error) { return "", fail }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := f.RegisterFunc("p2", func() string { return "two" }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := f.RegisterFunc("p3", func() string { return "three" }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Insertion order p1, p2, p3: p2 is the first success
	v, err := f.TryMake()
	if err != nil {
		t.Fatalf("TryMake failed: %v", err)
	}
	if v != "two" {
		t.Fatalf("Expected p2's result, got %q", v)
	}
}

func TestTryMakeAllFailReturnsLastError(t *testing.T) {
	f := New[string]()

	err1 := stderrors.New("first down")
	err2 := stderrors.New("second down")
	if err := f.RegisterFunc("p1", func() (string, error) { return "", err1 }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := f.RegisterFunc("p2", func() (string, error) { return "", err2 }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := f.TryMake()
	if err != err2 {
		t.Fatalf("Expected the last failure unchanged, got %v", err)
	}
}

func TestTryMakeEmptyPartition(t *testing.T) {
	t.Run("DefaultConstructibleBase", func(t *testing.T) {
		f := New[string]()
		v, err := f.TryMake()
		if err != nil {
			t.Fatalf("Expected the zero value, got error %v", err)
		}
		if v != "" {
			t.Fatalf("Expected empty string, got %q", v)
		}
	})

	t.Run("InterfaceBase", func(t *testing.T) {
		f := New[widget]()
		_, err := f.TryMake()
		if !errors.IsNoneAvailable(err) {
			t.Fatalf("Expected none available, got %v", err)
		}
	})
}

func TestTryMakePtr(t *testing.T) {
	f := New[widget]()

	// A producer that yields a nil pointer is skipped, not an error
	if err := f.RegisterFunc("absent", func() *widgetA { return nil }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := f.RegisterFunc("present", func() *widgetB { return &widgetB{} }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	w, err := f.TryMakePtr()
	if err != nil {
		t.Fatalf("TryMakePtr failed: %v", err)
	}
	if w.Value() != 84 {
		t.Fatalf("Expected the first non-nil instance, got %d", w.Value())
	}
}

func TestTryMakePtrEmpty(t *testing.T) {
	f := New[widget]()
	if _, err := f.TryMakePtr(); !errors.IsNoneAvailable(err) {
		t.Fatalf("Expected none available, got %v", err)
	}

	// Only nil producers registered still counts as nothing usable
	if err := f.RegisterFunc("absent", func() *widgetA { return nil }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := f.TryMakePtr(); !errors.IsNoneAvailable(err) {
		t.Fatalf("Expected none available, got %v", err)
	}
}

func TestTryMakeSharedAndUnique(t *testing.T) {
	f := New[widget]()

	if err := RegisterType[widgetA](f, "a"); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}

	h, err := f.TryMakeShared()
	if err != nil {
		t.Fatalf("TryMakeShared failed: %v", err)
	}
	if h.Value().Value() != 42 {
		t.Errorf("Expected 42, got %d", h.Value().Value())
	}

	u, err := f.TryMakeUnique()
	if err != nil {
		t.Fatalf("TryMakeUnique failed: %v", err)
	}
	if u.Value().Value() != 42 {
		t.Errorf("Expected 42, got %d", u.Value().Value())
	}
}

func TestTryMakeHonorsSignature(t *testing.T) {
	f := New[string]()

	if err := f.RegisterFunc("greet", func(name string) string { return "hi " + name }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	v, err := f.TryMake("ada")
	if err != nil {
		t.Fatalf("TryMake failed: %v", err)
	}
	if v != "hi ada" {
		t.Fatalf("Expected greeting, got %q", v)
	}

	// No zero-argument producers exist; default-construct the base
	v, err = f.TryMake()
	if err != nil {
		t.Fatalf("TryMake failed: %v", err)
	}
	if v != "" {
		t.Fatalf("Expected zero value for the empty partition, got %q", v)
	}
}
