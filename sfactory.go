/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	"hash/fnv"
	"reflect"
	"sync"

	"github.com/suparena/sfactory/own"
)

// Hasher maps a key to its fixed-width numeric id. Lookups by key and lookups
// by type identity share one id space, so a Hasher must be pure and stable
// for the process lifetime.
type Hasher[K comparable] func(K) uint64

// HashString is the default Hasher for string keys (FNV-1a, 64 bit).
func HashString(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

// Factory is an object-construction registry for values conforming to a base
// type B, keyed by K. Producers are stored in isolated partitions per result
// shape and argument signature; registration and instantiation never cross
// partitions.
//
// A single mutex guards all registration, lookup, and producer invocation.
// Producers therefore run with the lock held: a producer that calls back into
// the same Factory deadlocks. This coarse contract is deliberate; keep
// producers self-contained.
type Factory[B any, K comparable] struct {
	mu   sync.Mutex
	hash Hasher[K]

	base    reflect.Type // type of B
	sharedT reflect.Type // *own.Shared[B]
	uniqueT reflect.Type // *own.Unique[B]

	stores [numShapes]map[string]*flatMap
}

// New creates a Factory for base type B with string keys and the default
// FNV-1a hasher.
func New[B any]() *Factory[B, string] {
	return NewKeyed[B, string](HashString)
}

// NewKeyed creates a Factory for base type B with keys of type K hashed by h.
func NewKeyed[B any, K comparable](h Hasher[K]) *Factory[B, K] {
	f := &Factory[B, K]{
		hash:    h,
		base:    reflect.TypeOf((*B)(nil)).Elem(),
		sharedT: reflect.TypeOf((*own.Shared[B])(nil)),
		uniqueT: reflect.TypeOf((*own.Unique[B])(nil)),
	}
	for i := range f.stores {
		f.stores[i] = make(map[string]*flatMap)
	}
	return f
}

// instanceKey identifies one process-wide factory per (base type, key type).
type instanceKey struct {
	base reflect.Type
	key  reflect.Type
}

var (
	processMu        sync.Mutex
	processInstances = make(map[instanceKey]any)
)

// For returns the process-wide shared Factory for base type B with string
// keys, creating it on first use. Instances live for the process lifetime;
// there is no way to remove one.
func For[B any]() *Factory[B, string] {
	return ForKeyed[B, string](HashString)
}

// ForKeyed returns the process-wide shared Factory for the (B, K) pairing,
// creating it with h on first use. The hasher of an already created instance
// is not replaced.
func ForKeyed[B any, K comparable](h Hasher[K]) *Factory[B, K] {
	ik := instanceKey{
		base: reflect.TypeOf((*B)(nil)).Elem(),
		key:  reflect.TypeOf((*K)(nil)).Elem(),
	}

	processMu.Lock()
	defer processMu.Unlock()

	if existing, ok := processInstances[ik]; ok {
		return existing.(*Factory[B, K])
	}
	f := NewKeyed[B, K](h)
	processInstances[ik] = f
	return f
}
