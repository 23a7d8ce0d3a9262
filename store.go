/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/suparena/sfactory/errors"
)

// Shape is the result category a producer was classified into. The four
// shapes are fully isolated id spaces: an entry registered under one shape is
// never visible to lookups against another.
type Shape int

const (
	// ShapeValue holds producers returning a value assignable to the base type.
	ShapeValue Shape = iota
	// ShapePointer holds producers returning a pointer to a concrete subtype.
	ShapePointer
	// ShapeShared holds producers returning a reference-counted own.Shared handle.
	ShapeShared
	// ShapeUnique holds producers returning a single-owner own.Unique handle.
	ShapeUnique

	numShapes
)

func (s Shape) String() string {
	switch s {
	case ShapeValue:
		return "value"
	case ShapePointer:
		return "pointer"
	case ShapeShared:
		return "shared"
	case ShapeUnique:
		return "unique"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// producer is one registered callable plus the bookkeeping needed to invoke
// it uniformly across shapes.
type producer struct {
	fn     reflect.Value
	hasErr bool // trailing error result
	// post converts the callable's raw result into the partition's result
	// form (used by constructors multiplexed across handle shapes).
	post    func(reflect.Value) reflect.Value
	witness string // original key, kept for hash collision detection
}

// call invokes the producer. A non-nil trailing error aborts before any
// post-processing.
func (p producer) call(args []reflect.Value) (reflect.Value, error) {
	out := p.fn.Call(args)
	if p.hasErr && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	v := out[0]
	if p.post != nil {
		v = p.post(v)
	}
	return v, nil
}

// entry is one (id, producer) pair within a partition.
type entry struct {
	id uint64
	p  producer
}

// flatMap is an insertion-ordered association list with unique ids.
// Overwrites keep the original position; the fallback trial engine depends on
// that ordering.
type flatMap struct {
	entries []entry
}

func (m *flatMap) find(id uint64) (producer, bool) {
	for _, e := range m.entries {
		if e.id == id {
			return e.p, true
		}
	}
	return producer{}, false
}

// insert adds or overwrites the entry for id. Distinct keys hashing to the
// same id are rejected rather than silently unified.
func (m *flatMap) insert(id uint64, p producer) error {
	for i, e := range m.entries {
		if e.id != id {
			continue
		}
		if e.p.witness != p.witness {
			return errors.NewKeyCollisionError(p.witness, e.p.witness, id)
		}
		m.entries[i].p = p
		return nil
	}
	m.entries = append(m.entries, entry{id: id, p: p})
	return nil
}

// collides reports a witness conflict without mutating the map.
func (m *flatMap) collides(id uint64, witness string) error {
	if e, ok := m.find(id); ok && e.witness != witness {
		return errors.NewKeyCollisionError(witness, e.witness, id)
	}
	return nil
}

// partition returns the flat map for (shape, signature), or nil.
// Caller must hold f.mu.
func (f *Factory[B, K]) partition(s Shape, sig string) *flatMap {
	return f.stores[s][sig]
}

// ensurePartition returns the flat map for (shape, signature), creating it on
// first use. Caller must hold f.mu.
func (f *Factory[B, K]) ensurePartition(s Shape, sig string) *flatMap {
	m := f.stores[s][sig]
	if m == nil {
		m = &flatMap{}
		f.stores[s][sig] = m
	}
	return m
}

// lookup finds the producer for id in the (shape, signature) partition.
// Caller must hold f.mu.
func (f *Factory[B, K]) lookup(s Shape, sig string, id uint64) (producer, bool) {
	m := f.partition(s, sig)
	if m == nil {
		return producer{}, false
	}
	return m.find(id)
}

// signature fingerprinting

func fingerprint(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// signatureOfFunc fingerprints a callable's declared parameter list.
func signatureOfFunc(ft reflect.Type) string {
	in := make([]reflect.Type, ft.NumIn())
	for i := range in {
		in[i] = ft.In(i)
	}
	return fingerprint(in)
}

// signatureOfArgs fingerprints call arguments and converts them for
// invocation. Untyped nils are rejected: they carry no type to select a
// partition with.
func signatureOfArgs(args []any) (string, []reflect.Value, error) {
	types := make([]reflect.Type, len(args))
	vals := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			return "", nil, errors.NewBadArgumentError(i, "untyped nil cannot select a partition")
		}
		v := reflect.ValueOf(a)
		types[i] = v.Type()
		vals[i] = v
	}
	return fingerprint(types), vals, nil
}

// typeName returns the stable fully qualified name used as a type-identity
// key witness.
func typeName(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// typeID maps a concrete type to its numeric id in the shared id space.
func typeID(t reflect.Type) uint64 {
	return HashString(typeName(t))
}

// EntryInfo is a snapshot of one registered entry, for diagnostics and tools.
type EntryInfo struct {
	Shape     Shape
	Signature string
	ID        uint64
	Key       string
}

// Entries returns a snapshot of all registered entries, ordered by shape,
// then signature, then insertion order within a partition.
func (f *Factory[B, K]) Entries() []EntryInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	var infos []EntryInfo
	for s := ShapeValue; s < numShapes; s++ {
		sigs := make([]string, 0, len(f.stores[s]))
		for sig := range f.stores[s] {
			sigs = append(sigs, sig)
		}
		sort.Strings(sigs)
		for _, sig := range sigs {
			for _, e := range f.stores[s][sig].entries {
				infos = append(infos, EntryInfo{
					Shape:     s,
					Signature: sig,
					ID:        e.id,
					Key:       e.p.witness,
				})
			}
		}
	}
	return infos
}

// Len returns the total number of registered entries across all partitions.
func (f *Factory[B, K]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for s := range f.stores {
		for _, m := range f.stores[s] {
			n += len(m.entries)
		}
	}
	return n
}
