/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	"fmt"
	"io"
	"reflect"

	"github.com/suparena/sfactory/errors"
	"github.com/suparena/sfactory/own"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// witnessOf renders a key in its string form for collision detection and
// diagnostics.
func witnessOf[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}

// closeIfCloser is the finalizer attached to handles synthesized from
// concrete types: when ownership ends, values that implement io.Closer are
// closed.
func closeIfCloser[B any](b B) {
	if c, ok := any(b).(io.Closer); ok {
		_ = c.Close()
	}
}

// RegisterType registers concrete type C with factory f under the given key,
// or under C's type identity when the key is omitted. The synthesized
// producer takes no arguments and builds C's zero value; use RegisterCtor to
// register a constructor with parameters.
//
// Classification follows the base type relationship: a C whose value
// satisfies B lands in the value partition only; a C reachable through *C
// lands in the pointer, shared, and unique partitions simultaneously.
func RegisterType[C any, B any, K comparable](f *Factory[B, K], key ...K) error {
	return RegisterCtor[C](f, func() C {
		var c C
		return c
	}, key...)
}

// RegisterCtor registers a constructor for concrete type C with factory f.
// ctor must be a non-variadic function whose first result is exactly C, with
// an optional trailing error. The constructor's parameter list becomes the
// entry's signature.
//
// Unlike RegisterFunc, a constructor for a subtype is multiplexed: one ctor
// yields producers in the pointer, shared, and unique partitions, each
// wrapping the constructed value in that partition's result form. Shared and
// unique handles get a finalizer that closes values implementing io.Closer.
func RegisterCtor[C any, B any, K comparable](f *Factory[B, K], ctor any, key ...K) error {
	ct := reflect.TypeOf((*C)(nil)).Elem()

	fn := reflect.ValueOf(ctor)
	hasErr, err := validateCallable(fn, "constructor")
	if err != nil {
		return err
	}
	ft := fn.Type()
	if ft.Out(0) != ct {
		return errors.NewInvalidProducerError(ft.String(),
			fmt.Sprintf("first result is %s, not %s", ft.Out(0), ct))
	}
	sig := signatureOfFunc(ft)

	id, witness := f.identity(ct, key...)
	base := producer{fn: fn, hasErr: hasErr, witness: witness}

	var zero C
	if _, ok := any(zero).(B); ok {
		// Value-convertible concretes register into the value partition only.
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.ensurePartition(ShapeValue, sig).insert(id, base)
	}

	if _, ok := any(&zero).(B); !ok {
		return errors.NewInvalidProducerError(typeName(ct),
			fmt.Sprintf("neither %s nor *%s satisfies base type %s", ct, ct, f.base))
	}

	// Subtype: synthesize one producer per ownership shape from the same ctor.
	asBase := func(v reflect.Value) B {
		c := v.Interface().(C)
		return any(&c).(B)
	}
	byShape := map[Shape]producer{
		ShapePointer: withPost(base, func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(asBase(v))
		}),
		ShapeShared: withPost(base, func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(own.NewShared(asBase(v), closeIfCloser[B]))
		}),
		ShapeUnique: withPost(base, func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(own.NewUnique(asBase(v), closeIfCloser[B]))
		}),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for s := range byShape {
		if err := f.ensurePartition(s, sig).collides(id, witness); err != nil {
			return err
		}
	}
	for s, p := range byShape {
		if err := f.ensurePartition(s, sig).insert(id, p); err != nil {
			return err
		}
	}
	return nil
}

func withPost(p producer, post func(reflect.Value) reflect.Value) producer {
	p.post = post
	return p
}

// RegisterFunc registers an explicit producer callable under key. The
// callable's first result type selects exactly one partition:
//
//   - *own.Shared[B] → shared
//   - *own.Unique[B] → unique
//   - a pointer type assignable to B → pointer
//   - any other type assignable to B → value
//
// An optional trailing error result is allowed. Explicit callables are never
// multiplexed across shapes.
func (f *Factory[B, K]) RegisterFunc(key K, callable any) error {
	fn := reflect.ValueOf(callable)
	hasErr, err := validateCallable(fn, "producer")
	if err != nil {
		return err
	}
	ft := fn.Type()

	shape, err := f.classify(ft.Out(0))
	if err != nil {
		return err
	}

	p := producer{fn: fn, hasErr: hasErr, witness: witnessOf(key)}
	sig := signatureOfFunc(ft)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ensurePartition(shape, sig).insert(f.hash(key), p)
}

// classify maps a declared result type onto a storage shape.
func (f *Factory[B, K]) classify(out reflect.Type) (Shape, error) {
	switch {
	case out == f.sharedT:
		return ShapeShared, nil
	case out == f.uniqueT:
		return ShapeUnique, nil
	case out.AssignableTo(f.base):
		if out.Kind() == reflect.Ptr {
			return ShapePointer, nil
		}
		return ShapeValue, nil
	default:
		return 0, errors.NewInvalidProducerError(out.String(),
			fmt.Sprintf("result not assignable to base type %s", f.base))
	}
}

// validateCallable checks the common callable constraints and reports whether
// a trailing error result is present.
func validateCallable(fn reflect.Value, kind string) (bool, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return false, errors.NewInvalidProducerError(fmt.Sprintf("%v", fn), kind+" is not a function")
	}
	if fn.IsNil() {
		return false, errors.NewInvalidProducerError(fn.Type().String(), kind+" is nil")
	}
	ft := fn.Type()
	if ft.IsVariadic() {
		return false, errors.NewInvalidProducerError(ft.String(), "variadic "+kind+"s are not supported")
	}
	switch ft.NumOut() {
	case 1:
		return false, nil
	case 2:
		if ft.Out(1) != errType {
			return false, errors.NewInvalidProducerError(ft.String(), "second result must be error")
		}
		return true, nil
	default:
		return false, errors.NewInvalidProducerError(ft.String(), kind+" must return one result plus optional error")
	}
}

// identity resolves the effective (id, witness) for a concrete type
// registration with an optional explicit key.
func (f *Factory[B, K]) identity(ct reflect.Type, key ...K) (uint64, string) {
	if len(key) > 0 {
		return f.hash(key[0]), witnessOf(key[0])
	}
	return typeID(ct), typeName(ct)
}

// Alias copies every entry registered under src, across all shapes and
// signatures, to dst. Aliasing copies producers rather than delegating
// through the instantiation API, which would deadlock under the factory
// lock. Returns a miss when src has no entries at all.
func (f *Factory[B, K]) Alias(dst, src K) error {
	srcID, dstID := f.hash(src), f.hash(dst)
	dstWitness := witnessOf(dst)

	f.mu.Lock()
	defer f.mu.Unlock()

	found := false
	for s := range f.stores {
		for _, m := range f.stores[s] {
			p, ok := m.find(srcID)
			if !ok {
				continue
			}
			p.witness = dstWitness
			if err := m.insert(dstID, p); err != nil {
				return err
			}
			found = true
		}
	}
	if !found {
		return &errors.MissError{Key: witnessOf(src)}
	}
	return nil
}
