/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	"fmt"
	"reflect"

	"github.com/suparena/sfactory/errors"
	"github.com/suparena/sfactory/own"
)

// asBase converts a producer result into a B. Assignability was established
// at classification time.
func (f *Factory[B, K]) asBase(v reflect.Value) B {
	var zero B
	if !v.IsValid() {
		return zero
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return zero
	}
	bv := reflect.New(f.base).Elem()
	bv.Set(v)
	b, _ := bv.Interface().(B)
	return b
}

// resolve performs the common id → producer → invocation step for one shape.
// The producer runs with the factory lock held.
func (f *Factory[B, K]) resolve(s Shape, id uint64, key string, args []any) (reflect.Value, error) {
	sig, vals, err := signatureOfArgs(args)
	if err != nil {
		return reflect.Value{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(s, sig, id)
	if !ok {
		return reflect.Value{}, errors.NewMissError(s.String(), key, sig)
	}
	return p.call(vals)
}

// Make builds a value of the base type registered under key. The arguments
// select the signature partition; their types must match the producer's
// parameter list exactly. Producer errors propagate unchanged.
func (f *Factory[B, K]) Make(key K, args ...any) (B, error) {
	return f.makeValue(f.hash(key), witnessOf(key), args)
}

func (f *Factory[B, K]) makeValue(id uint64, key string, args []any) (B, error) {
	out, err := f.resolve(ShapeValue, id, key, args)
	if err != nil {
		var zero B
		return zero, err
	}
	return f.asBase(out), nil
}

// MakePtr builds an instance registered under key in the pointer partition.
// The returned B's dynamic type is the concrete pointer; the garbage
// collector owns the allocation.
func (f *Factory[B, K]) MakePtr(key K, args ...any) (B, error) {
	return f.makePointer(f.hash(key), witnessOf(key), args)
}

func (f *Factory[B, K]) makePointer(id uint64, key string, args []any) (B, error) {
	out, err := f.resolve(ShapePointer, id, key, args)
	if err != nil {
		var zero B
		return zero, err
	}
	return f.asBase(out), nil
}

// MakeShared builds a reference-counted handle registered under key. The
// caller holds one reference and releases it when done.
func (f *Factory[B, K]) MakeShared(key K, args ...any) (*own.Shared[B], error) {
	return f.makeShared(f.hash(key), witnessOf(key), args)
}

func (f *Factory[B, K]) makeShared(id uint64, key string, args []any) (*own.Shared[B], error) {
	out, err := f.resolve(ShapeShared, id, key, args)
	if err != nil {
		return nil, err
	}
	h, _ := out.Interface().(*own.Shared[B])
	return h, nil
}

// MakeUnique builds a single-owner handle registered under key. Ownership
// transfers to the caller on return.
func (f *Factory[B, K]) MakeUnique(key K, args ...any) (*own.Unique[B], error) {
	return f.makeUnique(f.hash(key), witnessOf(key), args)
}

func (f *Factory[B, K]) makeUnique(id uint64, key string, args []any) (*own.Unique[B], error) {
	out, err := f.resolve(ShapeUnique, id, key, args)
	if err != nil {
		return nil, err
	}
	h, _ := out.Interface().(*own.Unique[B])
	return h, nil
}

// MakeOf builds a value of the base type using concrete type C's identity as
// the key. C must have been registered without an explicit key.
func MakeOf[C any, B any, K comparable](f *Factory[B, K], args ...any) (B, error) {
	ct := reflect.TypeOf((*C)(nil)).Elem()
	return f.makeValue(typeID(ct), typeName(ct), args)
}

// PtrOf builds an instance by C's type identity and narrows the result to
// *C. The narrowing is safe because the identity match guarantees which
// producer ran; a mismatch reports ErrWrongType.
func PtrOf[C any, B any, K comparable](f *Factory[B, K], args ...any) (*C, error) {
	ct := reflect.TypeOf((*C)(nil)).Elem()
	b, err := f.makePointer(typeID(ct), typeName(ct), args)
	if err != nil {
		return nil, err
	}
	p, ok := any(b).(*C)
	if !ok {
		return nil, errors.NewWrongTypeError("*"+typeName(ct), fmt.Sprintf("%T", b))
	}
	return p, nil
}

// SharedOf builds a shared handle by C's type identity, narrowed to the
// concrete pointer type. The narrowed handle shares the reference count with
// any other views of the same value.
func SharedOf[C any, B any, K comparable](f *Factory[B, K], args ...any) (*own.Shared[*C], error) {
	ct := reflect.TypeOf((*C)(nil)).Elem()
	h, err := f.makeShared(typeID(ct), typeName(ct), args)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	narrowed, ok := own.CastShared[*C](h)
	if !ok {
		wrong := fmt.Sprintf("%T", h.Value())
		h.Release()
		return nil, errors.NewWrongTypeError("*"+typeName(ct), wrong)
	}
	h.Release()
	return narrowed, nil
}

// UniqueOf builds a unique handle by C's type identity, narrowed to the
// concrete pointer type. Ownership moves into the narrowed handle.
func UniqueOf[C any, B any, K comparable](f *Factory[B, K], args ...any) (*own.Unique[*C], error) {
	ct := reflect.TypeOf((*C)(nil)).Elem()
	h, err := f.makeUnique(typeID(ct), typeName(ct), args)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	narrowed, ok := own.CastUnique[*C](h)
	if !ok {
		wrong := fmt.Sprintf("%T", h.Value())
		h.Release()
		return nil, errors.NewWrongTypeError("*"+typeName(ct), wrong)
	}
	return narrowed, nil
}
