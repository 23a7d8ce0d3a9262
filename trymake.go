/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sfactory

import (
	"reflect"

	"github.com/suparena/sfactory/errors"
	"github.com/suparena/sfactory/own"
)

// tryResolve attempts every producer in the (shape, signature) partition in
// insertion order, passing args to each. usable decides whether a non-error
// result counts as success (handle shapes reject nil handles). The last
// producer error is returned when every attempt failed; with nothing usable
// to attempt and no failures observed, the result is ErrNoneAvailable.
func (f *Factory[B, K]) tryResolve(s Shape, args []any, usable func(reflect.Value) bool) (reflect.Value, error) {
	sig, vals, err := signatureOfArgs(args)
	if err != nil {
		return reflect.Value{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var lastErr error
	if m := f.partition(s, sig); m != nil {
		for _, e := range m.entries {
			out, err := e.p.call(vals)
			if err != nil {
				lastErr = err
				continue
			}
			if !usable(out) {
				continue
			}
			return out, nil
		}
	}
	if lastErr != nil {
		return reflect.Value{}, lastErr
	}
	return reflect.Value{}, errors.NewNoneAvailableError(s.String(), sig)
}

func anyResult(reflect.Value) bool { return true }

func nonNilResult(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}

// TryMake attempts every value producer registered for the argument
// signature, in insertion order, and returns the first result. If every
// attempt fails, the last producer error is returned unchanged. If there was
// nothing to attempt, a non-interface base type yields its zero value; an
// interface base type has no default and reports ErrNoneAvailable.
func (f *Factory[B, K]) TryMake(args ...any) (B, error) {
	var zero B
	out, err := f.tryResolve(ShapeValue, args, anyResult)
	if err != nil {
		if errors.IsNoneAvailable(err) && f.base.Kind() != reflect.Interface {
			return zero, nil
		}
		return zero, err
	}
	return f.asBase(out), nil
}

// TryMakePtr attempts every pointer producer for the argument signature and
// returns the first non-nil instance. Producers returning a nil pointer are
// skipped without recording a failure.
func (f *Factory[B, K]) TryMakePtr(args ...any) (B, error) {
	var zero B
	out, err := f.tryResolve(ShapePointer, args, nonNilResult)
	if err != nil {
		return zero, err
	}
	return f.asBase(out), nil
}

// TryMakeShared attempts every shared producer for the argument signature
// and returns the first non-nil handle.
func (f *Factory[B, K]) TryMakeShared(args ...any) (*own.Shared[B], error) {
	out, err := f.tryResolve(ShapeShared, args, nonNilResult)
	if err != nil {
		return nil, err
	}
	h, _ := out.Interface().(*own.Shared[B])
	return h, nil
}

// TryMakeUnique attempts every unique producer for the argument signature
// and returns the first non-nil handle.
func (f *Factory[B, K]) TryMakeUnique(args ...any) (*own.Unique[B], error) {
	out, err := f.tryResolve(ShapeUnique, args, nonNilResult)
	if err != nil {
		return nil, err
	}
	h, _ := out.Interface().(*own.Unique[B])
	return h, nil
}
