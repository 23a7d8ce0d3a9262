/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrRegistryMiss is returned when a key or type identity resolves to no producer
	ErrRegistryMiss = errors.New("registry miss")

	// ErrNoneAvailable is returned when a fallback trial has no producer to attempt
	// and no default value can be constructed
	ErrNoneAvailable = errors.New("no registry available")

	// ErrInvalidProducer is returned when a producer cannot be classified against
	// the factory's base type
	ErrInvalidProducer = errors.New("invalid producer")

	// ErrKeyCollision is returned when two distinct keys hash to the same id
	ErrKeyCollision = errors.New("key hash collision")

	// ErrBadArgument is returned when a call argument cannot be resolved to a
	// signature partition
	ErrBadArgument = errors.New("bad argument")

	// ErrWrongType is returned when a produced value cannot be narrowed to the
	// requested concrete type
	ErrWrongType = errors.New("wrong concrete type")
)

// MissError reports a lookup that resolved to no producer in its partition
type MissError struct {
	Shape     string
	Key       string
	Signature string
}

func (e *MissError) Error() string {
	if e.Shape == "" {
		return fmt.Sprintf("no producer registered for key %q", e.Key)
	}
	return fmt.Sprintf("no %s producer registered for key %q with signature %s", e.Shape, e.Key, e.Signature)
}

func (e *MissError) Is(target error) bool {
	return target == ErrRegistryMiss
}

// NoneAvailableError reports a fallback trial with nothing usable to attempt
type NoneAvailableError struct {
	Shape     string
	Signature string
}

func (e *NoneAvailableError) Error() string {
	return fmt.Sprintf("no %s producer available for signature %s", e.Shape, e.Signature)
}

func (e *NoneAvailableError) Is(target error) bool {
	return target == ErrNoneAvailable
}

// InvalidProducerError reports a producer that failed shape classification
type InvalidProducerError struct {
	Producer string
	Reason   string
}

func (e *InvalidProducerError) Error() string {
	return fmt.Sprintf("producer %s rejected: %s", e.Producer, e.Reason)
}

func (e *InvalidProducerError) Is(target error) bool {
	return target == ErrInvalidProducer
}

// KeyCollisionError reports two distinct keys hashing to the same numeric id
type KeyCollisionError struct {
	Key      string
	Existing string
	ID       uint64
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("key %q collides with registered key %q (id %#x)", e.Key, e.Existing, e.ID)
}

func (e *KeyCollisionError) Is(target error) bool {
	return target == ErrKeyCollision
}

// BadArgumentError reports a call argument that cannot select a partition
type BadArgumentError struct {
	Index  int
	Reason string
}

func (e *BadArgumentError) Error() string {
	return fmt.Sprintf("argument %d: %s", e.Index, e.Reason)
}

func (e *BadArgumentError) Is(target error) bool {
	return target == ErrBadArgument
}

// WrongTypeError reports a failed narrowing of a produced value
type WrongTypeError struct {
	Want string
	Got  string
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("produced value is %s, not %s", e.Got, e.Want)
}

func (e *WrongTypeError) Is(target error) bool {
	return target == ErrWrongType
}

// Helper functions for creating errors

// NewMissError creates a new MissError
func NewMissError(shape, key, signature string) error {
	return &MissError{Shape: shape, Key: key, Signature: signature}
}

// NewNoneAvailableError creates a new NoneAvailableError
func NewNoneAvailableError(shape, signature string) error {
	return &NoneAvailableError{Shape: shape, Signature: signature}
}

// NewInvalidProducerError creates a new InvalidProducerError
func NewInvalidProducerError(producer, reason string) error {
	return &InvalidProducerError{Producer: producer, Reason: reason}
}

// NewKeyCollisionError creates a new KeyCollisionError
func NewKeyCollisionError(key, existing string, id uint64) error {
	return &KeyCollisionError{Key: key, Existing: existing, ID: id}
}

// NewBadArgumentError creates a new BadArgumentError
func NewBadArgumentError(index int, reason string) error {
	return &BadArgumentError{Index: index, Reason: reason}
}

// NewWrongTypeError creates a new WrongTypeError
func NewWrongTypeError(want, got string) error {
	return &WrongTypeError{Want: want, Got: got}
}

// IsRegistryMiss checks if an error is a registry miss
func IsRegistryMiss(err error) bool {
	return errors.Is(err, ErrRegistryMiss)
}

// IsNoneAvailable checks if an error reports an exhausted or empty fallback trial
func IsNoneAvailable(err error) bool {
	return errors.Is(err, ErrNoneAvailable)
}

// IsInvalidProducer checks if an error reports a rejected producer
func IsInvalidProducer(err error) bool {
	return errors.Is(err, ErrInvalidProducer)
}

// IsKeyCollision checks if an error reports a key hash collision
func IsKeyCollision(err error) bool {
	return errors.Is(err, ErrKeyCollision)
}
