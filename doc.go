/*
Package sfactory provides a process-wide object-construction registry:
independent pieces of code register how to build a value conforming to a base
type under a key, and other code later builds one by key or by type identity
without knowing which concrete producer runs.

Producers are classified into four result shapes, each an isolated id space
with its own calling convention:

  - value: the producer returns a value assignable to the base type
  - pointer: the producer returns a pointer to a concrete subtype
  - shared: the producer returns a reference-counted own.Shared handle
  - unique: the producer returns a single-owner own.Unique handle

Within a shape, entries are partitioned by the producer's argument signature
and kept in insertion order, which the TryMake family relies on to attempt
speculatively registered alternatives until one works.

Basic Usage:

	type Codec interface {
	    Name() string
	}

	f := sfactory.For[Codec]()

	// Register a concrete type; *jsonCodec satisfies Codec, so producers
	// land in the pointer, shared, and unique partitions.
	sfactory.RegisterType[jsonCodec](f, "json")

	// Register an explicit producer.
	f.RegisterFunc("strict", func() Codec { return newStrictCodec() })

	// Build by key.
	c, err := f.MakePtr("json")

	// Build by type identity, narrowed to the concrete type.
	jc, err := sfactory.PtrOf[jsonCodec](f)

	// Best-available: first registered producer that succeeds.
	c, err = f.TryMakePtr()

Re-registering a key overwrites the prior producer in place; distinct keys
that hash to the same id are rejected at registration time. Entries are never
removed: the registries returned by For live for the process lifetime.

Concurrency: every factory operation, including producer invocation, runs
under one coarse lock. A producer that re-enters the same factory deadlocks
by contract; producers must not register or build through the factory that
invoked them.
*/
package sfactory
