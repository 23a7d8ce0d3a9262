/*
Package errors provides semantic error types for the sfactory library.

The package defines common failure scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrRegistryMiss    = errors.New("registry miss")
	    ErrNoneAvailable   = errors.New("no registry available")
	    ErrInvalidProducer = errors.New("invalid producer")
	    ErrKeyCollision    = errors.New("key hash collision")
	    ErrBadArgument     = errors.New("bad argument")
	    ErrWrongType       = errors.New("wrong concrete type")
	)

Usage:

	// Check error type
	v, err := f.Make("cache")
	if err != nil {
	    if errors.IsRegistryMiss(err) {
	        // Nothing registered under "cache" for this signature
	        return fmt.Errorf("no cache backend configured: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewMissError("value", "cache", "()")
	err := errors.NewInvalidProducerError("func() int", "result not assignable to base type")

Producer failures are not part of this taxonomy: an error returned by a
registered producer propagates to the caller unchanged.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
