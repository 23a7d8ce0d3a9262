/*
Package own provides explicit ownership handles for values produced by a
factory registry.

Go's garbage collector manages memory, so these handles track a different
resource: the right to run a value's finalizer (typically Close) exactly once,
at a well-defined point.

Shared Handles:
A Shared[T] is reference counted. Clone acquires, Release drops; the finalizer
runs when the last holder releases:

	h := own.NewShared(conn, func(c *Conn) { c.Close() })
	h2 := h.Clone()     // refs == 2
	h.Release()         // refs == 1, conn still open
	h2.Release()        // refs == 0, conn closed

Unique Handles:
A Unique[T] has exactly one owner. Ownership transfers with Move; Release
destroys the value:

	u := own.NewUnique(f, func(f *os.File) { f.Close() })
	u2 := u.Move()      // u is now invalid
	u2.Release()        // file closed

Narrowing:
CastShared and CastUnique convert a handle over a base type into a handle
over a concrete type. Shared casts share the original reference count;
Unique casts move ownership into the narrowed handle.

The handles are not safe for concurrent mutation of a single handle value;
distinct Shared views of one value may be used from different goroutines.
*/
package own
