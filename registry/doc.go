// Package registry maps Go types to the functions that encode and decode them.
//
// A Registry holds, per type, four slots: plain write, plain read, delta write
// and delta read. Each slot remembers whether it was filled by generated code
// (Generated) or by hand (Custom).
//
// # Override policy
//
// The first registration for a slot always wins. A later registration replaces
// it only while the slot is still Generated; once a Custom function is stored
// the slot is fixed for the life of the Registry and later calls are ignored.
//
// Installing a Custom plain write or read function also drops any Generated
// delta functions for the same type, since they were derived from the plain
// encoding being replaced. Until a new delta codec is registered, delta calls
// for that type fall back to the plain codec.
//
// # Dispatch
//
// Write, Read, WriteDelta and ReadDelta look up the function for T on every
// call. WriteSlice, WriteMap and WritePtr dispatch every element the same way.
// A missing registration is logged, counted and yields the zero value; it
// never panics.
//
// # Concurrency
//
// Lookups are safe from any goroutine. Registration takes an internal lock, but
// callers are expected to finish registering before encoding starts.
package registry
