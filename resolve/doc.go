// Package resolve looks up values inside arbitrary Go values by key.
//
// A key is either an integer index or a dot-separated string path. Each path
// segment is resolved against the result of the previous one, starting from
// the source object, by trying two capabilities in a fixed order:
//
//  1. keyed access (maps, slices, arrays, Keyed implementations, structpb values)
//  2. named access (struct fields, zero-argument methods, protobuf fields,
//     Named implementations)
//
// Integer keys use keyed access only and are never split.
//
// # Failure
//
// Resolution never fails. When a segment cannot be found by either capability
// the caller-supplied default is returned. Marshalers pass a fresh *Sentinel as
// the default so that "not found" can be told apart from every real value,
// nil included:
//
//	missing := resolve.NewSentinel()
//	v := resolve.Resolve("owner.address.city", order, missing)
//	if v == missing {
//		// not found
//	}
//
// Keys that are neither integers nor strings resolve to nil rather than to
// the default; Supported reports which keys are accepted.
//
// # Struct members
//
// Named access on structs matches, in order: the exact exported field name, a
// `marshal:"name"` tag, a `json:"name"` tag, and finally a folded comparison that
// ignores case and the separators '_', '-' and ' ', so "created_at" finds
// CreatedAt. Methods without arguments returning one value are matched the same
// way after fields.
package resolve
