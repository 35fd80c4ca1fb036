// Package fields provides ready-made marshal.Field implementations.
//
// Every field treats a value that could not be resolved (a resolve sentinel) as
// missing: the WithDefault value is serialized instead when one is set, otherwise
// the output is nil. A nil value serializes to nil.
//
// Scalar fields convert their input with primitive.Convert, limited to the
// categories given by WithCategories, and report unconvertible input as a
// *marshal.ValidationError with a fixed message.
package fields
