// Package marshal turns objects into ordered mappings through tables of fields.
//
// A Table lists output names with the Field serializing each of them. For every
// entry, the name is looked up in the source object with package resolve and the
// resolved value, or a per-call sentinel when nothing was found, is handed to
// the field:
//
//	table := marshal.NewTable(
//		marshal.E("id", fields.Int()),
//		marshal.E("owner.email", fields.Email()),
//	)
//
//	res, err := marshal.Marshal(orders, table, true)
//	if err != nil {
//		// a serializer failed with something other than a validation error
//	}
//	for i, fe := range res.Report {
//		// validation failures of item i
//	}
//
// # Errors
//
// Serializers report bad values with a validation failure (ValidationError or
// any error implementing ValidationFailure). Those are collected per field name
// and never stop the call. Every other error aborts it: MarshalOne returns it
// annotated with the field name, batch mode additionally wraps it in an
// *ItemError carrying the item index.
//
// # Renaming
//
// Output keys are always the table names. Requests to rename them, through
// WithPrefix or a field implementing Renamer, fail with ErrRenameUnsupported
// before anything is serialized.
//
// # Batches
//
// With WithWorkers(n) for n > 1, batch items are serialized on a pool of n
// workers. Output order and error attribution are the same as in sequential
// mode; serializers must then be safe for concurrent use.
package marshal
