// Package assembly drives a settlement batch run: it walks the given
// invoice documents, turns their order tables into line items through the
// parsing package, groups the items per person and materializes one
// settlement invoice per distinct person before persisting everything in a
// single bulk write.
//
// The run is strictly sequential and all-or-nothing relative to in-memory
// state: nothing is written until every document has parsed and every item
// carries its invoice assignment. A fatal parse error therefore aborts the
// whole batch with no partial writes.
package assembly
