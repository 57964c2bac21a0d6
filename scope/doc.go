// Package scope implements the JSON-like data values that templates are
// rendered against.
//
// A [Value] is immutable. Arrays and objects share their backing storage
// between copies, so binding one array element under a new key costs O(1)
// regardless of document size. Object members keep document order.
//
// An [Env] chains values for nested repetition: paths are resolved in the
// innermost value that defines their first segment.
package scope
