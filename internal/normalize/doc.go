// Package normalize reduces loosely typed upstream results to JSON-safe
// values and a uniform pagination contract.
//
// ToSerializable walks arbitrary object graphs (structs, maps, slices,
// pointers, enumerations) and produces plain JSON values. Reference cycles
// are cut with CircularReference and nesting beyond MaxDepth collapses to
// text.
//
// ExtractPage classifies a raw result (see Shape) and returns its
// continuation token together with at most a bounded number of items.
package normalize
