// Package kernel provides the primitives shared by every aggregate of the
// distribution domain.
//
// The package includes:
//   - UUID: identifier value object; its zero value is rejected by Validate
//   - Clock: the single source of "now" for deadline and timestamp logic
//
// Both are immutable and safe for concurrent use.
package kernel
