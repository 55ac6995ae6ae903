// Package kernel provides core domain primitives shared by the catalog and
// order models.
//
// The package includes:
//   - UUID: a value object for identifiers with validation and comparison
//   - Price and Quantity: positive integer value objects used by pricing
//   - Actor: the acting user as supplied by the identity layer
//   - Clock: an injectable time source for formation and completion timestamps
package kernel
