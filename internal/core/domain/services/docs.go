// Package services provides domain services that work across the catalog and
// order aggregates.
//
// The package includes:
//   - PriceCalculator: applies the pricing rule to a printing's line items
//     using the catalog prices current at the moment of the call
package services
