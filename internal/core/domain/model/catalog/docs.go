// Package catalog provides the catalog item aggregate: the printable services
// ("jobs") a lab offers, each with a unit price and an optional image.
//
// Key business rules:
//   - Names are required and at most 100 characters
//   - Prices are positive integers in minor currency units
//   - Items are never hard-deleted; a deleted item disappears from listings
//     and cannot be added to a draft, but remains readable by existing line items
package catalog
