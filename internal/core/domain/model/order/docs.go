// Package order provides the Printing aggregate: a fabrication order that an
// author assembles as a draft cart, submits for moderation, and a moderator
// completes or rejects.
//
// The package includes:
//   - Printing: the aggregate root holding line items, timestamps and the total
//   - LineItem: a catalog item and a quantity
//   - Status: the closed state machine Draft -> Formed -> Complete | Rejected
//   - Decision: the moderator verdict accepted by Resolve
//
// Key business rules:
//   - Only a Draft printing accepts line item and name changes
//   - Adding an item already in the draft merges quantities
//   - Forming requires a display name; resolving requires the Formed status.
//     Both report every problem at once through errs.Problems
//   - The total price is the sum of quantity x current unit price, computed
//     when the printing is completed, never earlier
//   - Soft deletion is an administrative override accepted from any status
package order
