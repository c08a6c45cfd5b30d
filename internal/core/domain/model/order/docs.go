// Package order provides the Order aggregate for restaurant table sessions.
//
// The package includes:
//   - Order: the aggregate root holding the table, the KOT lines and the billing status
//   - KotLine: one priced round of ordering (Kitchen Order Ticket)
//   - LineItem: a single menu item with quantity and unit price
//   - Status: the billing state machine
//
// Key business rules:
//   - Orders open at Confirmed; KOT lines can only be appended while Confirmed
//   - Status follows Pending/Confirmed -> Finalized -> Paid, with Cancelled reachable
//     from every non-terminal status
//   - Each KOT line carries 5% GST on its subtotal, computed in integer minor units
//   - paidAt is stamped by the transition to Paid and by nothing else
package order
