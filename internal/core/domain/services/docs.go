// Package services provides the pure pricing and billing computations around the
// Order aggregate.
//
// The package includes:
//   - KotBuilder: turns a list of client supplied items into a priced KOT line
//   - BillAggregator: merges the KOT lines of an order into one consolidated bill
//
// Neither service keeps state; identical input always yields identical output.
package services
