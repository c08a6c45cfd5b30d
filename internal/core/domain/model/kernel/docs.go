// Package kernel provides the value objects shared by the order model.
//
// The package includes:
//   - Money: currency held as integer minor units, with one decimal conversion rule
//   - BusinessDate: the restaurant calendar day that scopes the order sequence
//   - OrderID: the "ORD-YYYYMMDDNNN" identifier issued by the sequence generator
//
// All types are immutable values and safe for concurrent use.
package kernel
