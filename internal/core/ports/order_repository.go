// Package ports defines the contracts between the order use cases and the
// infrastructure that stores, numbers and announces orders.
package ports

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its KOT lines.
	// The order identifier must not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	//
	// The write only succeeds if the stored version still equals aggregate.Version();
	// it then stores the next version and calls aggregate.AdvanceVersion().
	// Returns ObjectNotFoundError if the order is gone and VersionConflictError if
	// another writer stored a newer version first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its KOT lines in chronological order.
	// Returns ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// List retrieves all orders, newest createdAt first.
	List(ctx context.Context) ([]*order.Order, error)

	// Delete removes the order and its KOT lines.
	// Returns ObjectNotFoundError for an unknown id.
	Delete(ctx context.Context, id kernel.OrderID) error
}
