package interfaces

import (
	"context"
	"orcamentos/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Create assigns the sequential code inside the same transaction that writes
// the order. Lookups return a zero Order (ID == "") when nothing matches.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	Update(ctx context.Context, o entities.Order) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	SoftDeleteAll(ctx context.Context) (int, error)
}
