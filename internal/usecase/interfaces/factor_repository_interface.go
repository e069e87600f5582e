package interfaces

import (
	"context"
	"orcamentos/internal/domain/entities"
)

// IFactorRepository abstracts DynamoDB persistence for Factor.
//
// Create assigns Factor.Code (and the sub-item codes derived from it) inside
// the transaction that writes the factor.

type IFactorRepository interface {
	Create(ctx context.Context, f entities.Factor) (entities.Factor, error)
	GetByID(ctx context.Context, id string) (entities.Factor, error)
	List(ctx context.Context) ([]entities.Factor, error)
	Update(ctx context.Context, f entities.Factor) (entities.Factor, error)
	Delete(ctx context.Context, id string) (bool, error)
}
