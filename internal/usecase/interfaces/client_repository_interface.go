package interfaces

import (
	"context"
	"orcamentos/internal/domain/entities"
)

// IClientRepository abstracts DynamoDB persistence for Client.

type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	GetByDocument(ctx context.Context, document string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
	Update(ctx context.Context, c entities.Client) (entities.Client, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}
