package interfaces

import (
	"context"
	"orcamentos/internal/domain/entities"
)

// ICatalogRepository abstracts DynamoDB persistence for service groups and
// services (sub-services are embedded in their service).

type ICatalogRepository interface {
	CreateGroup(ctx context.Context, g entities.ServiceGroup) (entities.ServiceGroup, error)
	GetGroup(ctx context.Context, id string) (entities.ServiceGroup, error)
	GetGroupByCode(ctx context.Context, code string) (entities.ServiceGroup, error)
	ListGroups(ctx context.Context) ([]entities.ServiceGroup, error)
	UpdateGroup(ctx context.Context, g entities.ServiceGroup) (entities.ServiceGroup, error)
	DeleteGroup(ctx context.Context, id string) (bool, error)

	CreateService(ctx context.Context, s entities.Service) (entities.Service, error)
	GetService(ctx context.Context, id string) (entities.Service, error)
	ListServices(ctx context.Context) ([]entities.Service, error)
	ListServicesByGroup(ctx context.Context, groupID string) ([]entities.Service, error)
	UpdateService(ctx context.Context, s entities.Service) (entities.Service, error)
	SoftDeleteService(ctx context.Context, id string) (bool, error)
	SoftDeleteAllServices(ctx context.Context) (int, error)
}
