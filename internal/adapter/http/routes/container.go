package routes

import (
	"orcamentos/internal/adapter/persistence/repository"
	"orcamentos/internal/infrastructure/auth"
	"orcamentos/internal/infrastructure/config"
	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase"
)

// Container holds the use cases wired to their DynamoDB repositories.
type Container struct {
	Orders    *usecase.OrderUseCase
	Clients   *usecase.ClientUseCase
	Factors   *usecase.FactorUseCase
	Catalog   *usecase.CatalogUseCase
	Users     *usecase.UserUseCase
	Auth      *usecase.AuthUseCase
	Dashboard *usecase.DashboardUseCase
	Setup     *usecase.SetupUseCase
}

func NewContainer(ddb database.DynamoDBAPI, cfg *config.Config) *Container {
	t := cfg.Tables

	orderRepo := repository.NewOrderDynamoRepository(ddb, t.Orders, t.Counters)
	clientRepo := repository.NewClientDynamoRepository(ddb, t.Clients)
	factorRepo := repository.NewFactorDynamoRepository(ddb, t.Factors, t.Counters)
	catalogRepo := repository.NewCatalogDynamoRepository(ddb, t.ServiceGroups, t.Services)
	userRepo := repository.NewUserDynamoRepository(ddb, t.Users)

	catalog := usecase.NewCatalogUseCase(catalogRepo, factorRepo)
	users := usecase.NewUserUseCase(userRepo)

	return &Container{
		Orders:    usecase.NewOrderUseCase(orderRepo, clientRepo, catalogRepo, factorRepo),
		Clients:   usecase.NewClientUseCase(clientRepo, factorRepo),
		Factors:   usecase.NewFactorUseCase(factorRepo, clientRepo),
		Catalog:   catalog,
		Users:     users,
		Auth:      usecase.NewAuthUseCase(userRepo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)),
		Dashboard: usecase.NewDashboardUseCase(orderRepo),
		Setup:     usecase.NewSetupUseCase(catalog, users),
	}
}
