package routes

import (
	"context"
	"log"

	_ "orcamentos/docs" // swagger spec
	"orcamentos/internal/adapter/http/handlers"
	"orcamentos/internal/adapter/http/middleware"
	"orcamentos/internal/infrastructure/config"
	"orcamentos/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
	if err != nil {
		return err
	}

	router := NewRouter(NewContainer(ddb, cfg))

	log.Printf("[http][server] listening port=%s", cfg.Port)
	return router.Run(":" + cfg.Port)
}

// NewRouter builds the gin engine with every /v1 route.
func NewRouter(c *Container) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authHandler := handlers.NewAuthHandler(c.Auth)
	v1.POST(PathAuth+"/login", authHandler.Login)

	// Rotas autenticadas
	private := v1.Group("", middleware.Auth(c.Auth))
	private.GET(PathAuth+"/me", authHandler.Me)
	addClientRoutes(private, handlers.NewClientHandler(c.Clients))
	addFactorRoutes(private, handlers.NewFactorHandler(c.Factors))
	addCatalogRoutes(private, handlers.NewCatalogHandler(c.Catalog))
	addOrderRoutes(private, handlers.NewOrderHandler(c.Orders))
	addDashboardRoutes(private, handlers.NewDashboardHandler(c.Dashboard))
	addUserRoutes(private, handlers.NewUserHandler(c.Users))

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
