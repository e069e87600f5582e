package routes

import (
	"orcamentos/internal/adapter/http/handlers"
	"orcamentos/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth          = "/auth"
	PathClients       = "/clients"
	PathFactors       = "/factors"
	PathServiceGroups = "/service-groups"
	PathServices      = "/services"
	PathOrders        = "/orders"
	PathDashboard     = "/dashboard"
	PathUsers         = "/users"
)

func addClientRoutes(rg *gin.RouterGroup, h *handlers.ClientHandler) {
	clients := rg.Group(PathClients)
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/:id", h.GetClient)
		clients.PATCH("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

func addFactorRoutes(rg *gin.RouterGroup, h *handlers.FactorHandler) {
	factors := rg.Group(PathFactors)
	{
		factors.GET("", h.ListFactors)
		factors.POST("", h.CreateFactor)
		factors.GET("/:id", h.GetFactor)
		factors.PUT("/:id", h.UpdateFactor)
		factors.DELETE("/:id", h.DeleteFactor)
	}
}

func addCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler) {
	groups := rg.Group(PathServiceGroups)
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.PATCH("/:id", h.UpdateGroup)
		groups.DELETE("/:id", h.DeleteGroup)
	}

	services := rg.Group(PathServices)
	{
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.DELETE("", middleware.RequireAdmin(), h.DeleteAllServices)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.DELETE("", middleware.RequireAdmin(), h.DeleteAllOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
		orders.GET("/:id/export.csv", h.ExportOrder)
	}
}

func addDashboardRoutes(rg *gin.RouterGroup, h *handlers.DashboardHandler) {
	rg.GET(PathDashboard, h.GetDashboard)
}

// User permissions are checked by the use case: a standard user may still
// read and edit their own profile through /users/:id.
func addUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler) {
	users := rg.Group(PathUsers)
	{
		users.GET("", middleware.RequireAdmin(), h.ListUsers)
		users.POST("", middleware.RequireAdmin(), h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", middleware.RequireAdmin(), h.DeleteUser)
	}
}
