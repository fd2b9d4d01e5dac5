package routes

import (
	"os_service_api/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServiceOrders = "/service-orders"
)

func addServiceOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.ServiceOrderHandler, paymentHandler *handlers.PaymentHandler) {
	orders := rg.Group(PathServiceOrders)
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.GetByID)
		orders.PUT("/:id", orderHandler.Update)
		orders.DELETE("/:id", orderHandler.Delete)

		// Cobrança do orçamento aprovado.
		orders.POST("/:id/payments", paymentHandler.ChargeOrder)
		orders.GET("/:id/payments", paymentHandler.GetLatestByOrderID)
	}
}
