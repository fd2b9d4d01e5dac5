package routes

import (
	"context"
	"os"
	"strconv"

	_ "os_service_api/docs" // This will be auto-generated
	"os_service_api/internal/adapter/http/handlers"
	repository2 "os_service_api/internal/adapter/persistence/repository"
	"os_service_api/internal/infrastructure/database"
	"os_service_api/internal/infrastructure/notification"
	"os_service_api/internal/infrastructure/payments"
	"os_service_api/internal/listeners"
	"os_service_api/internal/usecase"
	"os_service_api/internal/usecase/interfaces"
	"os_service_api/pkg/eventbus"
	"os_service_api/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	log := logger.New()
	defer log.Sync()

	setMiddlewares(log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(log)

	if err := router.Run(":" + strconv.Itoa(PORT)); err != nil {
		log.Fatal("failed to start the application", zap.Error(err))
	}
}

func getRoutes(log *zap.Logger) {
	ddb, err := database.ConnectDynamoDB(context.Background())
	if err != nil {
		log.Fatal("failed to create dynamodb client", zap.Error(err))
	}

	orderRepo := repository2.NewServiceOrderDynamoRepository(ddb)
	sequenceRepo := repository2.NewOrderSequenceDynamoRepository(ddb)
	clientRepo := repository2.NewClientDynamoRepository(ddb)
	techRepo := repository2.NewTechnicianDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	bus := eventbus.New(log)
	notifier := notification.NewWebhookNotifier(os.Getenv("NOTIFIER_WEBHOOK_URL"), log)
	listeners.NewNotificationListener(notifier, log).Register(bus)

	orderUseCase := usecase.NewServiceOrderUseCase(orderRepo, sequenceRepo, clientRepo, techRepo, bus, log)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), log)
	if err != nil {
		log.Warn("mercado pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mpGateway
	}
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, paymentGateway, log)

	orderHandler := handlers.NewServiceOrderHandler(orderUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addServiceOrderRoutes(v1, orderHandler, paymentHandler)
}

func setMiddlewares(log *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(500)
	}))
}
