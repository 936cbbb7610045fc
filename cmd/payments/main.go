package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/paylane/paylane/internal/pkg/config"
	"github.com/paylane/paylane/internal/pkg/database"
	"github.com/paylane/paylane/internal/pkg/health"
	"github.com/paylane/paylane/internal/pkg/logger"
	nsqpkg "github.com/paylane/paylane/internal/pkg/nsq"
	"github.com/paylane/paylane/internal/pkg/server"
	"github.com/paylane/paylane/services/payments"
	gwhttp "github.com/paylane/paylane/services/payments/gateway/http"
	gwnsq "github.com/paylane/paylane/services/payments/gateway/nsq"
	"github.com/paylane/paylane/services/payments/handler"
	httpHandler "github.com/paylane/paylane/services/payments/handler/http"
	"github.com/paylane/paylane/services/payments/repository"
	"github.com/paylane/paylane/services/payments/usecase"
)

const appName = "payments-service"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NSQ producer when event publishing is enabled
	var eventGW payments.EventGW
	if configs.NSQ.Enabled {
		producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		defer producer.Stop()
		eventGW = gwnsq.NewEventsGW(producer)
	} else {
		zapLogger.Warn("NSQ disabled, payment events will not be published")
	}

	// Initialize repositories
	paymentRepo := repository.NewPaymentRepo(configs, postgresClient.GetDB())
	methodRepo := repository.NewMethodRepo(configs, postgresClient.GetDB())

	// Initialize gateways
	routingGW := gwhttp.NewRoutingClient(configs, redisClient)

	// Initialize usecase
	paymentsUC := usecase.NewPaymentsUC(configs, paymentRepo, methodRepo, routingGW, eventGW)

	// Initialize handlers
	paymentHandler := httpHandler.NewPaymentHandler(paymentsUC)
	methodHandler := httpHandler.NewMethodHandler(paymentsUC)
	routingHandler := httpHandler.NewRoutingHandler(paymentsUC)
	h := handler.NewHandler(paymentHandler, methodHandler, routingHandler, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logger.EchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version)
	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}
}
