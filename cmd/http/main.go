package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/delivery/http/controllers"
	"preauth-service/internal/app/delivery/http/handlers"
	"preauth-service/internal/app/delivery/http/middlewares"
	"preauth-service/internal/app/delivery/http/routers"
	"preauth-service/internal/app/drivers/database"
	"preauth-service/internal/app/drivers/logger"
	"preauth-service/internal/app/drivers/messaging"
	"preauth-service/internal/app/drivers/storage"
	"preauth-service/internal/app/services/core/analysis"
	"preauth-service/internal/app/services/core/cases"
	"preauth-service/internal/app/services/core/documents"
	"preauth-service/internal/app/services/core/evidence"
	"preauth-service/internal/app/services/shared/events"
	"preauth-service/internal/app/services/shared/hub"
	"preauth-service/internal/app/services/shared/locker"
	sharedredis "preauth-service/internal/app/services/shared/redis"
	sharedstorage "preauth-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogrus(internalConfig)
	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Info("server started", zap.String("address", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Error closing drivers: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	// Shared infrastructure
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	eventPublisher, err := events.NewRabbitMQPublisher(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.Notification.CaseEventQueue,
		bootstrap.Logger,
	)
	if err != nil {
		logrus.Fatalf("Error declaring case-event queue: %v", err)
	}

	notificationHub := hub.NewHub(bootstrap.InternalConfig.Notification.ClientQueueSize, bootstrap.Logger)
	bootstrap.HubStop = notificationHub.Stop
	caseNotifier := hub.NewCaseNotifier(notificationHub, eventPublisher, bootstrap.Logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	bootstrap.Router.Use(middlewares.RequestIDMiddleware)
	bootstrap.Router.Use(middlewares.Logging(bootstrap.Logger))

	// Evidence and reasoning
	retrieverClient := evidence.NewRetrieverHttpClient(bootstrap.InternalConfig.Retriever, bootstrap.Logger)
	evidenceGatherer := evidence.NewEvidenceGatherer(
		retrieverClient,
		redisRepository,
		bootstrap.InternalConfig.Retriever,
		bootstrap.InternalConfig.App,
		bootstrap.Logger,
	)
	reasoningClient := analysis.NewReasoningHttpClient(bootstrap.InternalConfig.Reasoning, bootstrap.Logger)

	// Cases
	caseRepository := cases.NewCaseMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	caseUsecase := cases.NewCaseUsecase(
		caseRepository,
		evidenceGatherer,
		reasoningClient,
		lockService,
		caseNotifier,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	caseController := controllers.NewCaseController(bootstrap.Logger, caseUsecase, bootstrap.InternalConfig.App.RequestTimeoutInSeconds)

	// Documents
	minioClient := storage.NewMinio(bootstrap.DriverConfig)
	objectStorage := sharedstorage.NewMinioStorage(minioClient)
	documentUsecase := documents.NewDocumentUsecase(objectStorage, bootstrap.DriverConfig.Minio.BucketName, bootstrap.Logger)
	documentController := controllers.NewDocumentController(
		bootstrap.Logger,
		documentUsecase,
		bootstrap.InternalConfig.App.DocumentMaxUploadSizeInMB,
		bootstrap.InternalConfig.App.RequestTimeoutInSeconds,
	)

	// Notifications
	webSocketHandler := handlers.NewWebSocketHandler(notificationHub, bootstrap.Logger)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		caseController,
		documentController,
		webSocketHandler,
	)
}
