package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"gopkg.in/natefinch/lumberjack.v2"

	"inventory-service/cache"
	"inventory-service/config"
	"inventory-service/handlers"
	"inventory-service/lock"
	"inventory-service/notifier"
	"inventory-service/repository"
	"inventory-service/services"
)

func main() {
	cfg := config.GetConfig()

	//logging
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	lumberjackLog := &lumberjack.Logger{
		Filename:  cfg.LogFile,
		MaxSize:   1,
		LocalTime: true,
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, lumberjackLog))
	defer func() {
		if err := lumberjackLog.Close(); err != nil {
			logger.WithFields(logrus.Fields{"path": "inventory/main"}).Error("Error closing log file:", err)
		}
	}()

	//Initialize the loggers we are going to use, with prefix and datetime for every log
	apiLogger := log.New(os.Stdout, "[inventory-api] ", log.LstdFlags)
	storeLogger := log.New(os.Stdout, "[inventory-store] ", log.LstdFlags)

	tracerProvider, err := NewTracerProvider(cfg.ServiceName, cfg.JaegerAddress)
	if err != nil {
		logger.Fatalf("JaegerTraceProvider failed to Initialize. Error :%s", err)
	}
	tracer := tracerProvider.Tracer(cfg.ServiceName)

	// Initialize context
	timeoutContext, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stores: in-memory by default, Cassandra + Mongo when configured
	var catalog repository.CatalogStore
	var backend repository.InventoryBackend
	var reservations repository.ReservationStore

	switch cfg.Store {
	case "cassandra":
		mongoconn := options.Client().ApplyURI(cfg.MongoURI)
		mongoclient, err := mongo.Connect(timeoutContext, mongoconn)
		if err != nil {
			logger.Fatal(err)
		}
		if err := mongoclient.Ping(timeoutContext, readpref.Primary()); err != nil {
			logger.Fatal(err)
		}
		logger.WithFields(logrus.Fields{"path": "inventory/main"}).Info("MongoDB successfully connected...")
		defer mongoclient.Disconnect(timeoutContext)

		catalog = repository.NewCatalogRepo(mongoclient.Database("inventory"), storeLogger)

		inventoryRepo, err := repository.NewInventoryRepo(cfg.CassDB, storeLogger)
		if err != nil {
			logger.Fatal(err)
		}
		defer inventoryRepo.CloseSession()
		inventoryRepo.CreateTables()

		reservationRepo, err := repository.NewReservationRepo(cfg.CassDB, storeLogger)
		if err != nil {
			logger.Fatal(err)
		}
		defer reservationRepo.CloseSession()
		reservationRepo.CreateTables()

		backend = inventoryRepo
		reservations = reservationRepo
	default:
		catalog = repository.NewInMemoryCatalog()
		backend = repository.NewInMemoryInventory()
		reservations = repository.NewInMemoryReservations()
	}

	inventory := repository.NewInventory(backend, catalog, storeLogger)
	locks := lock.NewRoomLocks(cfg.LockWait)

	var availabilityCache *cache.AvailabilityCache
	if cfg.RedisHost != "" {
		availabilityCache = cache.New(fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort), storeLogger, tracer)
		availabilityCache.Ping()
	}

	bookingNotifier := notifier.New(cfg.NotificationURL, logger)

	availabilityService := services.NewAvailabilityServiceImpl(inventory, availabilityCache, tracer)
	reservationService := services.NewReservationServiceImpl(inventory, reservations, catalog, locks, availabilityCache, bookingNotifier, apiLogger, tracer)
	bulkEditService := services.NewBulkEditServiceImpl(inventory, locks, availabilityCache, apiLogger, tracer)
	approvalService := services.NewApprovalServiceImpl(catalog, inventory, locks, tracer)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, apiLogger, tracer)
	reservationsHandler := handlers.NewReservationsHandler(reservationService, apiLogger, tracer)
	inventoryHandler := handlers.NewInventoryHandler(bulkEditService, apiLogger, tracer)
	approvalHandler := handlers.NewApprovalHandler(approvalService, apiLogger, tracer)

	//Initialize the router and add a middleware for all the requests
	router := mux.NewRouter()
	router.Use(availabilityHandler.MiddlewareContentTypeSet)

	postCheckAvailability := router.Methods(http.MethodPost).Subrouter()
	postCheckAvailability.HandleFunc("/api/availability/check/{roomTypeId}", availabilityHandler.CheckAvailability)
	postCheckAvailability.Use(availabilityHandler.MiddlewareCheckAvailabilityDeserialization)

	router.HandleFunc("/api/availability/{roomTypeId}/calendar", availabilityHandler.GetCalendar).Methods(http.MethodGet)

	postReservation := router.Methods(http.MethodPost).Subrouter()
	postReservation.HandleFunc("/api/reservations/create", reservationsHandler.CreateReservation)
	postReservation.Use(reservationsHandler.MiddlewareReservationDeserialization)

	router.HandleFunc("/api/reservations/cancel/{id}", reservationsHandler.CancelReservation).Methods(http.MethodPost)
	router.HandleFunc("/api/reservations/{roomTypeId}", reservationsHandler.GetReservationsByRoomType).Methods(http.MethodGet)
	router.HandleFunc("/api/reservations/{roomTypeId}/date/{date}", reservationsHandler.GetReservationsCoveringDate).Methods(http.MethodGet)

	postBulkEdit := router.Methods(http.MethodPost).Subrouter()
	postBulkEdit.HandleFunc("/api/inventory/{roomTypeId}/bulk", inventoryHandler.ApplyBulkEdit)
	postBulkEdit.Use(inventoryHandler.MiddlewareBulkEditDeserialization)

	router.HandleFunc("/api/inventory/{roomTypeId}/{date}", inventoryHandler.PutRecord).Methods(http.MethodPut)
	router.HandleFunc("/api/inventory/{roomTypeId}/open-next/{days}", inventoryHandler.OpenNext).Methods(http.MethodPost)
	router.HandleFunc("/api/inventory/{roomTypeId}/close-next/{days}", inventoryHandler.CloseNext).Methods(http.MethodPost)

	postHotel := router.Methods(http.MethodPost).Subrouter()
	postHotel.HandleFunc("/api/hotels/submit", approvalHandler.SubmitHotel)
	postHotel.Use(approvalHandler.MiddlewareHotelDeserialization)

	router.HandleFunc("/api/hotels/approve/{id}", approvalHandler.ApproveHotel).Methods(http.MethodPost)
	router.HandleFunc("/api/hotels/reject/{id}", approvalHandler.RejectHotel).Methods(http.MethodPost)
	router.HandleFunc("/api/hotels/{id}", approvalHandler.DeleteHotel).Methods(http.MethodDelete)
	router.HandleFunc("/api/hotels/{id}", approvalHandler.GetHotel).Methods(http.MethodGet)
	router.HandleFunc("/api/roomtypes/{id}", approvalHandler.UpdateRoomType).Methods(http.MethodPut)

	headersOk := gorillaHandlers.AllowedHeaders([]string{"X-Requested-With", "Authorization", "Content-Type"})
	originsOk := gorillaHandlers.AllowedOrigins([]string{"https://localhost:4200"})
	methodsOk := gorillaHandlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"})

	handlerForHTTP := gorillaHandlers.CORS(originsOk, headersOk, methodsOk)(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlerForHTTP,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"path": "inventory/main"}).Info("Server listening on port ", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	sig := <-sigCh
	logger.WithFields(logrus.Fields{"path": "inventory/main"}).Info("Received terminate, graceful shutdown ", sig)

	//Try to shutdown gracefully
	if server.Shutdown(timeoutContext) != nil {
		logger.Fatal("Cannot gracefully shutdown...")
	}
	logger.WithFields(logrus.Fields{"path": "inventory/main"}).Info("Server stopped")
}

func NewTracerProvider(serviceName, collectorEndpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(collectorEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("unable to initialize exporter due: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.DeploymentEnvironmentKey.String("development"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
