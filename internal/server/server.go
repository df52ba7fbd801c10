// Package server boots the process: configuration, Mongo, Redis, storage
// disks, queue workers, the WebSocket hub, the gRPC health service, and
// the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrisetu/agrisetu/app/controllers"
	"github.com/agrisetu/agrisetu/app/jobs"
	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	"github.com/agrisetu/agrisetu/app/routes"
	"github.com/agrisetu/agrisetu/app/services"
	"github.com/agrisetu/agrisetu/config"
	"github.com/agrisetu/agrisetu/pkg/cache"
	"github.com/agrisetu/agrisetu/pkg/database"
	"github.com/agrisetu/agrisetu/pkg/event"
	grpcsrv "github.com/agrisetu/agrisetu/pkg/grpc"
	"github.com/agrisetu/agrisetu/pkg/logger"
	"github.com/agrisetu/agrisetu/pkg/metrics"
	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/queue"
	"github.com/agrisetu/agrisetu/pkg/reqid"
	"github.com/agrisetu/agrisetu/pkg/router"
	"github.com/agrisetu/agrisetu/pkg/storage"
	"github.com/agrisetu/agrisetu/pkg/ws"
)

const shutdownTimeout = 15 * time.Second

// queueWorkers is the number of concurrent background job workers.
const queueWorkers = 4

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(ctx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	// async log sink into the logs collection
	mongoLog := logger.NewMongoHandler(db.Collection(config.LogMongoCollection()))
	logger.AttachHandler(mongoLog)
	defer mongoLog.Close()

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache and redis queue disabled", "error", err)
	}

	storage.Connect()

	// repositories and indexes
	users := repositories.NewUserRepository(db)
	crops := repositories.NewCropRepository(db)
	facilities := repositories.NewStorageRepository(db)
	vehicles := repositories.NewTransportRepository(db)
	storageBookings := repositories.NewStorageBookingRepository(db)
	transportBookings := repositories.NewTransportBookingRepository(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	// services
	authSvc := services.NewAuthService(users)
	userSvc := services.NewUserService(users)
	bookingSvc := services.NewBookingService(facilities, vehicles, storageBookings, transportBookings)

	// background jobs
	jobs.RegisterAll()
	queue.UseCollection(db.Collection("failedJobs"))
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, queueWorkers)

	// websocket feed + booking event listeners
	hub := ws.NewHub()
	go hub.Run()
	registerBookingListeners(hub, users)

	gql, err := controllers.NewGraphQLHandler(crops, facilities, vehicles)
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc),
		Users:     controllers.NewUserController(userSvc),
		Crops:     controllers.NewCropController(crops),
		Storage:   controllers.NewStorageController(facilities),
		Transport: controllers.NewTransportController(vehicles),
		Bookings:  controllers.NewBookingController(bookingSvc),
		Contact:   controllers.NewContactController(),
		Uploads:   controllers.NewUploadController(),
		GraphQL:   gql,
		Hub:       hub,
	})

	// gRPC health endpoint backed by a mongo ping
	grpcServer, _, err := grpcsrv.Start(config.GRPCPort(), func(ctx context.Context) error {
		return db.Client().Ping(ctx, nil)
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	grpcsrv.Stop(grpcServer)
	cancel() // stops queue workers
	return srv.Shutdown(shutdownCtx)
}

// registerBookingListeners fans booking lifecycle events out to the
// websocket hub and the notification mail queue.
func registerBookingListeners(hub *ws.Hub, users *repositories.UserRepository) {
	broadcast := func(name string) event.Handler {
		return func(payload interface{}) {
			hub.BroadcastEvent(name, payload)
		}
	}
	event.Listen(services.EventStorageBookingCreated, broadcast(services.EventStorageBookingCreated))
	event.Listen(services.EventStorageBookingStatus, broadcast(services.EventStorageBookingStatus))
	event.Listen(services.EventTransportBookingCreated, broadcast(services.EventTransportBookingCreated))
	event.Listen(services.EventTransportBookingStatus, broadcast(services.EventTransportBookingStatus))

	notifyStorage := func(payload interface{}) {
		b, ok := payload.(models.StorageBooking)
		if !ok {
			return
		}
		enqueueNotification(users, b.Farmer.Hex(), "storage", b.ID.Hex(), string(b.Status), b.TotalPrice)
	}
	notifyTransport := func(payload interface{}) {
		b, ok := payload.(models.TransportBooking)
		if !ok {
			return
		}
		enqueueNotification(users, b.User.Hex(), "transport", b.ID.Hex(), string(b.Status), b.TotalPrice)
	}
	event.Listen(services.EventStorageBookingCreated, notifyStorage)
	event.Listen(services.EventStorageBookingStatus, notifyStorage)
	event.Listen(services.EventTransportBookingCreated, notifyTransport)
	event.Listen(services.EventTransportBookingStatus, notifyTransport)
}

func enqueueNotification(users *repositories.UserRepository, userID, kind, bookingID, status string, total float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("booking notification skipped, user lookup failed",
			"user", userID, "booking", bookingID, "error", err)
		return
	}

	if err := queue.Dispatch(&jobs.BookingNotificationJob{
		Email:       user.Email,
		Name:        user.Name,
		BookingKind: kind,
		BookingID:   bookingID,
		Status:      status,
		TotalPrice:  total,
	}); err != nil {
		logger.Error("booking notification enqueue failed", "booking", bookingID, "error", err)
	}
}
