package appserver

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campusbook/venue-booking/config"
	"github.com/campusbook/venue-booking/internal/auth"
	repository "github.com/campusbook/venue-booking/internal/database/postgres"
	"github.com/campusbook/venue-booking/internal/service"
	"github.com/campusbook/venue-booking/internal/transport"
	"github.com/campusbook/venue-booking/internal/worker"
	"github.com/campusbook/venue-booking/pkg/postgres"
	"github.com/campusbook/venue-booking/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer wires the whole application together and blocks until a
// shutdown signal arrives.
func NewServer(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize session store
	redisClient, err := redis.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to initialize redis: %v", err)
	}
	defer redisClient.Close()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	sessions := auth.NewSessionStore(redisClient)

	// Initialize repositories
	venueRepo := repository.NewVenueRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	venueService := service.NewVenueService(venueRepo, bookingRepo)
	bookingService := service.NewBookingService(bookingRepo, venueRepo)
	userService := service.NewUserService(userRepo, tokens, sessions)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logrus.Fatalf("Failed to seed admin account: %v", err)
	}

	// Start stale booking worker
	staleWorker := worker.NewStaleBookingWorker(bookingService, cfg.Worker.StaleInterval)
	go staleWorker.Start(ctx)

	// Initialize handlers
	venueHandler := transport.NewVenueHandler(venueService)
	bookingHandler := transport.NewBookingHandler(bookingService)
	userHandler := transport.NewUserHandler(userService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		router := transport.InitRoutes(venueHandler, bookingHandler, userHandler, tokens, sessions)
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
