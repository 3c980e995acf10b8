package appServer

import (
	"context"
	"crypto/tls"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kollapso/booking/config"
	repository "github.com/kollapso/booking/internal/database/postgres"
	redisdb "github.com/kollapso/booking/internal/database/redis"
	"github.com/kollapso/booking/internal/service"
	"github.com/kollapso/booking/internal/transport"
	"github.com/kollapso/booking/internal/worker"
	"github.com/kollapso/booking/pkg/auth"
	"github.com/kollapso/booking/pkg/postgres"
	pkgredis "github.com/kollapso/booking/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
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
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12}, // ban on outdated TLS versions
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// deps is the wiring both applications share: storage, sessions, auth.
type deps struct {
	db          *sql.DB
	redisClient *goredis.Client
	authService service.AuthService
}

func buildDeps(cfg *config.Config) *deps {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the logout denylist and the catalog cache; both sites
	// keep working without it
	var redisClient *goredis.Client
	var revoker service.TokenRevoker
	if cfg.Redis.Host != "" {
		redisClient = pkgredis.NewRedisClient(&cfg.Redis)
		revoker = redisdb.NewTokenStore(redisClient)
		logrus.Info("Redis token store initialized")
	} else {
		logrus.Warn("Redis not configured, logout revocation disabled")
	}

	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	authService := service.NewAuthService(userRepo, tokens, revoker, cfg.Admin.Email)

	return &deps{
		db:          db,
		redisClient: redisClient,
		authService: authService,
	}
}

func (d *deps) close() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	d.db.Close()
}

// NewBandServer wires and runs the band show-booking application.
func NewBandServer(cfg *config.Config) {
	d := buildDeps(cfg)
	defer d.close()

	bookingRepo := repository.NewBookingRepository(d.db)
	bookingService := service.NewBookingService(bookingRepo)

	authHandler := transport.NewAuthHandler(d.authService)
	bookingHandler := transport.NewBookingHandler(bookingService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Retention worker for old cancelled bookings
	purgeWorker := worker.NewPurgeWorker("bookings", bookingRepo, cfg.Worker.PurgeInterval, cfg.Worker.PurgeRetention)
	go purgeWorker.Start(ctx)

	runServer(cfg, transport.InitBandRoutes(d.authService, authHandler, bookingHandler))
}

// NewRentalServer wires and runs the board-game rental application.
func NewRentalServer(cfg *config.Config) {
	d := buildDeps(cfg)
	defer d.close()

	gameRepo := repository.NewGameRepository(d.db)
	reservationRepo := repository.NewReservationRepository(d.db)

	var gameCache service.GameCache
	if d.redisClient != nil {
		gameCache = redisdb.NewGameCache(d.redisClient, cfg.Cache.GameTTL)
		logrus.Info("Game catalog cache initialized")
	}

	gameService := service.NewGameService(gameRepo, gameCache)
	reservationService := service.NewReservationService(reservationRepo, gameRepo)

	authHandler := transport.NewAuthHandler(d.authService)
	gameHandler := transport.NewGameHandler(gameService)
	reservationHandler := transport.NewReservationHandler(reservationService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Retention worker for old cancelled reservations
	purgeWorker := worker.NewPurgeWorker("reservations", reservationRepo, cfg.Worker.PurgeInterval, cfg.Worker.PurgeRetention)
	go purgeWorker.Start(ctx)

	runServer(cfg, transport.InitRentalRoutes(d.authService, authHandler, gameHandler, reservationHandler))
}

func runServer(cfg *config.Config, handler http.Handler) {
	if cfg.IsProduction() || cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
