// Package main provides the main entry point for the Aviges weighing station system
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Davisit00/aviges/app/handlers"
	"github.com/Davisit00/aviges/app/middleware"
	"github.com/Davisit00/aviges/app/router"
	"github.com/Davisit00/aviges/app/services"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/Davisit00/aviges/config"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Aviges application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeRedis initializes the Redis client and verifies connectivity
func initializeRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.Addr, cfg.DB)
	return rc, nil
}

// startRedisHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startRedisHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeRedis(cfg.Redis)
	if err != nil {
		return nil, err
	}

	cancel := startRedisHealthMonitor(context.Background(), rc, 30*time.Second)
	stopFuncs = append(stopFuncs, cancel)

	clock := utils.SystemClock{}

	// Initialize repositories
	addressRepo := repository.NewAddressRepository(db)
	personRepo := repository.NewPersonRepository(db)
	phoneRepo := repository.NewPhoneRepository(db)
	taxIDRepo := repository.NewTaxIDRepository(db)
	associationRepo := repository.NewAssociationRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	companyRepo := repository.NewTransportCompanyRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	farmRepo := repository.NewFarmRepository(db)
	shedRepo := repository.NewShedRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	ticketRepo := repository.NewWeighingTicketRepository(db)
	timingRepo := repository.NewTripTimingRepository(db)
	countRepo := repository.NewTripCountRepository(db)
	originRepo := repository.NewTripOriginRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWT.SecretKey, clock)
	revocationStore := services.NewRedisRevocationStore(rc)

	log.Printf("Token service initialized with issuer: %s", cfg.JWT.Issuer)

	// Shared entity resolver
	resolver := businessflow.NewEntityResolver(
		addressRepo,
		personRepo,
		phoneRepo,
		taxIDRepo,
		associationRepo,
		clock,
	)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(
		userRepo,
		tokenService,
		revocationStore,
		clock,
	)

	ticketFlow := businessflow.NewTicketFlow(
		ticketRepo,
		assignmentRepo,
		driverRepo,
		vehicleRepo,
		productRepo,
		locationRepo,
		clock,
		db,
	)

	tripFlow := businessflow.NewTripFlow(
		ticketRepo,
		timingRepo,
		countRepo,
		originRepo,
		batchRepo,
		clock,
		db,
	)

	companyFlow := businessflow.NewCompanyFlow(
		companyRepo,
		vehicleRepo,
		driverRepo,
		addressRepo,
		resolver,
		clock,
		db,
	)

	farmFlow := businessflow.NewFarmFlow(
		farmRepo,
		shedRepo,
		batchRepo,
		personRepo,
		resolver,
		clock,
		db,
	)

	catalogFlow := businessflow.NewCatalogFlow(
		locationRepo,
		productRepo,
		resolver,
		clock,
		db,
	)

	userFlow := businessflow.NewUserFlow(
		userRepo,
		roleRepo,
		personRepo,
		resolver,
		clock,
		db,
	)

	// Initialize handlers
	h := router.Handlers{
		Auth:    handlers.NewAuthHandler(authFlow),
		Ticket:  handlers.NewTicketHandler(ticketFlow, tripFlow),
		Catalog: handlers.NewCatalogHandler(catalogFlow),
		Company: handlers.NewCompanyHandler(companyFlow),
		Farm:    handlers.NewFarmHandler(farmFlow),
		User:    handlers.NewUserHandler(userFlow),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, revocationStore)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsMiddleware := middleware.NewMetricsMiddleware(registry)

	// Initialize router
	appRouter := router.NewFiberRouter(cfg, h, authMiddleware, metricsMiddleware, registry)

	application := &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
