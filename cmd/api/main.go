package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crmapi/docs"
	"crmapi/internal/config"
	"crmapi/internal/database"
	"crmapi/internal/database/migration"
	handlers "crmapi/internal/http/handler"
	"crmapi/internal/http/middleware"
	"crmapi/internal/otel"
	"crmapi/internal/repository"
	"crmapi/internal/repository/memory"
	"crmapi/internal/repository/postgres"
	"crmapi/internal/service"
	"crmapi/internal/storage"
)

// @title CRM API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx := context.Background()

	// Tracing degrades to noop when no collector is reachable.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Repository backend per STORAGE_DRIVER. The memory driver needs no
	// infrastructure at all; postgres connects and migrates on boot.
	var (
		db             *sql.DB
		customerRepo   repository.CustomerRepository
		orderRepo      repository.OrderRepository
		campaignRepo   repository.CampaignRepository
		workerRepo     repository.WorkerRepository
		taskRepo       repository.TaskRepository
		studentRepo    repository.StudentRepository
		attachmentRepo repository.AttachmentRepository
	)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		customerRepo = postgres.NewCustomerPostgres(db)
		orderRepo = postgres.NewOrderPostgres(db)
		campaignRepo = postgres.NewCampaignPostgres(db)
		workerRepo = postgres.NewWorkerPostgres(db)
		taskRepo = postgres.NewTaskPostgres(db)
		studentRepo = postgres.NewStudentPostgres(db)
		attachmentRepo = postgres.NewAttachmentPostgres(db)
	case config.DriverMemory:
		customerRepo = memory.NewCustomerMemory()
		orderRepo = memory.NewOrderMemory()
		campaignRepo = memory.NewCampaignMemory()
		workerRepo = memory.NewWorkerMemory()
		taskRepo = memory.NewTaskMemory()
		studentRepo = memory.NewStudentMemory()
		attachmentRepo = memory.NewAttachmentMemory()
	default:
		log.Fatalf("unknown storage driver: %q", cfg.StorageDriver)
	}

	// Attachment content goes to MinIO when configured, otherwise to an
	// in-process store so the memory driver stays infrastructure-free.
	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	} else {
		objStore = storage.NewInMemory()
	}

	svcs := handlers.Services{
		Customers:   service.NewCustomerService(customerRepo, orderRepo),
		Orders:      service.NewOrderService(orderRepo, customerRepo),
		Campaigns:   service.NewCampaignService(campaignRepo, workerRepo),
		Workers:     service.NewWorkerService(workerRepo, campaignRepo, taskRepo),
		Tasks:       service.NewTaskService(taskRepo, workerRepo, attachmentRepo, objStore),
		Students:    service.NewStudentService(studentRepo),
		Attachments: service.NewAttachmentService(objStore, attachmentRepo, taskRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Block until an OS signal arrives, then drain in-flight requests.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
