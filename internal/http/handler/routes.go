package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/service"
)

// Services bundles the use-case layer for route registration.
type Services struct {
	Customers   service.CustomerService
	Orders      service.OrderService
	Campaigns   service.CampaignService
	Workers     service.WorkerService
	Tasks       service.TaskService
	Students    service.StudentService
	Attachments service.AttachmentService
}

// HealthCheck reports dependency health. With the in-memory driver
// there is no database, so a nil db is healthy by definition.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/customers", ListCustomers(svcs.Customers))
	app.Post("/customers", CreateCustomer(svcs.Customers))
	app.Get("/customers/:id", GetCustomer(svcs.Customers))
	app.Put("/customers/:id", UpdateCustomer(svcs.Customers))
	app.Delete("/customers/:id", DeleteCustomer(svcs.Customers))
	app.Get("/customers/:id/orders", ListCustomerOrders(svcs.Orders))

	app.Get("/orders", ListOrders(svcs.Orders))
	app.Post("/orders", CreateOrder(svcs.Orders))
	app.Get("/orders/:id", GetOrder(svcs.Orders))
	app.Put("/orders/:id", UpdateOrder(svcs.Orders))
	app.Delete("/orders/:id", DeleteOrder(svcs.Orders))

	app.Get("/campaigns", ListCampaigns(svcs.Campaigns))
	app.Post("/campaigns", CreateCampaign(svcs.Campaigns))
	app.Get("/campaigns/report", CampaignStatusReport(svcs.Campaigns))
	app.Get("/campaigns/:id", GetCampaign(svcs.Campaigns))
	app.Put("/campaigns/:id", UpdateCampaign(svcs.Campaigns))
	app.Delete("/campaigns/:id", DeleteCampaign(svcs.Campaigns))
	app.Get("/campaigns/:id/workers", ListCampaignWorkers(svcs.Campaigns))
	app.Post("/campaigns/:id/workers/:workerId", AssignCampaignWorker(svcs.Campaigns))
	app.Delete("/campaigns/:id/workers/:workerId", UnassignCampaignWorker(svcs.Campaigns))

	app.Get("/workers", ListWorkers(svcs.Workers))
	app.Post("/workers", CreateWorker(svcs.Workers))
	app.Get("/workers/:id", GetWorker(svcs.Workers))
	app.Put("/workers/:id", UpdateWorker(svcs.Workers))
	app.Delete("/workers/:id", DeleteWorker(svcs.Workers))

	app.Get("/tasks", ListTasks(svcs.Tasks))
	app.Post("/tasks", CreateTask(svcs.Tasks))
	app.Get("/tasks/:id", GetTask(svcs.Tasks))
	app.Put("/tasks/:id", UpdateTask(svcs.Tasks))
	app.Delete("/tasks/:id", DeleteTask(svcs.Tasks))
	app.Post("/tasks/:id/complete", CompleteTask(svcs.Tasks))
	app.Post("/tasks/:id/attachments", UploadAttachment(svcs.Attachments))
	app.Get("/tasks/:id/attachments", ListTaskAttachments(svcs.Attachments))

	app.Get("/students", ListStudents(svcs.Students))
	app.Post("/students", CreateStudent(svcs.Students))
	app.Get("/students/:id", GetStudent(svcs.Students))
	app.Put("/students/:id", UpdateStudent(svcs.Students))
	app.Delete("/students/:id", DeleteStudent(svcs.Students))

	app.Get("/attachments/:id/url", AttachmentURL(svcs.Attachments))
	app.Delete("/attachments/:id", DeleteAttachment(svcs.Attachments))
}
