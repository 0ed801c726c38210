package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/validation"
)

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=3"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Status      string     `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	DueDate     *time.Time `json:"due_date"`
	WorkerID    *int64     `json:"worker_id" validate:"omitempty,gt=0"`
}

type updateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=3"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Status      string     `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
	DueDate     *time.Time `json:"due_date"`
	WorkerID    *int64     `json:"worker_id" validate:"omitempty,gt=0"`
}

// ListTasks returns tasks with limit/offset pagination.
func ListTasks(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pageParams(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateTask validates and stores a new task. An assignee reference,
// when present, must exist.
func CreateTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		if details := validation.Struct(req); details != nil {
			return writeValidationError(c, details)
		}

		out, err := svc.Create(c.UserContext(), &model.Task{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			DueDate:     req.DueDate,
			WorkerID:    req.WorkerID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// GetTask returns one task, honouring If-None-Match.
func GetTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		out, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondCached(c, out)
	}
}

// UpdateTask replaces a task record.
func UpdateTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		var req updateTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		if details := validation.Struct(req); details != nil {
			return writeValidationError(c, details)
		}

		out, err := svc.Update(c.UserContext(), &model.Task{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			DueDate:     req.DueDate,
			WorkerID:    req.WorkerID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteTask removes a task and its attachments.
func DeleteTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CompleteTask marks a task DONE.
func CompleteTask(svc service.TaskService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		out, err := svc.Complete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}
