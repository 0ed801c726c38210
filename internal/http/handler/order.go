package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/validation"
)

type createOrderRequest struct {
	CustomerID  int64  `json:"customer_id" validate:"required,gt=0"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Status      string `json:"status" validate:"omitempty,oneof=PENDING PAID CANCELLED"`
}

type updateOrderRequest struct {
	CustomerID  int64  `json:"customer_id" validate:"required,gt=0"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Status      string `json:"status" validate:"required,oneof=PENDING PAID CANCELLED"`
}

// ListOrders returns orders with limit/offset pagination.
func ListOrders(svc service.OrderService) fiber.Handler {
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

// CreateOrder validates and stores a new order. The referenced
// customer must exist.
func CreateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createOrderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		if details := validation.Struct(req); details != nil {
			return writeValidationError(c, details)
		}

		out, err := svc.Create(c.UserContext(), &model.Order{
			CustomerID:  req.CustomerID,
			AmountCents: req.AmountCents,
			Status:      req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// GetOrder returns one order, honouring If-None-Match.
func GetOrder(svc service.OrderService) fiber.Handler {
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

// UpdateOrder replaces an order record.
func UpdateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		var req updateOrderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		if details := validation.Struct(req); details != nil {
			return writeValidationError(c, details)
		}

		out, err := svc.Update(c.UserContext(), &model.Order{
			ID:          id,
			CustomerID:  req.CustomerID,
			AmountCents: req.AmountCents,
			Status:      req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteOrder removes an order.
func DeleteOrder(svc service.OrderService) fiber.Handler {
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

// ListCustomerOrders returns every order of one customer, newest first.
func ListCustomerOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		orders, err := svc.ListByCustomer(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": orders})
	}
}
