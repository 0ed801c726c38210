package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/validation"
)

type createCampaignRequest struct {
	Code   string `json:"code" validate:"required,min=2,max=32"`
	Name   string `json:"name" validate:"required,min=2"`
	Status string `json:"status" validate:"omitempty,oneof=NEW ACTIVE CLOSED"`
}

type updateCampaignRequest struct {
	Code   string `json:"code" validate:"required,min=2,max=32"`
	Name   string `json:"name" validate:"required,min=2"`
	Status string `json:"status" validate:"required,oneof=NEW ACTIVE CLOSED"`
}

// ListCampaigns returns campaigns with limit/offset pagination.
func ListCampaigns(svc service.CampaignService) fiber.Handler {
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

// CreateCampaign validates and stores a new campaign.
func CreateCampaign(svc service.CampaignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCampaignRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		if details := validation.Struct(req); details != nil {
			return writeValidationError(c, details)
		}

		out, err := svc.Create(c.UserContext(), &model.Campaign{
			Code:   req.Code,
			Name:   req.Name,
			Status: req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// GetCampaign returns one campaign, honouring If-None-Match.
func GetCampaign(svc service.CampaignService) fiber.Handler {
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

// UpdateCampaign replaces a campaign record.
func UpdateCampaign(svc service.CampaignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		var req updateCampaignRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		if details := validation.Struct(req); details != nil {
			return writeValidationError(c, details)
		}

		out, err := svc.Update(c.UserContext(), &model.Campaign{
			ID:     id,
			Code:   req.Code,
			Name:   req.Name,
			Status: req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteCampaign removes a campaign, unassigning its workers.
func DeleteCampaign(svc service.CampaignService) fiber.Handler {
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

// AssignCampaignWorker places a worker on a campaign.
func AssignCampaignWorker(svc service.CampaignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campaignID, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		workerID, ok, err := paramID(c, "workerId")
		if !ok {
			return err
		}
		w, err := svc.AssignWorker(c.UserContext(), campaignID, workerID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(w)
	}
}

// UnassignCampaignWorker removes a worker from a campaign.
func UnassignCampaignWorker(svc service.CampaignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		campaignID, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		workerID, ok, err := paramID(c, "workerId")
		if !ok {
			return err
		}
		if err := svc.UnassignWorker(c.UserContext(), campaignID, workerID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListCampaignWorkers returns the workers assigned to a campaign.
func ListCampaignWorkers(svc service.CampaignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := paramID(c, "id")
		if !ok {
			return err
		}
		workers, err := svc.Workers(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": workers})
	}
}

// CampaignStatusReport returns campaign counts per status, every status
// present and zero-filled when absent.
func CampaignStatusReport(svc service.CampaignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.StatusReport(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}
