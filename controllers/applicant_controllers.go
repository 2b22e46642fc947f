package controllers

import (
	"errors"
	"strings"

	"rush-server/models"
	"rush-server/repository"
	service "rush-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type ApplicantController struct {
	svc    *service.ApplicantService
	logger zerolog.Logger
}

func NewApplicantController(svc *service.ApplicantService, logger zerolog.Logger) *ApplicantController {
	return &ApplicantController{svc: svc, logger: logger}
}

func (ac *ApplicantController) GetApplicants(c *fiber.Ctx) error {
	ids := service.SplitIDs(c.Query("ids"))
	applicants, err := ac.svc.List(c.UserContext(), ids)
	if err != nil {
		return respondError(c, ac.logger, fiber.StatusInternalServerError, "Failed to fetch applicants", err)
	}
	return c.Status(fiber.StatusOK).JSON(applicants)
}

func (ac *ApplicantController) CreateApplicant(c *fiber.Ctx) error {
	var applicant models.Applicant
	if err := c.BodyParser(&applicant); err != nil {
		return respondError(c, ac.logger, fiber.StatusBadRequest, "Invalid JSON", err)
	}

	created, err := ac.svc.Create(c.UserContext(), applicant)
	if errors.Is(err, service.ErrNameRequired) {
		return respondError(c, ac.logger, fiber.StatusBadRequest, "Name is required", err)
	}
	if err != nil {
		return respondError(c, ac.logger, fiber.StatusInternalServerError, "Failed to add applicant", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

type applicantUpdateRequest struct {
	ID string `json:"id"`
	models.ApplicantPatch
}

func (ac *ApplicantController) UpdateApplicant(c *fiber.Ctx) error {
	var request applicantUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		return respondError(c, ac.logger, fiber.StatusBadRequest, "Invalid JSON", err)
	}
	if strings.TrimSpace(request.ID) == "" {
		return respondError(c, ac.logger, fiber.StatusBadRequest, "id is required", nil)
	}

	err := ac.svc.Update(c.UserContext(), request.ID, request.ApplicantPatch)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success"})
	case errors.Is(err, service.ErrNameRequired):
		return respondError(c, ac.logger, fiber.StatusBadRequest, "Name is required", err)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidID):
		return respondError(c, ac.logger, fiber.StatusNotFound, "Applicant not found", err)
	}
	return respondError(c, ac.logger, fiber.StatusInternalServerError, "Failed to update applicant", err)
}

func (ac *ApplicantController) DeleteApplicant(c *fiber.Ctx) error {
	var request struct {
		ID string `json:"id"`
	}
	if err := c.BodyParser(&request); err != nil {
		return respondError(c, ac.logger, fiber.StatusBadRequest, "Invalid JSON", err)
	}
	if strings.TrimSpace(request.ID) == "" {
		return respondError(c, ac.logger, fiber.StatusBadRequest, "id is required", nil)
	}

	err := ac.svc.Delete(c.UserContext(), request.ID)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success"})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidID):
		return respondError(c, ac.logger, fiber.StatusNotFound, "Applicant not found", err)
	}
	return respondError(c, ac.logger, fiber.StatusInternalServerError, "Failed to delete applicant", err)
}
