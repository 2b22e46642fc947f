package controllers

import (
	"encoding/json"
	"errors"

	middleware "rush-server/middlewares"
	service "rush-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type RatingController struct {
	ratings *service.RatingService
	logger  zerolog.Logger
}

func NewRatingController(ratings *service.RatingService, logger zerolog.Logger) *RatingController {
	return &RatingController{ratings: ratings, logger: logger}
}

func (rc *RatingController) UpsertRatings(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return respondError(c, rc.logger, fiber.StatusUnauthorized, "Not authenticated", nil)
	}

	var ratings map[string]string
	if err := json.Unmarshal(c.Body(), &ratings); err != nil {
		return respondError(c, rc.logger, fiber.StatusBadRequest, "Invalid JSON", err)
	}

	result, err := rc.ratings.UpsertRatings(c.UserContext(), user, ratings)
	if errors.Is(err, service.ErrInvalidRating) {
		return respondError(c, rc.logger, fiber.StatusBadRequest, err.Error(), err)
	}
	if err != nil {
		return respondError(c, rc.logger, fiber.StatusInternalServerError, err.Error(), err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Ratings updated successfully", "data": result})
}

type checkoutRequest struct {
	Ratings json.RawMessage `json:"ratings"`
}

type checkoutRecord struct {
	Fields struct {
		ApplicantID string `json:"ApplicantId"`
		Rating      string `json:"Rating"`
	} `json:"fields"`
}

func (rc *RatingController) Checkout(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return respondError(c, rc.logger, fiber.StatusUnauthorized, "Not authenticated", nil)
	}

	var request checkoutRequest
	if err := json.Unmarshal(c.Body(), &request); err != nil {
		return respondError(c, rc.logger, fiber.StatusBadRequest, "Invalid JSON", err)
	}
	var records []checkoutRecord
	if len(request.Ratings) == 0 || request.Ratings[0] != '[' || json.Unmarshal(request.Ratings, &records) != nil {
		return respondError(c, rc.logger, fiber.StatusBadRequest, "Invalid ratings format", nil)
	}

	entries := make([]service.CheckoutEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, service.CheckoutEntry{ApplicantID: r.Fields.ApplicantID, Rating: r.Fields.Rating})
	}

	written, err := rc.ratings.Checkout(c.UserContext(), user, entries)
	if errors.Is(err, service.ErrInvalidRating) {
		return respondError(c, rc.logger, fiber.StatusBadRequest, err.Error(), err)
	}
	if err != nil {
		return respondError(c, rc.logger, fiber.StatusInternalServerError, "Failed to save ratings: "+err.Error(), err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Checkout successful", "written": written})
}
