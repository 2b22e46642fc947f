package controllers

import (
	"encoding/json"
	"errors"

	middleware "rush-server/middlewares"
	service "rush-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type NoteController struct {
	notes  *service.NoteService
	logger zerolog.Logger
}

func NewNoteController(notes *service.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{notes: notes, logger: logger}
}

func (nc *NoteController) GetNotes(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	mine := c.Query("scope") == "mine"

	notes, err := nc.notes.ListNotes(c.UserContext(), user.ID, mine)
	if errors.Is(err, service.ErrNotAuthenticated) {
		return respondError(c, nc.logger, fiber.StatusUnauthorized, "Not authenticated", err)
	}
	if err != nil {
		return respondError(c, nc.logger, fiber.StatusInternalServerError, "Failed to fetch notes", err)
	}
	return c.Status(fiber.StatusOK).JSON(notes)
}

type discussionRequest struct {
	ApplicantIDs []string `json:"applicantIds"`
	Content      string   `json:"content"`
}

// CreateNotes accepts either { "<applicantId>": "<text>", ... } or { "applicantIds": [...], "content": "..." }.
func (nc *NoteController) CreateNotes(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return respondError(c, nc.logger, fiber.StatusUnauthorized, "Not authenticated", nil)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return respondError(c, nc.logger, fiber.StatusBadRequest, "Invalid JSON", err)
	}

	var (
		result service.MergeResult
		err    error
	)
	if _, isDiscussion := raw["applicantIds"]; isDiscussion {
		var request discussionRequest
		if err := json.Unmarshal(c.Body(), &request); err != nil {
			return respondError(c, nc.logger, fiber.StatusBadRequest, "Invalid JSON", err)
		}
		result, err = nc.notes.SubmitDiscussion(c.UserContext(), user, request.ApplicantIDs, request.Content)
	} else {
		notes := make(map[string]string, len(raw))
		for id, value := range raw {
			var text string
			if err := json.Unmarshal(value, &text); err != nil {
				return respondError(c, nc.logger, fiber.StatusBadRequest, "Invalid JSON", err)
			}
			notes[id] = text
		}
		result, err = nc.notes.MergeNotes(c.UserContext(), user, notes)
	}

	if errors.Is(err, service.ErrEmptyNotes) {
		return respondError(c, nc.logger, fiber.StatusBadRequest, "No notes to save", err)
	}
	if err != nil {
		return respondError(c, nc.logger, fiber.StatusInternalServerError, err.Error(), err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notes added successfully", "data": result})
}
