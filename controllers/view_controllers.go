package controllers

import (
	"errors"
	"strings"

	middleware "rush-server/middlewares"
	"rush-server/models"
	service "rush-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	layout         = "layouts/main"
	ratingFieldKey = "rating_"
)

type ViewController struct {
	applicants    *service.ApplicantService
	notes         *service.NoteService
	ratings       *service.RatingService
	signInEnabled bool
	logger        zerolog.Logger
}

func NewViewController(applicants *service.ApplicantService, notes *service.NoteService, ratings *service.RatingService, signInEnabled bool, logger zerolog.Logger) *ViewController {
	return &ViewController{
		applicants:    applicants,
		notes:         notes,
		ratings:       ratings,
		signInEnabled: signInEnabled,
		logger:        logger,
	}
}

func (vc *ViewController) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	user, ok := middleware.CurrentUser(c)
	if ok {
		data["User"] = user
	}
	return c.Status(status).Render(name, data, layout)
}

func (vc *ViewController) renderFailure(c *fiber.Ctx, name string, data fiber.Map, msg string, err error) error {
	vc.logger.Error().Err(err).Str("rid", requestID(c)).Str("path", c.Path()).Msg(msg)
	data["Error"] = msg
	return vc.render(c, fiber.StatusInternalServerError, name, data)
}

func (vc *ViewController) Home(c *fiber.Ctx) error {
	return vc.render(c, fiber.StatusOK, "index", fiber.Map{"Title": "Rush Applicant Tracker"})
}

func (vc *ViewController) SignIn(c *fiber.Ctx) error {
	return vc.render(c, fiber.StatusOK, "signin", fiber.Map{"Title": "Sign in", "Enabled": vc.signInEnabled})
}

func (vc *ViewController) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	data := fiber.Map{"Title": "Applicant search", "Query": term}

	applicants, err := vc.applicants.List(c.UserContext(), nil)
	if err != nil {
		return vc.renderFailure(c, "search", data, "Failed to fetch applicants", err)
	}
	data["Applicants"] = service.FilterApplicants(applicants, term)
	return vc.render(c, fiber.StatusOK, "search", data)
}

func queryIDs(c *fiber.Ctx) []string {
	var values []string
	for _, v := range c.Context().QueryArgs().PeekMulti("ids") {
		values = append(values, string(v))
	}
	return service.SplitIDs(values...)
}

func (vc *ViewController) NoteTaking(c *fiber.Ctx) error {
	ids := queryIDs(c)
	data := fiber.Map{"Title": "Group discussion notes", "IDs": strings.Join(ids, ",")}
	if len(ids) == 0 {
		return c.Redirect("/applicant-search", fiber.StatusSeeOther)
	}

	applicants, err := vc.applicants.List(c.UserContext(), ids)
	if err != nil {
		return vc.renderFailure(c, "note-taking", data, "Failed to fetch applicants", err)
	}
	data["Applicants"] = applicants
	return vc.render(c, fiber.StatusOK, "note-taking", data)
}

func (vc *ViewController) SubmitNotes(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	ids := service.SplitIDs(c.FormValue("ids"))
	content := c.FormValue("notes")

	_, err := vc.notes.SubmitDiscussion(c.UserContext(), user, ids, content)
	if err == nil {
		return c.Redirect("/cart", fiber.StatusSeeOther)
	}

	data := fiber.Map{"Title": "Group discussion notes", "IDs": strings.Join(ids, ","), "Notes": content}
	if applicants, lerr := vc.applicants.List(c.UserContext(), ids); lerr == nil {
		data["Applicants"] = applicants
	}
	if errors.Is(err, service.ErrEmptyNotes) {
		data["Error"] = "Mention at least one applicant with @Name before saving."
		return vc.render(c, fiber.StatusBadRequest, "note-taking", data)
	}
	return vc.renderFailure(c, "note-taking", data, "Failed to save notes", err)
}

const (
	cartErrorSave    = "save"
	cartErrorInvalid = "invalid"
)

// cartErrors maps the error flag set by a failed rating submit to the banner shown on the cart.
var cartErrors = map[string]string{
	cartErrorSave:    "Failed to save ratings",
	cartErrorInvalid: "Failed to save ratings: choose up, neutral or down",
}

type cartEntry struct {
	Note      models.Note
	Applicant *models.Applicant
	Rating    models.RatingValue
}

func (vc *ViewController) Cart(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	ctx := c.UserContext()
	data := fiber.Map{"Title": "Cart", "Saved": c.Query("saved") != "", "RatingValues": models.RatingValues}
	if msg, ok := cartErrors[c.Query("error")]; ok {
		data["Error"] = msg
	}

	notes, err := vc.notes.ListNotes(ctx, user.ID, false)
	if err != nil {
		return vc.renderFailure(c, "cart", data, "Failed to fetch notes", err)
	}

	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ApplicantID)
	}
	ids = service.SplitIDs(ids...)

	byID := map[string]models.Applicant{}
	if len(ids) > 0 {
		applicants, err := vc.applicants.List(ctx, ids)
		if err != nil {
			return vc.renderFailure(c, "cart", data, "Failed to fetch applicants", err)
		}
		for _, a := range applicants {
			byID[a.ID] = a
		}
	}

	ratings, err := vc.ratings.RatingsByUser(ctx, user.ID)
	if err != nil {
		return vc.renderFailure(c, "cart", data, "Failed to fetch ratings", err)
	}

	entries := make([]cartEntry, 0, len(notes))
	for _, n := range notes {
		entry := cartEntry{Note: n, Rating: ratings[n.ApplicantID]}
		if a, ok := byID[n.ApplicantID]; ok {
			entry.Applicant = &a
		}
		entries = append(entries, entry)
	}
	data["Entries"] = entries
	return vc.render(c, fiber.StatusOK, "cart", data)
}

func (vc *ViewController) SubmitRatings(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	ratings := map[string]string{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if strings.HasPrefix(k, ratingFieldKey) && len(value) > 0 {
			ratings[strings.TrimPrefix(k, ratingFieldKey)] = string(value)
		}
	})
	if len(ratings) == 0 {
		return c.Redirect("/cart", fiber.StatusSeeOther)
	}

	if _, err := vc.ratings.UpsertRatings(c.UserContext(), user, ratings); err != nil {
		reason := cartErrorSave
		if errors.Is(err, service.ErrInvalidRating) {
			reason = cartErrorInvalid
		}
		vc.logger.Error().Err(err).Str("rid", requestID(c)).Msg("failed to save ratings")
		return c.Redirect("/cart?error="+reason, fiber.StatusSeeOther)
	}
	return c.Redirect("/cart?saved=1", fiber.StatusSeeOther)
}

func (vc *ViewController) AddApplicantForm(c *fiber.Ctx) error {
	return vc.render(c, fiber.StatusOK, "add-applicant", fiber.Map{"Title": "Add applicant"})
}

func (vc *ViewController) AddApplicant(c *fiber.Ctx) error {
	applicant := models.Applicant{
		Name:            c.FormValue("name"),
		Email:           c.FormValue("email"),
		Major:           c.FormValue("major"),
		Year:            c.FormValue("year"),
		ProfilePhotoURL: c.FormValue("profilePhotoUrl"),
		ResumeURL:       c.FormValue("resumeUrl"),
		PortfolioURL:    c.FormValue("portfolioUrl"),
	}

	_, err := vc.applicants.Create(c.UserContext(), applicant)
	if err == nil {
		return c.Redirect("/applicant-search", fiber.StatusSeeOther)
	}
	data := fiber.Map{"Title": "Add applicant", "Applicant": applicant}
	if errors.Is(err, service.ErrNameRequired) {
		data["Error"] = "Name is required"
		return vc.render(c, fiber.StatusBadRequest, "add-applicant", data)
	}
	return vc.renderFailure(c, "add-applicant", data, "Failed to add applicant", err)
}
