package routes

import (
	"rush-server/controllers"
	middleware "rush-server/middlewares"

	"github.com/gofiber/fiber/v2"
)

func APIRoutes(app *fiber.App, applicants *controllers.ApplicantController, notes *controllers.NoteController, ratings *controllers.RatingController) {
	api := app.Group("/api")

	api.Get("/applicants", applicants.GetApplicants)
	api.Post("/applicants", applicants.CreateApplicant)
	api.Put("/applicants", applicants.UpdateApplicant)
	api.Delete("/applicants", applicants.DeleteApplicant)

	api.Get("/notes", notes.GetNotes)
	api.Post("/notes", middleware.RequireSession(), notes.CreateNotes)

	api.Post("/ratings", middleware.RequireSession(), ratings.UpsertRatings)
	api.Post("/checkout", middleware.RequireSession(), ratings.Checkout)
}
