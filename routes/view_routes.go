package routes

import (
	"rush-server/controllers"
	middleware "rush-server/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ViewRoutes(app *fiber.App, views *controllers.ViewController) {
	app.Get("/", views.Home)
	app.Get("/signin", views.SignIn)

	app.Get("/applicant-search", views.Search)
	app.Get("/add-applicant", views.AddApplicantForm)
	app.Post("/add-applicant", views.AddApplicant)

	app.Get("/note-taking", middleware.RequireSessionPage(), views.NoteTaking)
	app.Post("/note-taking", middleware.RequireSessionPage(), views.SubmitNotes)
	app.Get("/cart", middleware.RequireSessionPage(), views.Cart)
	app.Post("/cart", middleware.RequireSessionPage(), views.SubmitRatings)
}
