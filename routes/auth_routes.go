package routes

import (
	"rush-server/controllers"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	app.Get("/auth/login", authController.Login)
	app.Get("/auth/callback", authController.Callback)
	app.Post("/auth/logout", authController.Logout)
}
