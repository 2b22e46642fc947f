package server

import (
	"context"
	"fmt"
	"time"

	"rush-server/configs"
	"rush-server/controllers"
	middleware "rush-server/middlewares"
	"rush-server/repository"
	"rush-server/routes"
	service "rush-server/services"
	"rush-server/utils"
	"rush-server/views"

	fiberprometheus "github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Store is the scoped MongoDB handle the services run against.
type Store interface {
	repository.Scoper
	controllers.Pinger
}

type Dependencies struct {
	Config     configs.Config
	Logger     zerolog.Logger
	Store      Store
	Applicants repository.ApplicantRepositoryInterface
	Notes      repository.NoteRepositoryInterface
	Ratings    repository.RatingRepositoryInterface
	States     repository.StateRepositoryInterface
	Metrics    *fiberprometheus.FiberPrometheus // nil disables /metrics
}

// NewApp wires services, controllers and routes into a Fiber app.
func NewApp(deps Dependencies) *fiber.App {
	cfg := deps.Config
	tokens := utils.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL)

	applicantService := service.NewApplicantService(deps.Store, deps.Applicants)
	noteService := service.NewNoteService(deps.Store, deps.Notes, deps.Applicants, cfg.App.NotesPerUser)
	ratingService := service.NewRatingService(deps.Store, deps.Ratings)
	authService := service.NewAuthService(deps.States, cfg.OAuth, tokens)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        views.NewEngine(),
		ErrorHandler: middleware.ErrorHandler(deps.Logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	if deps.Metrics != nil {
		deps.Metrics.RegisterAt(app, "/metrics")
		app.Use(deps.Metrics.Middleware)
	}

	app.Use(middleware.AccessLog(deps.Logger))
	app.Use(recover.New())
	origins := cfg.App.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	}))
	app.Use(middleware.SessionParser(tokens))

	app.Get("/health", controllers.NewHealthController(deps.Store).Health)

	routes.APIRoutes(app,
		controllers.NewApplicantController(applicantService, deps.Logger),
		controllers.NewNoteController(noteService, deps.Logger),
		controllers.NewRatingController(ratingService, deps.Logger),
	)
	routes.AuthRoutes(app, controllers.NewAuthController(authService, cfg.OAuth.Enabled(), deps.Logger))
	routes.ViewRoutes(app, controllers.NewViewController(applicantService, noteService, ratingService, cfg.OAuth.Enabled(), deps.Logger))

	return app
}

// Run serves app until ctx is cancelled, then shuts down within the grace period.
func Run(ctx context.Context, app *fiber.App, port int, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", port).Msg("starting HTTP server")
		errCh <- app.Listen(fmt.Sprintf(":%d", port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
