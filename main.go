package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"rush-server/configs"
	"rush-server/repository"
	"rush-server/server"

	fiberprometheus "github.com/ansrivas/fiberprometheus/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := configs.NewLogger(cfg.App.LogLevel, cfg.App.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	client, err := configs.ConnectMongo(connectCtx, cfg.Mongo)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	db := client.Database(cfg.Mongo.Database)
	if err := configs.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}

	redisClient := configs.ConnectRedis(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, sign-in will fail until it is reachable")
	}

	app := server.NewApp(server.Dependencies{
		Config:     cfg,
		Logger:     logger,
		Store:      repository.NewMongoStore(client),
		Applicants: repository.NewApplicantRepository(db.Collection(configs.ApplicantsCollection)),
		Notes:      repository.NewNoteRepository(db.Collection(configs.NotesCollection)),
		Ratings:    repository.NewRatingRepository(db.Collection(configs.RatingsCollection)),
		States:     repository.NewRedisStateRepository(redisClient),
		Metrics:    fiberprometheus.New(cfg.App.Name),
	})

	if cfg.App.ConsulAddress != "" {
		svc := configs.NewConsulService(cfg.App.Name, "localhost", cfg.App.Port)
		if err := configs.RegisterService(ctx, cfg.App.ConsulAddress, svc); err != nil {
			logger.Warn().Err(err).Msg("consul registration failed")
		} else {
			defer func() {
				if err := configs.DeregisterService(context.Background(), cfg.App.ConsulAddress, svc.ID); err != nil {
					logger.Warn().Err(err).Msg("consul deregistration failed")
				}
			}()
		}
	}

	if err := server.Run(ctx, app, cfg.App.Port, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("server exited")
}
