package main

import (
	"context"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/cloud"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/database"
	httpHandlers "github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/http"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	tokens, err := auth.NewJWTManager(config.JWTSecret(), config.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("jwt setup failed")
	}

	svcs := service.New(db, tokens)

	if err := svcs.Auth.EnsureDefaultAdmin(context.Background(),
		config.DefaultAdminUsername(), config.DefaultAdminPassword(), config.DefaultAdminName()); err != nil {
		log.Fatal().Err(err).Msg("default admin setup failed")
	}

	if config.UseCloudServices() && config.SNSTopicArn() != "" {
		sns, err := cloud.NewSNSClient(config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns setup failed")
		}
		svcs.Ingest.EnableAlerts(sns, config.PowerAlertThreshold())
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.CORSOrigins(),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Authorization,Content-Type",
	}))

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpHandlers.Register(app, svcs, tokens)

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
