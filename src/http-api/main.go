package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"github.com/jack-barr3tt/erail-engine/src/http-api/api"
)

func main() {
	utils.InitLogger()
	defer utils.SyncLogger()
	log := utils.GetLogger()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		if path := c.Path(); path != "/health" {
			log.Infow("request",
				"method", c.Method(),
				"path", path,
				"status", c.Response().StatusCode(),
				"duration", time.Since(start),
			)
		}

		return err
	})

	app.Use(cors.New())

	server, err := api.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to start http api server", "error", err)
		return
	}

	api.RegisterHandlers(app, server)

	go func() {
		<-ctx.Done()
		log.Infow("shutting down http api")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warnw("fiber shutdown failed", "error", err)
		}
	}()

	log.Infow("http api listening", "port", cfg.Port, "events_broker", cfg.EventsBroker)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalw("fiber listen failed", "error", err)
	}

	if err := server.Close(); err != nil {
		log.Warnw("failed to close connections", "error", err)
	}
}
