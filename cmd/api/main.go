package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/jhoicas/facturador-api/internal/application/docstore"
	"github.com/jhoicas/facturador-api/internal/application/export"
	infrapdf "github.com/jhoicas/facturador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturador-api/internal/infrastructure/render"
	"github.com/jhoicas/facturador-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/facturador-api/internal/interfaces/http"
	"github.com/jhoicas/facturador-api/pkg/config"
	"github.com/jhoicas/facturador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Persistencia local: un blob JSON bajo una clave fija.
	fileStore := storage.NewFileStore(afero.NewOsFs(), cfg.Storage.Dir, log)

	store := docstore.New(docstore.Defaults{
		Currency: cfg.Document.DefaultCurrency,
		Terms:    cfg.Document.DefaultTerms,
		Title:    cfg.Document.DefaultTitle,
		Note:     cfg.Document.DefaultNote,
	}, fileStore, log, nil)
	if persisted := fileStore.Load(); persisted != nil {
		store.Hydrate(persisted)
		log.Info().Str("number", persisted.Document.Meta.DocumentNumber).Msg("documento restaurado del almacenamiento")
	}

	exportSvc := export.NewService(store, infrapdf.NewMarotoGenerator(), render.NewHTMLRenderer(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // assets embebidos (logo/firma) en base64
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:  store,
		Export: exportSvc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
