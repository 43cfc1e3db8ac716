package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-libros/internal/application/auth"
	appreport "github.com/jhoicas/inventario-libros/internal/application/report"
	"github.com/jhoicas/inventario-libros/internal/application/usecase"
	domainreport "github.com/jhoicas/inventario-libros/internal/domain/report"
	infrapdf "github.com/jhoicas/inventario-libros/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-libros/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-libros/internal/interfaces/http"
	"github.com/jhoicas/inventario-libros/pkg/config"
	"github.com/jhoicas/inventario-libros/pkg/logger"
	"github.com/jhoicas/inventario-libros/pkg/textshape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.Store, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir store")
	}
	defer backend.Close()

	revoker, closeRevoker, err := storage.Revoker(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de sesiones")
	}
	defer closeRevoker()

	authUC := auth.NewAuthUseCase(backend.Users, backend.Tx, revoker, auth.SessionConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})
	seeded, err := authUC.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar administrador")
	}
	if seeded {
		ev := log.Info()
		if cfg.Admin.Password == auth.DefaultAdminPassword {
			ev = log.Warn().Str("hint", "cambiar con: inventoryctl passwd "+cfg.Admin.Username)
		}
		ev.Str("username", cfg.Admin.Username).Msg("usuario administrador creado")
	}

	// REPORT_FONT_PATH vacío usa la fuente embebida; una ruta inválida aborta el arranque.
	renderer, err := infrapdf.NewMarotoReportRenderer(cfg.Report.FontPath, infrapdf.DefaultStyle())
	if err != nil {
		log.Fatal().Err(err).Str("font", cfg.Report.FontPath).Msg("cargar fuente del reporte")
	}
	composer := domainreport.NewComposer(domainreport.DefaultLabels(), textshape.Shape)
	reportUC := appreport.NewUseCase(backend.Items, composer, renderer, log.Component("report"))
	itemUC := usecase.NewItemUseCase(backend.Items)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario de libros",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := backend.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "store": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:   authUC,
		ItemUC:   itemUC,
		ReportUC: reportUC,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		},
		Login: httpRouter.LoginLimit{
			PerMinute: cfg.HTTP.LoginPerMinute,
			Burst:     cfg.HTTP.LoginBurst,
		},
		Log: httpLog,
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
