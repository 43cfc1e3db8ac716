package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-libros/internal/application/auth"
	appreport "github.com/jhoicas/inventario-libros/internal/application/report"
	"github.com/jhoicas/inventario-libros/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	ItemUC   *usecase.ItemUseCase
	ReportUC *appreport.UseCase
	Cookie   CookieConfig
	Login    LoginLimit
	Log      zerolog.Logger // errores no previstos de los handlers
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, deps.Log)
	itemHandler := NewItemHandler(deps.ItemUC, deps.Log)
	session := SessionMiddleware(deps.AuthUC, deps.Cookie, deps.Log)

	// Login (público)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", LoginRateLimit(deps.Login), authHandler.Login)

	app.Get("/", session, itemHandler.Index)
	app.Post("/logout", session, authHandler.Logout)

	// Rutas protegidas (requieren cookie de sesión)
	api := app.Group("/api", session)

	items := api.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/quantity", itemHandler.AdjustQuantity)
	items.Post("/:id/delete", itemHandler.Delete) // formularios HTML no envían DELETE

	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	api.Get("/report", reportHandler.Download)

	api.Post("/account/password", authHandler.ChangePassword)
}
