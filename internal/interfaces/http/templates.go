package http

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	loginPage = template.Must(template.ParseFS(templatesFS, "templates/login.html"))
	indexPage = template.Must(template.ParseFS(templatesFS, "templates/index.html"))
)

func renderPage(c *fiber.Ctx, page *template.Template, status int, data any) error {
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
