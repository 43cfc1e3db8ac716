package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-libros/internal/application/dto"
	"github.com/jhoicas/inventario-libros/internal/application/usecase"
)

// ItemHandler CRUD de ítems y ajuste de cantidad. Las escrituras que llegan de un
// formulario del navegador terminan en 303 a la página principal en lugar de JSON.
type ItemHandler struct {
	uc  *usecase.ItemUseCase
	log zerolog.Logger
}

// NewItemHandler construye el handler de ítems.
func NewItemHandler(uc *usecase.ItemUseCase, log zerolog.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, log: log}
}

type indexView struct {
	Items  *dto.ItemListResponse
	Form   dto.ItemForm
	Errors dto.ValidationErrors
}

// Index godoc
// @Summary      Página principal
// @Description  HTML con el inventario y los formularios de alta, ajuste y baja. Un cliente que no acepta HTML se redirige a /api/items.
// @Tags         items
// @Produce      html
// @Success      200
// @Success      303
// @Router       / [get]
func (h *ItemHandler) Index(c *fiber.Ctx) error {
	if !wantsHTML(c) {
		return c.Redirect("/api/items", fiber.StatusSeeOther)
	}
	return h.renderIndex(c, fiber.StatusOK, indexView{})
}

func (h *ItemHandler) renderIndex(c *fiber.Ctx, status int, v indexView) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	v.Items = list
	return renderPage(c, indexPage, status, v)
}

// backToIndex respuesta de una escritura exitosa hecha desde el navegador.
func backToIndex(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}

// List godoc
// @Summary      Listar inventario
// @Description  Ítems en orden de inserción, con cantidad de ítems y suma de cantidades.
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.ItemListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      dto.ItemForm  true  "title, category, quantity, size, riwaya"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var form dto.ItemForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), form)
	if err != nil {
		var verrs dto.ValidationErrors
		if wantsHTML(c) && errors.As(err, &verrs) {
			return h.renderIndex(c, fiber.StatusBadRequest, indexView{Form: form, Errors: verrs})
		}
		return writeError(c, h.log, err)
	}
	if wantsHTML(c) {
		return backToIndex(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar ítem
// @Description  Reemplaza todos los campos editables. Con un campo inválido no se escribe nada.
// @Tags         items
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path      string        true  "ID del ítem"
// @Param        body  body      dto.ItemForm  true  "title, category, quantity, size, riwaya"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var form dto.ItemForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), form)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
// @Router       /api/items/{id}/delete [post]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	if wantsHTML(c) {
		return backToIndex(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustQuantity godoc
// @Summary      Sumar o restar una unidad
// @Description  action=increase|decrease en el cuerpo o en la query. La cantidad nunca baja de cero.
// @Tags         items
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id      path      string               true   "ID del ítem"
// @Param        body    body      dto.QuantityRequest  false  "action"
// @Param        action  query     string               false  "increase | decrease"
// @Success      200     {object}  dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/items/{id}/quantity [post]
func (h *ItemHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.QuantityRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if in.Action == "" {
		in.Action = c.Query("action")
	}
	out, err := h.uc.Adjust(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if wantsHTML(c) {
		return backToIndex(c)
	}
	return c.JSON(out)
}
