package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/construplan/construplan-api/internal/application/dto"
	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// InventoryHandler catálogo de ítems, kardex y reposición (protegido).
type InventoryHandler struct {
	itemRepo      repository.ItemRepository
	movementRepo  repository.MovementRepository
	replenishment *appinventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	itemRepo repository.ItemRepository,
	movementRepo repository.MovementRepository,
	replenishment *appinventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{itemRepo: itemRepo, movementRepo: movementRepo, replenishment: replenishment}
}

// ListItems lista el catálogo paginado.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	items, err := h.itemRepo.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(items)), Limit: limit, Offset: offset}
	for _, item := range items {
		out.Items = append(out.Items, dto.ToItemResponse(item))
	}
	return c.JSON(out)
}

// GetItem devuelve un ítem con su caché de cantidad y costo.
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	item, err := h.itemRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Kardex devuelve los documentos de movimiento de un ítem en un rango de
// fechas (query params from/to en RFC 3339 o YYYY-MM-DD).
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	limit, offset := pagination(c)
	docs, err := h.movementRepo.ListByItem(c.Context(), id, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}
	return c.JSON(out)
}

// Replenishment devuelve las sugerencias de compra para los ítems en o bajo
// su punto de reorden, ordenadas por urgencia.
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	suggestions, err := h.replenishment.Scan(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suggestions)
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
