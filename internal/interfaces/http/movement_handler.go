package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/construplan/construplan-api/internal/application/dto"
	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// MovementHandler maneja los documentos de movimiento del kardex (protegido).
type MovementHandler struct {
	commitUC     *appinventory.CommitMovementUseCase
	movementRepo repository.MovementRepository
}

// NewMovementHandler construye el handler.
func NewMovementHandler(commitUC *appinventory.CommitMovementUseCase, movementRepo repository.MovementRepository) *MovementHandler {
	return &MovementHandler{commitUC: commitUC, movementRepo: movementRepo}
}

// Commit confirma un documento de movimiento (entrada, salida, traslado u
// otro). El responsable es el usuario autenticado.
func (h *MovementHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]appinventory.MovementLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, appinventory.MovementLineInput{
			ItemID:       l.ItemID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			BudgetLineID: l.BudgetLineID,
			LocationID:   l.LocationID,
		})
	}
	docID, err := h.commitUC.Commit(c.Context(), appinventory.MovementInput{
		Class:         in.Class,
		Reference:     in.Reference,
		ResponsibleID: GetUserID(c),
		Remark:        in.Remark,
		Lines:         lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.movementRepo.GetDocument(c.Context(), docID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// Receive atajo para la compra de un solo ítem (documento RECEIPT de una línea).
func (h *MovementHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	docID, err := h.commitUC.Receive(c.Context(), in.ItemID, in.Quantity, in.UnitPrice, in.Reference, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.movementRepo.GetDocument(c.Context(), docID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// GetByID devuelve un documento de movimiento con sus líneas.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	doc, err := h.movementRepo.GetDocument(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(toDocumentResponse(doc))
}

func toDocumentResponse(doc *entity.MovementDocument) dto.MovementDocumentResponse {
	lines := make([]dto.MovementLineResponse, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, dto.MovementLineResponse{
			ItemID:       l.ItemID,
			Quantity:     l.Quantity,
			Amount:       l.Amount,
			BudgetLineID: l.BudgetLineID,
			LocationID:   l.LocationID,
		})
	}
	return dto.MovementDocumentResponse{
		ID:            doc.ID,
		Class:         doc.Class,
		Code:          entity.MovementCode(doc.Class),
		Reference:     doc.Reference,
		ResponsibleID: doc.ResponsibleID,
		Remark:        doc.Remark,
		Date:          doc.Date,
		Lines:         lines,
	}
}
