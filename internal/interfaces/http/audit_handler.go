package http

import (
	"github.com/gofiber/fiber/v2"

	appaudit "github.com/construplan/construplan-api/internal/application/audit"
	"github.com/construplan/construplan-api/internal/application/dto"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// AuditHandler conteos físicos y ajustes de auditoría (protegido).
type AuditHandler struct {
	uc        *appaudit.UseCase
	auditRepo repository.AuditRepository
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *appaudit.UseCase, auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{uc: uc, auditRepo: auditRepo}
}

// SubmitCount registra un conteo físico contra la cantidad en libros.
func (h *AuditHandler) SubmitCount(c *fiber.Ctx) error {
	var in dto.SubmitCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	record, err := h.uc.SubmitCount(c.Context(), in.ItemID, in.CountedQuantity, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAuditResponse(record))
}

// ApplyAdjustment resuelve una auditoría en conflicto aplicando la merma o el
// sobrante al kardex.
func (h *AuditHandler) ApplyAdjustment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ApplyAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.ApplyAdjustment(c.Context(), id, in.Reason, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// GetAudit devuelve un registro de auditoría.
func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	record, err := h.auditRepo.GetAudit(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "auditoría no encontrada"})
	}
	return c.JSON(toAuditResponse(record))
}

// ListAudits lista auditorías, opcionalmente filtradas por ítem (query item_id).
func (h *AuditHandler) ListAudits(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	records, err := h.auditRepo.ListAudits(c.Context(), c.Query("item_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toAuditResponse(r))
	}
	return c.JSON(out)
}

func toAuditResponse(r *entity.AuditRecord) dto.AuditRecordResponse {
	return dto.AuditRecordResponse{
		ID:                r.ID,
		ItemID:            r.ItemID,
		CountedQuantity:   r.CountedQuantity,
		SystemQtySnapshot: r.SystemQtySnapshot,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
	}
}

func toAdjustmentResponse(a *entity.Adjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:       a.ID,
		ItemID:   a.ItemID,
		AuditID:  a.AuditID,
		Type:     a.Type,
		Quantity: a.Quantity,
		Reason:   a.Reason,
		Status:   a.Status,
	}
}
