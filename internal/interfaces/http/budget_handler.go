package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/construplan/construplan-api/internal/application/budget"
	"github.com/construplan/construplan-api/internal/application/dto"
)

// BudgetHandler verificación de desviación presupuestal (protegido).
type BudgetHandler struct {
	varianceUC *budget.VarianceUseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(varianceUC *budget.VarianceUseCase) *BudgetHandler {
	return &BudgetHandler{varianceUC: varianceUC}
}

// VarianceCheck evalúa una solicitud de despacho contra el presupuesto.
// Devuelve las alertas encontradas; lista vacía significa sin desviaciones.
func (h *BudgetHandler) VarianceCheck(c *fiber.Ctx) error {
	var in dto.VarianceCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lines es requerido"})
	}
	alerts, err := h.varianceUC.Check(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}
