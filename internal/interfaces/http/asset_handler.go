package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/construplan/construplan-api/internal/application/assets"
	"github.com/construplan/construplan-api/internal/application/dto"
)

// AssetHandler depreciación de maquinaria propia (protegido, solo admin).
type AssetHandler struct {
	depreciationUC *assets.DepreciationUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(depreciationUC *assets.DepreciationUseCase) *AssetHandler {
	return &AssetHandler{depreciationUC: depreciationUC}
}

// RunDepreciation corre la depreciación mensual para el período actual (o el
// indicado en query period=YYYY-MM). Idempotente por activo y período.
func (h *AssetHandler) RunDepreciation(c *fiber.Ctx) error {
	asOf := time.Now()
	if p := c.Query("period"); p != "" {
		t, err := time.Parse("2006-01", p)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period inválido, formato YYYY-MM"})
		}
		asOf = t
	}
	results, err := h.depreciationUC.RunMonthly(c.Context(), asOf)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DepreciationResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.DepreciationResultResponse{
			ItemID:            r.ItemID,
			Period:            r.Period,
			MonthlyAmount:     r.MonthlyAmount,
			PreviousBookValue: r.PreviousBookValue,
			NewBookValue:      r.NewBookValue,
		})
	}
	return c.JSON(out)
}
