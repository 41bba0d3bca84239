package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/construplan/construplan-api/internal/application/dto"
	"github.com/construplan/construplan-api/internal/domain"
)

// respondError traduce los errores tipados del dominio a estatus HTTP.
// Cada error de regla de negocio llega con el detalle de la entidad ofendida
// en el mensaje; nunca se colapsa en un error genérico.
func respondError(c *fiber.Ctx, err error) error {
	var (
		missingProvenance *domain.MissingProvenanceError
		insufficientStock *domain.InsufficientStockError
		invalidLine       *domain.InvalidLineError
		incompatible      *domain.IncompatibleStorageError
		auditDrift        *domain.AuditDriftError
	)
	switch {
	case errors.As(err, &missingProvenance):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_PROVENANCE", Message: err.Error()})
	case errors.As(err, &invalidLine):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LINE", Message: err.Error()})
	case errors.As(err, &insufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.As(err, &auditDrift):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "AUDIT_DRIFT", Message: err.Error()})
	case errors.As(err, &incompatible):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "STORAGE_SAFETY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_TAKEN", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrTransientStore):
		// Transitorio: el caller puede reintentar con backoff.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "persistencia no disponible, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
