package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	// ErrTransientStore error transitorio de persistencia (timeout, conexión);
	// reintentable por el caller, a diferencia de las violaciones de regla de negocio.
	ErrTransientStore = errors.New("error transitorio de persistencia")
)

// MissingProvenanceError entrada sin documento de referencia (factura, remisión).
// Regla de negocio dura: toda entrada requiere procedencia.
type MissingProvenanceError struct {
	ItemID string
}

func (e *MissingProvenanceError) Error() string {
	return fmt.Sprintf("entrada sin documento de referencia para el ítem %s", e.ItemID)
}

// InsufficientStockError el movimiento dejaría la cantidad disponible en negativo.
type InsufficientStockError struct {
	ItemID    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el ítem %s: solicitado %s, disponible %s",
		e.ItemID, e.Requested, e.Available)
}

// InvalidLineError línea de movimiento mal formada (cantidad cero, signo
// incorrecto para la clase, costo faltante en entrada).
type InvalidLineError struct {
	ItemID string
	Reason string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("línea inválida para el ítem %s: %s", e.ItemID, e.Reason)
}

// IncompatibleStorageError el traslado colocaría clases de almacenamiento
// incompatibles en la misma ubicación (ej. combustible junto a oxidantes).
// Rechazo duro, no advertencia.
type IncompatibleStorageError struct {
	ItemID      string
	LocationID  string
	Class       entity.StorageClass
	Conflicting entity.StorageClass
}

func (e *IncompatibleStorageError) Error() string {
	return fmt.Sprintf("almacenamiento incompatible en %s: el ítem %s (%s) no puede convivir con %s",
		e.LocationID, e.ItemID, e.Class, e.Conflicting)
}

// AuditDriftError la cantidad en libros cambió entre el conteo y el ajuste.
// El ajuste se rechaza: se requiere un conteo nuevo en lugar de pisar
// movimientos legítimos intermedios.
type AuditDriftError struct {
	AuditID  string
	ItemID   string
	Snapshot decimal.Decimal
	Current  decimal.Decimal
}

func (e *AuditDriftError) Error() string {
	return fmt.Sprintf("auditoría %s: la cantidad del ítem %s cambió desde el conteo (snapshot %s, actual %s)",
		e.AuditID, e.ItemID, e.Snapshot, e.Current)
}
