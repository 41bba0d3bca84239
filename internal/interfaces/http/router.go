package http

import (
	"github.com/gofiber/fiber/v2"

	appassets "github.com/construplan/construplan-api/internal/application/assets"
	appaudit "github.com/construplan/construplan-api/internal/application/audit"
	"github.com/construplan/construplan-api/internal/application/auth"
	"github.com/construplan/construplan-api/internal/application/budget"
	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CommitMovement *appinventory.CommitMovementUseCase
	Replenishment  *appinventory.ReplenishmentUseCase
	AuditUC        *appaudit.UseCase
	VarianceUC     *budget.VarianceUseCase
	DepreciationUC *appassets.DepreciationUseCase
	AuthUC         *auth.AuthUseCase

	ItemRepo     repository.ItemRepository
	MovementRepo repository.MovementRepository
	AuditRepo    repository.AuditRepository

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de ítems y kardex (protegido)
	inventoryHandler := NewInventoryHandler(deps.ItemRepo, deps.MovementRepo, deps.Replenishment)
	items := protected.Group("/items")
	items.Get("/", inventoryHandler.ListItems)
	items.Get("/:id", inventoryHandler.GetItem)
	items.Get("/:id/kardex", inventoryHandler.Kardex)
	protected.Get("/inventory/replenishment", inventoryHandler.Replenishment)

	// Documentos de movimiento (protegido)
	movementHandler := NewMovementHandler(deps.CommitMovement, deps.MovementRepo)
	movements := protected.Group("/movements")
	movements.Post("/", movementHandler.Commit)
	movements.Post("/receipts", movementHandler.Receive)
	movements.Get("/:id", movementHandler.GetByID)

	// Auditorías y ajustes (protegido)
	auditHandler := NewAuditHandler(deps.AuditUC, deps.AuditRepo)
	audits := protected.Group("/audits")
	audits.Post("/", auditHandler.SubmitCount)
	audits.Get("/", auditHandler.ListAudits)
	audits.Get("/:id", auditHandler.GetAudit)
	audits.Post("/:id/adjustment", auditHandler.ApplyAdjustment)

	// Presupuesto (protegido)
	budgetHandler := NewBudgetHandler(deps.VarianceUC)
	protected.Post("/budget/variance-check", budgetHandler.VarianceCheck)

	// Activos (protegido, solo admin)
	assetHandler := NewAssetHandler(deps.DepreciationUC)
	protected.Post("/assets/depreciation-run", RequireRole(entity.RoleAdmin), assetHandler.RunDepreciation)
}
