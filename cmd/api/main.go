package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appassets "github.com/construplan/construplan-api/internal/application/assets"
	appaudit "github.com/construplan/construplan-api/internal/application/audit"
	"github.com/construplan/construplan-api/internal/application/auth"
	"github.com/construplan/construplan-api/internal/application/budget"
	appinventory "github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/infrastructure/notify"
	"github.com/construplan/construplan-api/internal/infrastructure/postgres"
	httpRouter "github.com/construplan/construplan-api/internal/interfaces/http"
	"github.com/construplan/construplan-api/pkg/config"
	"github.com/construplan/construplan-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	notifier := notify.NewLogNotifier(log)

	commitMovementUC := appinventory.NewCommitMovementUseCase(txRunner)
	replenishmentUC := appinventory.NewReplenishmentUseCase(itemRepo, notifier)
	auditUC := appaudit.NewUseCase(txRunner, itemRepo, auditRepo)
	varianceUC := budget.NewVarianceUseCase(budgetRepo, movementRepo, itemRepo, notifier)
	depreciationUC := appassets.NewDepreciationUseCase(itemRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CommitMovement: commitMovementUC,
		Replenishment:  replenishmentUC,
		AuditUC:        auditUC,
		VarianceUC:     varianceUC,
		DepreciationUC: depreciationUC,
		AuthUC:         authUC,
		ItemRepo:       itemRepo,
		MovementRepo:   movementRepo,
		AuditRepo:      auditRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
