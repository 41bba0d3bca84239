// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria, con semántica transaccional por snapshot. Sustituye a PostgreSQL en
// tests y demos sin tocar los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/construplan/construplan-api/internal/application/inventory"
	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

// Store almacén en memoria compartido por todos los repositorios.
// Un solo mutex serializa las transacciones: equivalente funcional del
// bloqueo por fila de PostgreSQL para efectos de los casos de uso.
type Store struct {
	mu          sync.Mutex
	items       map[string]entity.InventoryItem
	docs        []entity.MovementDocument
	audits      map[string]entity.AuditRecord
	adjustments map[string]entity.Adjustment
	budgets     map[string]entity.BudgetLineItem
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:       make(map[string]entity.InventoryItem),
		audits:      make(map[string]entity.AuditRecord),
		adjustments: make(map[string]entity.Adjustment),
		budgets:     make(map[string]entity.BudgetLineItem),
	}
}

// SeedItem carga un ítem en el catálogo (alta por registro, fuera del núcleo).
func (s *Store) SeedItem(item entity.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// SeedBudgetLine carga una partida presupuestal.
func (s *Store) SeedBudgetLine(line entity.BudgetLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[line.ID] = line
}

// Items repositorio de ítems fuera de transacción.
func (s *Store) Items() repository.ItemRepository { return &itemRepo{s: s, lock: true} }

// Movements repositorio de kardex fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s, lock: true} }

// Audits repositorio de auditorías fuera de transacción.
func (s *Store) Audits() repository.AuditRepository { return &auditRepo{s: s, lock: true} }

// Budgets repositorio de partidas fuera de transacción.
func (s *Store) Budgets() repository.BudgetRepository { return &budgetRepo{s: s, lock: true} }

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn bajo el mutex con rollback por snapshot: si fn falla, el
// estado queda exactamente como antes (todo o nada, como la tx de PostgreSQL).
func (s *Store) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(&itemRepo{s: s}, &movementRepo{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunAudit variante con el repositorio de auditorías.
func (s *Store) RunAudit(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	audits repository.AuditRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(&itemRepo{s: s}, &movementRepo{s: s}, &auditRepo{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	items       map[string]entity.InventoryItem
	docs        []entity.MovementDocument
	audits      map[string]entity.AuditRecord
	adjustments map[string]entity.Adjustment
}

func (s *Store) snapshot() snapshot {
	items := make(map[string]entity.InventoryItem, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	audits := make(map[string]entity.AuditRecord, len(s.audits))
	for k, v := range s.audits {
		audits[k] = v
	}
	adjustments := make(map[string]entity.Adjustment, len(s.adjustments))
	for k, v := range s.adjustments {
		adjustments[k] = v
	}
	docs := make([]entity.MovementDocument, len(s.docs))
	copy(docs, s.docs)
	return snapshot{items: items, docs: docs, audits: audits, adjustments: adjustments}
}

func (s *Store) restore(snap snapshot) {
	s.items = snap.items
	s.docs = snap.docs
	s.audits = snap.audits
	s.adjustments = snap.adjustments
}
