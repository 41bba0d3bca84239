package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: los documentos son inmutables.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// CreateDocument inserta el documento y todas sus líneas.
func (r *MovementRepo) CreateDocument(ctx context.Context, doc *entity.MovementDocument) error {
	docQuery := `
		INSERT INTO movement_documents (id, class, reference, responsible_id, remark, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, docQuery,
		doc.ID, doc.Class, doc.Reference, nullable(doc.ResponsibleID), doc.Remark, doc.Date, doc.CreatedAt,
	); err != nil {
		return wrapStoreErr("create movement document", err)
	}
	lineQuery := `
		INSERT INTO movement_lines (id, document_id, item_id, quantity, amount, budget_line_id, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range doc.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, doc.ID, line.ItemID, line.Quantity, line.Amount, line.BudgetLineID, nullable(line.LocationID),
		); err != nil {
			return wrapStoreErr("create movement line", err)
		}
	}
	return nil
}

// GetDocument obtiene un documento con sus líneas; nil si no existe.
func (r *MovementRepo) GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error) {
	query := `
		SELECT id, class, reference, COALESCE(responsible_id, ''), remark, date, created_at
		FROM movement_documents WHERE id = $1`
	var d entity.MovementDocument
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Class, &d.Reference, &d.ResponsibleID, &d.Remark, &d.Date, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get movement document", err)
	}
	if d.Lines, err = r.linesFor(ctx, d.ID); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByItem kardex de un ítem en un rango de fechas, documentos más recientes primero.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.MovementDocument, error) {
	query := `
		SELECT DISTINCT d.id, d.class, d.reference, COALESCE(d.responsible_id, ''), d.remark, d.date, d.created_at
		FROM movement_documents d
		JOIN movement_lines l ON l.document_id = d.id
		WHERE l.item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND d.date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND d.date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY d.date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list movements by item", err)
	}
	defer rows.Close()

	var list []*entity.MovementDocument
	for rows.Next() {
		var d entity.MovementDocument
		if err := rows.Scan(&d.ID, &d.Class, &d.Reference, &d.ResponsibleID, &d.Remark, &d.Date, &d.CreatedAt); err != nil {
			return nil, wrapStoreErr("scan movement document", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range list {
		if d.Lines, err = r.linesFor(ctx, d.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SumQuantityByItem suma de cantidades firmadas de todas las líneas del ítem.
func (r *MovementRepo) SumQuantityByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM movement_lines WHERE item_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, wrapStoreErr("sum quantity by item", err)
	}
	return sum, nil
}

// AccumulatedConsumption consumo acumulado (cantidad y costo) imputado a la
// partida: suma de |cantidad| y |monto| de líneas CONSUMPTION.
func (r *MovementRepo) AccumulatedConsumption(ctx context.Context, budgetLineID string) (repository.ConsumptionAccumulated, error) {
	query := `
		SELECT COALESCE(SUM(ABS(l.quantity)), 0), COALESCE(SUM(ABS(l.amount)), 0)
		FROM movement_lines l
		JOIN movement_documents d ON d.id = l.document_id
		WHERE l.budget_line_id = $1 AND d.class = $2`
	var acc repository.ConsumptionAccumulated
	err := r.q.QueryRow(ctx, query, budgetLineID, entity.MovementClassConsumption).
		Scan(&acc.Quantity, &acc.Cost)
	if err != nil {
		return repository.ConsumptionAccumulated{}, wrapStoreErr("accumulated consumption", err)
	}
	return acc, nil
}

func (r *MovementRepo) linesFor(ctx context.Context, docID string) ([]entity.MovementLine, error) {
	query := `
		SELECT id, document_id, item_id, quantity, amount, budget_line_id, COALESCE(location_id, '')
		FROM movement_lines WHERE document_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, docID)
	if err != nil {
		return nil, wrapStoreErr("list movement lines", err)
	}
	defer rows.Close()
	var lines []entity.MovementLine
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ItemID, &l.Quantity, &l.Amount, &l.BudgetLineID, &l.LocationID); err != nil {
			return nil, wrapStoreErr("scan movement line", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
