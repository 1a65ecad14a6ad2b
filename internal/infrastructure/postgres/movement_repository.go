package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, lot_id, sku, name, type, quantity, location,
	target_location, batch_number, date, reason, username`

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o
// tx). Solo inserta y lee: el kardex es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un asiento del kardex.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.LotID, m.SKU, m.Name, m.Type, m.Quantity, m.Location,
		m.TargetLocation, m.BatchNumber, m.Date, m.Reason, m.User,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista el kardex paginado, fecha descendente.
func (r *MovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

// ListAll lista el kardex completo, fecha descendente.
func (r *MovementRepo) ListAll() ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all movements: %w", err)
	}
	return scanMovements(rows)
}

// ListByLot lista los asientos de un Lot, fecha descendente.
func (r *MovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE lot_id = $1 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list movements by lot: %w", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	out := []*entity.Movement{}
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.LotID, &m.SKU, &m.Name, &m.Type, &m.Quantity, &m.Location,
			&m.TargetLocation, &m.BatchNumber, &m.Date, &m.Reason, &m.User,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
