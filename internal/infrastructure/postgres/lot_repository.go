package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, sku, name, description, category, location, batch_number,
	expiry_date, quantity, unit, min_stock_level, last_count_date, created_at, updated_at`

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o
// tx). Con forUpdate activo, las lecturas por ID y por clave natural bloquean
// la fila (SELECT ... FOR UPDATE): es el modo que usa el TxRunner para que dos
// movimientos concurrentes sobre el mismo Lot se serialicen.
type LotRepo struct {
	q         Querier
	forUpdate bool
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// newTxLotRepository variante con bloqueo de fila, solo para el TxRunner.
func newTxLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q, forUpdate: true}
}

// Create persiste un Lot nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.SKU, lot.Name, lot.Description, lot.Category, lot.Location,
		lot.BatchNumber, lot.ExpiryDate, lot.Quantity, lot.Unit,
		lot.MinStockLevel, lot.LastCountDate, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un Lot por ID; nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1` + r.lockClause()
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByKey obtiene un Lot por su clave natural; nil si no existe.
func (r *LotRepo) GetByKey(key entity.LotKey) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE sku = $1 AND batch_number = $2 AND location = $3` + r.lockClause()
	return r.scanOne(r.q.QueryRow(context.Background(), query, key.SKU, key.BatchNumber, key.Location))
}

// Update persiste los cambios de un Lot.
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots SET sku = $2, name = $3, description = $4, category = $5,
			location = $6, batch_number = $7, expiry_date = $8, quantity = $9,
			unit = $10, min_stock_level = $11, last_count_date = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.SKU, lot.Name, lot.Description, lot.Category, lot.Location,
		lot.BatchNumber, lot.ExpiryDate, lot.Quantity, lot.Unit,
		lot.MinStockLevel, lot.LastCountDate, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un Lot por ID.
func (r *LotRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista lotes paginados en orden estable.
func (r *LotRepo) List(limit, offset int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		ORDER BY sku, location, batch_number LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return r.scanMany(rows)
}

// ListAll lista todos los lotes en orden estable.
func (r *LotRepo) ListAll() ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots ORDER BY sku, location, batch_number`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all lots: %w", err)
	}
	return r.scanMany(rows)
}

// ListBySKU lista los lotes de un SKU.
func (r *LotRepo) ListBySKU(sku string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE sku = $1 ORDER BY location, batch_number`
	rows, err := r.q.Query(context.Background(), query, sku)
	if err != nil {
		return nil, fmt.Errorf("list lots by sku: %w", err)
	}
	return r.scanMany(rows)
}

// ListLowStock lista los lotes en o bajo su nivel mínimo.
func (r *LotRepo) ListLowStock() ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE quantity <= min_stock_level ORDER BY sku, location, batch_number`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return r.scanMany(rows)
}

// ListExpiringBefore lista los lotes que vencen antes del instante dado.
func (r *LotRepo) ListExpiringBefore(t time.Time) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE expiry_date < $1 ORDER BY expiry_date`
	rows, err := r.q.Query(context.Background(), query, t)
	if err != nil {
		return nil, fmt.Errorf("list expiring: %w", err)
	}
	return r.scanMany(rows)
}

// AnyAtLocation indica si hay algún Lot registrado en la ubicación.
func (r *LotRepo) AnyAtLocation(location string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM lots WHERE lower(location) = lower($1))`, location,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("any at location: %w", err)
	}
	return exists, nil
}

func (r *LotRepo) lockClause() string {
	if r.forUpdate {
		return " FOR UPDATE"
	}
	return ""
}

func (r *LotRepo) scanOne(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.SKU, &l.Name, &l.Description, &l.Category, &l.Location,
		&l.BatchNumber, &l.ExpiryDate, &l.Quantity, &l.Unit,
		&l.MinStockLevel, &l.LastCountDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) scanMany(rows pgx.Rows) ([]*entity.Lot, error) {
	defer rows.Close()
	out := []*entity.Lot{}
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(
			&l.ID, &l.SKU, &l.Name, &l.Description, &l.Category, &l.Location,
			&l.BatchNumber, &l.ExpiryDate, &l.Quantity, &l.Unit,
			&l.MinStockLevel, &l.LastCountDate, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
