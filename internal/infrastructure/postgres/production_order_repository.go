package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const orderColumns = `id, recipe_id, product_name, target_quantity,
	produced_quantity, start_date, end_date, status, assigned_to, batch_output`

// ProductionOrderRepo implementación de ProductionOrderRepository sobre
// PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una orden nueva.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.q.Exec(context.Background(), query,
		order.ID, order.RecipeID, order.ProductName, order.TargetQuantity,
		order.ProducedQuantity, order.StartDate, order.EndDate,
		order.Status, order.AssignedTo, order.BatchOutput,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID; nil si no existe.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.RecipeID, &o.ProductName, &o.TargetQuantity,
		&o.ProducedQuantity, &o.StartDate, &o.EndDate,
		&o.Status, &o.AssignedTo, &o.BatchOutput,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// Update persiste los cambios de una orden.
func (r *ProductionOrderRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders SET recipe_id = $2, product_name = $3,
			target_quantity = $4, produced_quantity = $5, start_date = $6,
			end_date = $7, status = $8, assigned_to = $9, batch_output = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.RecipeID, order.ProductName, order.TargetQuantity,
		order.ProducedQuantity, order.StartDate, order.EndDate,
		order.Status, order.AssignedTo, order.BatchOutput,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes, más recientes primero.
func (r *ProductionOrderRepo) List() ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders ORDER BY start_date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	out := []*entity.ProductionOrder{}
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(
			&o.ID, &o.RecipeID, &o.ProductName, &o.TargetQuantity,
			&o.ProducedQuantity, &o.StartDate, &o.EndDate,
			&o.Status, &o.AssignedTo, &o.BatchOutput,
		); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
