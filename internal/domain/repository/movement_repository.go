package repository

import "github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"

// MovementRepository define el puerto de persistencia del kardex.
// Los asientos son append-only: no existe Update ni Delete, y no hay política
// de truncado (el historial completo es parte del contrato de trazabilidad).
type MovementRepository interface {
	Create(m *entity.Movement) error
	List(limit, offset int) ([]*entity.Movement, error) // orden: fecha descendente
	ListAll() ([]*entity.Movement, error)               // orden: fecha descendente
	ListByLot(lotID string) ([]*entity.Movement, error)
}
