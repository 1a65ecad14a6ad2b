package ledger

import (
	"context"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios de lotes y kardex ligados a una unidad
// atómica: en Postgres una transacción con SELECT ... FOR UPDATE; en memoria
// una sección crítica bajo mutex. Si fn devuelve error, nada queda escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(lots repository.LotRepository, movements repository.MovementRepository) error) error
}
