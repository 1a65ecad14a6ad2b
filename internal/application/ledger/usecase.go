package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// InsufficientStockError rechaza una SALIDA o TRANSFERENCIA que excede el
// stock disponible del Lot origen. Envuelve domain.ErrInsufficientStock.
type InsufficientStockError struct {
	SKU       string
	Location  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s en %s: disponible %s, solicitado %s",
		e.SKU, e.Location, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error {
	return domain.ErrInsufficientStock
}

// MovementInput parámetros de un movimiento contra el ledger.
type MovementInput struct {
	LotID          string
	Type           string // ENTRADA | SALIDA | TRANSFERENCIA
	Quantity       decimal.Decimal
	BatchNumber    string // solo ENTRADA: lote de fabricación recibido; vacío => el del Lot origen
	TargetLocation string // solo TRANSFERENCIA
	Reason         string
	User           string
	Date           time.Time // cero => time.Now()
}

// UseCase es el único punto de escritura del stock: todo cambio de cantidad
// pasa por RegisterMovement o por la conciliación física (audit.go), y cada
// cambio deja un asiento inmutable en el kardex.
type UseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log}
}

// RegisterMovement aplica un movimiento de forma atómica y devuelve el asiento
// creado junto con los Lots afectados (origen, y destino si hubo traslado).
//
//   - ENTRADA: acredita sobre la clave natural (SKU, BatchNumber, Location);
//     si el lote de fabricación recibido ya existe en esa ubicación se fusiona
//     sumando la cantidad, si no se clona el Lot origen como plantilla con un
//     ID nuevo. Un BatchNumber distinto en la entrada crea así un Lot hermano.
//   - SALIDA: descuenta del Lot origen; rechaza si excede lo disponible.
//   - TRANSFERENCIA: descuenta del origen y acredita en TargetLocation,
//     fusionando o clonando el Lot destino según su clave natural. Se registra
//     UN solo asiento con ambas ubicaciones.
func (uc *UseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.Type == entity.MovementTransferencia && in.TargetLocation == "" {
		return nil, fmt.Errorf("%w: la transferencia requiere ubicación destino", domain.ErrInvalidInput)
	}

	var movement *entity.Movement
	err := uc.tx.Run(ctx, func(lots repository.LotRepository, movements repository.MovementRepository) error {
		source, err := lots.GetByID(in.LotID)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		if in.Type == entity.MovementTransferencia && in.TargetLocation == source.Location {
			return fmt.Errorf("%w: la ubicación destino coincide con el origen", domain.ErrInvalidInput)
		}

		batch := source.BatchNumber
		switch in.Type {
		case entity.MovementEntrada:
			if in.BatchNumber != "" {
				batch = in.BatchNumber
			}
			if err := creditLot(lots, source, batch, source.Location, in.Quantity); err != nil {
				return err
			}
		case entity.MovementSalida:
			if err := debitLot(lots, source, in.Quantity); err != nil {
				return err
			}
		case entity.MovementTransferencia:
			if err := debitLot(lots, source, in.Quantity); err != nil {
				return err
			}
			if err := creditLot(lots, source, batch, in.TargetLocation, in.Quantity); err != nil {
				return err
			}
		}

		movement = newMovement(source, batch, in)
		return movements.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", movement.ID).
		Str("type", movement.Type).
		Str("sku", movement.SKU).
		Str("quantity", movement.Quantity.String()).
		Msg("movimiento registrado")
	return movement, nil
}

// debitLot descuenta del Lot origen rechazando si excede el disponible.
// La resta nunca deja cantidad negativa, aunque el chequeo fallara.
func debitLot(lots repository.LotRepository, lot *entity.Lot, qty decimal.Decimal) error {
	if qty.GreaterThan(lot.Quantity) {
		return &InsufficientStockError{
			SKU:       lot.SKU,
			Location:  lot.Location,
			Available: lot.Quantity,
			Requested: qty,
		}
	}
	lot.Quantity = lot.Quantity.Sub(qty)
	if lot.Quantity.IsNegative() {
		lot.Quantity = decimal.Zero
	}
	lot.UpdatedAt = time.Now()
	return lots.Update(lot)
}

// creditLot acredita qty sobre la clave (template.SKU, batch, location):
// fusiona con el Lot existente de esa clave, o clona la plantilla con un ID
// nuevo si no existe.
func creditLot(lots repository.LotRepository, template *entity.Lot, batch, location string, qty decimal.Decimal) error {
	key := entity.LotKey{SKU: template.SKU, BatchNumber: batch, Location: location}
	existing, err := lots.GetByKey(key)
	if err != nil {
		return err
	}
	now := time.Now()
	if existing != nil {
		existing.Quantity = existing.Quantity.Add(qty)
		existing.UpdatedAt = now
		return lots.Update(existing)
	}
	clone := *template
	clone.ID = uuid.New().String()
	clone.BatchNumber = batch
	clone.Location = location
	clone.Quantity = qty
	clone.LastCountDate = nil
	clone.CreatedAt = now
	clone.UpdatedAt = now
	return lots.Create(&clone)
}

func newMovement(source *entity.Lot, batch string, in MovementInput) *entity.Movement {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	return &entity.Movement{
		ID:             uuid.New().String(),
		LotID:          source.ID,
		SKU:            source.SKU,
		Name:           source.Name,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Location:       source.Location,
		TargetLocation: in.TargetLocation,
		BatchNumber:    batch,
		Date:           date,
		Reason:         in.Reason,
		User:           in.User,
	}
}
