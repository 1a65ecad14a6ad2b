package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// Adjustment resultado de conciliar un Lot contra su conteo físico.
// Variance = NewQty - OldQty (positiva si el conteo superó al sistema).
type Adjustment struct {
	LotID       string
	SKU         string
	Name        string
	Location    string
	BatchNumber string
	ExpiryDate  time.Time
	OldQty      decimal.Decimal
	NewQty      decimal.Decimal
	Variance    decimal.Decimal
	Date        time.Time
}

// CountLine una línea de la planilla de conteo físico.
type CountLine struct {
	LotID      string
	CountedQty decimal.Decimal
}

// ApplyAuditAdjustment fija la cantidad del Lot al valor contado y sintetiza
// el asiento de ajuste correspondiente (ENTRADA si el conteo superó al
// sistema, SALIDA si quedó por debajo) con el motivo fijo de conciliación.
// Si el conteo coincide con el sistema solo actualiza LastCountDate: no se
// emite asiento de magnitud cero.
func (uc *UseCase) ApplyAuditAdjustment(ctx context.Context, lotID string, countedQty decimal.Decimal, user string) (*Adjustment, error) {
	if countedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var adj *Adjustment
	err := uc.tx.Run(ctx, func(lots repository.LotRepository, movements repository.MovementRepository) error {
		lot, err := lots.GetByID(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		variance := countedQty.Sub(lot.Quantity)
		adj = &Adjustment{
			LotID:       lot.ID,
			SKU:         lot.SKU,
			Name:        lot.Name,
			Location:    lot.Location,
			BatchNumber: lot.BatchNumber,
			ExpiryDate:  lot.ExpiryDate,
			OldQty:      lot.Quantity,
			NewQty:      countedQty,
			Variance:    variance,
			Date:        now,
		}

		lot.Quantity = countedQty
		countCopy := now
		lot.LastCountDate = &countCopy
		lot.UpdatedAt = now
		if err := lots.Update(lot); err != nil {
			return err
		}
		if variance.IsZero() {
			return nil
		}

		movType := entity.MovementEntrada
		if variance.IsNegative() {
			movType = entity.MovementSalida
		}
		return movements.Create(&entity.Movement{
			ID:          uuid.New().String(),
			LotID:       lot.ID,
			SKU:         lot.SKU,
			Name:        lot.Name,
			Type:        movType,
			Quantity:    variance.Abs(),
			Location:    lot.Location,
			BatchNumber: lot.BatchNumber,
			Date:        now,
			Reason:      entity.ReasonAuditAdjustment,
			User:        user,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("lot_id", adj.LotID).
		Str("sku", adj.SKU).
		Str("variance", adj.Variance.String()).
		Msg("conciliación aplicada")
	return adj, nil
}

// ApplyCountSheet aplica una planilla de conteo completa línea por línea y
// devuelve los ajustes en el orden de la planilla (incluidos los de varianza
// cero, que el reporte de conciliación también lista). Las líneas con Lot
// inexistente abortan la planilla entera.
func (uc *UseCase) ApplyCountSheet(ctx context.Context, lines []CountLine, user string) ([]Adjustment, error) {
	adjustments := make([]Adjustment, 0, len(lines))
	for _, line := range lines {
		adj, err := uc.ApplyAuditAdjustment(ctx, line.LotID, line.CountedQty, user)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, *adj)
	}
	return adjustments, nil
}
