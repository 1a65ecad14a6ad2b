package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// DefaultExpiryHorizonMonths horizonte por defecto de la vista de riesgo de
// vencimiento.
const DefaultExpiryHorizonMonths = 3

// Views consultas de solo lectura derivadas del estado del ledger. No abren
// transacción: leen el repositorio directamente.
type Views struct {
	lots repository.LotRepository
}

// NewViews construye las vistas del ledger.
func NewViews(lots repository.LotRepository) *Views {
	return &Views{lots: lots}
}

// LowStock lista los Lots en o bajo su nivel mínimo.
func (v *Views) LowStock(ctx context.Context) ([]*entity.Lot, error) {
	return v.lots.ListLowStock()
}

// ExpiryRisk lista los Lots que vencen dentro de los próximos horizonMonths
// meses (<= 0 usa el horizonte por defecto). Incluye los ya vencidos.
func (v *Views) ExpiryRisk(ctx context.Context, horizonMonths int) ([]*entity.Lot, error) {
	if horizonMonths <= 0 {
		horizonMonths = DefaultExpiryHorizonMonths
	}
	cutoff := time.Now().AddDate(0, horizonMonths, 0)
	return v.lots.ListExpiringBefore(cutoff)
}

// GlobalStockForSKU suma el stock de un SKU a través de todos sus Lots,
// en todas las ubicaciones y lotes de fabricación.
func (v *Views) GlobalStockForSKU(ctx context.Context, sku string) (decimal.Decimal, []*entity.Lot, error) {
	lots, err := v.lots.ListBySKU(sku)
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.Quantity)
	}
	return total, lots, nil
}

// PreviewCountSheet calcula las varianzas de una planilla de conteo SIN
// aplicar nada: ni cantidades, ni fecha de conteo, ni asientos. Es la vista
// previa que el auditor revisa antes de confirmar la conciliación.
func (v *Views) PreviewCountSheet(ctx context.Context, lines []CountLine) ([]Adjustment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]Adjustment, 0, len(lines))
	for _, line := range lines {
		if line.CountedQty.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lot, err := v.lots.GetByID(line.LotID)
		if err != nil {
			return nil, err
		}
		if lot == nil {
			return nil, domain.ErrNotFound
		}
		out = append(out, Adjustment{
			LotID:       lot.ID,
			SKU:         lot.SKU,
			Name:        lot.Name,
			Location:    lot.Location,
			BatchNumber: lot.BatchNumber,
			ExpiryDate:  lot.ExpiryDate,
			OldQty:      lot.Quantity,
			NewQty:      line.CountedQty,
			Variance:    line.CountedQty.Sub(lot.Quantity),
			Date:        now,
		})
	}
	return out, nil
}

// TotalUnits suma las cantidades de todos los Lots sin normalizar por unidad
// (kg y cajas se suman igual; es el KPI bruto del dashboard).
func (v *Views) TotalUnits(ctx context.Context) (decimal.Decimal, error) {
	lots, err := v.lots.ListAll()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.Quantity)
	}
	return total, nil
}
