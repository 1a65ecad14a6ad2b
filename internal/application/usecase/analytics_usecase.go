package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// Zonas operativas del dashboard. La clasificación se hace por el nombre de
// la ubicación normalizado (sin mayúsculas ni diacríticos).
const (
	ZoneLabsCL      = "Labs/Fábrica CL"
	ZoneLogisticaCL = "Logística CL"
	ZoneBrasil      = "Brasil"
)

// AnalyticsUseCase KPIs agregados del dashboard general.
type AnalyticsUseCase struct {
	lots         repository.LotRepository
	requisitions repository.RequisitionRepository
	views        *ledger.Views
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(lots repository.LotRepository, requisitions repository.RequisitionRepository, views *ledger.Views) *AnalyticsUseCase {
	return &AnalyticsUseCase{lots: lots, requisitions: requisitions, views: views}
}

// Summary arma el resumen completo del dashboard en una sola pasada sobre el
// inventario.
func (uc *AnalyticsUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	all, err := uc.lots.ListAll()
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byZone := map[string]decimal.Decimal{
		ZoneLabsCL:      decimal.Zero,
		ZoneLogisticaCL: decimal.Zero,
		ZoneBrasil:      decimal.Zero,
	}
	lowStock := make([]dto.LotResponse, 0)
	for _, lot := range all {
		total = total.Add(lot.Quantity)
		zone := classifyZone(lot.Location)
		byZone[zone] = byZone[zone].Add(lot.Quantity)
		if lot.IsLowStock() {
			lowStock = append(lowStock, *toLotResponse(lot))
		}
	}

	pending, err := uc.requisitions.CountByStatus(entity.RequisitionPending)
	if err != nil {
		return nil, err
	}
	expiring, err := uc.views.ExpiryRisk(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		TotalUnits:          total,
		LowStockCount:       len(lowStock),
		PendingRequisitions: pending,
		ExpiryRiskCount:     len(expiring),
		StockByZone: []dto.ZoneStockDTO{
			{Zone: ZoneLabsCL, Quantity: byZone[ZoneLabsCL]},
			{Zone: ZoneLogisticaCL, Quantity: byZone[ZoneLogisticaCL]},
			{Zone: ZoneBrasil, Quantity: byZone[ZoneBrasil]},
		},
		LowStockItems: lowStock,
	}, nil
}

// classifyZone asigna una ubicación a su zona del dashboard: todo lo de
// Brasil junto, los laboratorios y la fábrica de Chile juntos, y el resto de
// Chile como logística.
func classifyZone(location string) string {
	folded := foldForSearch(location)
	switch {
	case strings.HasPrefix(folded, "brasil"):
		return ZoneBrasil
	case strings.Contains(folded, "lab") || strings.Contains(folded, "fabrica"):
		return ZoneLabsCL
	default:
		return ZoneLogisticaCL
	}
}
