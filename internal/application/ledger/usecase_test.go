package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc    *ledger.UseCase
	views *ledger.Views
	lots  *memory.LotRepository
	movs  *memory.MovementRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		uc:    ledger.NewUseCase(memory.NewTxRunner(store), logger.New(logger.Config{Level: "error"})),
		views: ledger.NewViews(memory.NewLotRepository(store)),
		lots:  memory.NewLotRepository(store),
		movs:  memory.NewMovementRepository(store),
	}
}

// seedLot crea un Lot con valores razonables y lo persiste.
func (f *fixture) seedLot(t *testing.T, sku, batch, location string, qty int64) *entity.Lot {
	t.Helper()
	now := time.Now()
	lot := &entity.Lot{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          "Item " + sku,
		Category:      entity.CategoryRawMaterial,
		Location:      location,
		BatchNumber:   batch,
		ExpiryDate:    now.AddDate(1, 0, 0),
		Quantity:      decimal.NewFromInt(qty),
		Unit:          "kg",
		MinStockLevel: decimal.NewFromInt(10),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.lots.Create(lot))
	return lot
}

func (f *fixture) lotQty(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	lot, err := f.lots.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, lot)
	return lot.Quantity
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaFusionaMismoLote(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "MALTODEXTRINA", "L-001", entity.LocationChileLogistica, 100)

	mov, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		LotID:    lot.ID,
		Type:     entity.MovementEntrada,
		Quantity: qty(50),
		Reason:   "Recepción proveedor",
		User:     "sabrina",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementEntrada, mov.Type)
	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(150)), "la entrada debe sumar sobre el mismo Lot")

	all, err := f.lots.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1, "misma clave natural: no debe crearse un Lot nuevo")
}

func TestRegisterMovement_EntradaConLoteNuevoCreaLotHermano(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "MALTODEXTRINA", "L-001", entity.LocationChileLogistica, 100)

	mov, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		LotID:       lot.ID,
		Type:        entity.MovementEntrada,
		Quantity:    qty(40),
		BatchNumber: "L-002",
		User:        "sabrina",
	})
	require.NoError(t, err)
	assert.Equal(t, "L-002", mov.BatchNumber)

	// El origen no cambia; aparece un hermano con el lote nuevo.
	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(100)))
	sibling, err := f.lots.GetByKey(entity.LotKey{
		SKU: "MALTODEXTRINA", BatchNumber: "L-002", Location: entity.LocationChileLogistica,
	})
	require.NoError(t, err)
	require.NotNil(t, sibling)
	assert.True(t, sibling.Quantity.Equal(qty(40)))
	assert.NotEqual(t, lot.ID, sibling.ID)
	assert.Nil(t, sibling.LastCountDate, "el clon nace sin historial de conteo")
}

func TestRegisterMovement_SalidaDescuenta(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "AGAR-BASE", "L-010", entity.LocationChileLabPiso5, 80)

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		LotID:    lot.ID,
		Type:     entity.MovementSalida,
		Quantity: qty(30),
		User:     "marco",
	})
	require.NoError(t, err)
	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(50)))
}

func TestRegisterMovement_SalidaInsuficienteRechazaSinEfectos(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "AGAR-BASE", "L-010", entity.LocationChileLabPiso5, 20)

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		LotID:    lot.ID,
		Type:     entity.MovementSalida,
		Quantity: qty(25),
		User:     "marco",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *ledger.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "AGAR-BASE", insuf.SKU)
	assert.Equal(t, entity.LocationChileLabPiso5, insuf.Location)
	assert.True(t, insuf.Available.Equal(qty(20)))
	assert.True(t, insuf.Requested.Equal(qty(25)))

	// Sin cambios de stock ni asiento en el kardex.
	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(20)))
	movs, err := f.movs.ListAll()
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterMovement_TransferenciaCreaDestinoYUnSoloAsiento(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "FAGO-T4", "L-100", entity.LocationChileLogistica, 90)

	mov, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		LotID:          lot.ID,
		Type:           entity.MovementTransferencia,
		Quantity:       qty(40),
		TargetLocation: entity.LocationChileLabMinus3,
		User:           "sabrina",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.LocationChileLogistica, mov.Location)
	assert.Equal(t, entity.LocationChileLabMinus3, mov.TargetLocation)
	assert.True(t, mov.IsTransfer())

	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(50)))
	dest, err := f.lots.GetByKey(entity.LotKey{
		SKU: "FAGO-T4", BatchNumber: "L-100", Location: entity.LocationChileLabMinus3,
	})
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.True(t, dest.Quantity.Equal(qty(40)))

	movs, err := f.movs.ListAll()
	require.NoError(t, err)
	assert.Len(t, movs, 1, "una transferencia genera exactamente un asiento")
}

func TestRegisterMovement_TransferenciaFusionaDestinoExistente(t *testing.T) {
	f := newFixture(t)
	src := f.seedLot(t, "FAGO-T4", "L-100", entity.LocationChileLogistica, 90)
	dst := f.seedLot(t, "FAGO-T4", "L-100", entity.LocationChileLabMinus3, 10)

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		LotID:          src.ID,
		Type:           entity.MovementTransferencia,
		Quantity:       qty(40),
		TargetLocation: entity.LocationChileLabMinus3,
		User:           "sabrina",
	})
	require.NoError(t, err)

	assert.True(t, f.lotQty(t, src.ID).Equal(qty(50)))
	assert.True(t, f.lotQty(t, dst.ID).Equal(qty(50)), "el destino existente debe fusionar, no clonar")

	all, err := f.lots.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "SKU-V", "L-1", entity.LocationChileLogistica, 10)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ledger.MovementInput
		want error
	}{
		{
			name: "tipo desconocido",
			in:   ledger.MovementInput{LotID: lot.ID, Type: "MERMA", Quantity: qty(1)},
			want: domain.ErrInvalidInput,
		},
		{
			name: "cantidad cero",
			in:   ledger.MovementInput{LotID: lot.ID, Type: entity.MovementSalida, Quantity: decimal.Zero},
			want: domain.ErrInvalidInput,
		},
		{
			name: "cantidad negativa",
			in:   ledger.MovementInput{LotID: lot.ID, Type: entity.MovementEntrada, Quantity: qty(-5)},
			want: domain.ErrInvalidInput,
		},
		{
			name: "transferencia sin destino",
			in:   ledger.MovementInput{LotID: lot.ID, Type: entity.MovementTransferencia, Quantity: qty(1)},
			want: domain.ErrInvalidInput,
		},
		{
			name: "transferencia al mismo origen",
			in: ledger.MovementInput{
				LotID: lot.ID, Type: entity.MovementTransferencia,
				Quantity: qty(1), TargetLocation: entity.LocationChileLogistica,
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "lot inexistente",
			in:   ledger.MovementInput{LotID: uuid.New().String(), Type: entity.MovementSalida, Quantity: qty(1)},
			want: domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RegisterMovement(ctx, tc.in)
			assert.True(t, errors.Is(err, tc.want), "esperaba %v, obtuve %v", tc.want, err)
		})
	}

	movs, err := f.movs.ListAll()
	require.NoError(t, err)
	assert.Empty(t, movs, "ninguna validación fallida debe dejar asiento")
}

// Escenario completo: recepción, consumo, rechazo y traslado final.
func TestRegisterMovement_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lot := f.seedLot(t, "MALTODEXTRINA", "L-001", entity.LocationChileLogistica, 100)

	_, err := f.uc.RegisterMovement(ctx, ledger.MovementInput{
		LotID: lot.ID, Type: entity.MovementSalida, Quantity: qty(30), User: "marco",
	})
	require.NoError(t, err)

	_, err = f.uc.RegisterMovement(ctx, ledger.MovementInput{
		LotID: lot.ID, Type: entity.MovementSalida, Quantity: qty(100), User: "marco",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.uc.RegisterMovement(ctx, ledger.MovementInput{
		LotID: lot.ID, Type: entity.MovementTransferencia, Quantity: qty(70),
		TargetLocation: entity.LocationBrasilLogvet, User: "sabrina",
	})
	require.NoError(t, err)

	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(0)), "el origen queda en cero")
	dest, err := f.lots.GetByKey(entity.LotKey{
		SKU: "MALTODEXTRINA", BatchNumber: "L-001", Location: entity.LocationBrasilLogvet,
	})
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.True(t, dest.Quantity.Equal(qty(70)))

	movs, err := f.movs.ListAll()
	require.NoError(t, err)
	assert.Len(t, movs, 2, "solo la salida válida y la transferencia dejan asiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación física
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAuditAdjustment_ConteoMayorSintetizaEntrada(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "PEPTONA", "L-200", entity.LocationChileLabPiso5, 50)

	adj, err := f.uc.ApplyAuditAdjustment(context.Background(), lot.ID, qty(58), "auditor")
	require.NoError(t, err)

	assert.True(t, adj.Variance.Equal(qty(8)))
	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(58)))

	movs, err := f.movs.ListByLot(lot.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementEntrada, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(qty(8)), "el asiento lleva la magnitud de la varianza")
	assert.Equal(t, entity.ReasonAuditAdjustment, movs[0].Reason)
}

func TestApplyAuditAdjustment_ConteoMenorSintetizaSalida(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "PEPTONA", "L-200", entity.LocationChileLabPiso5, 50)

	adj, err := f.uc.ApplyAuditAdjustment(context.Background(), lot.ID, qty(45), "auditor")
	require.NoError(t, err)

	assert.True(t, adj.Variance.Equal(qty(-5)))
	assert.True(t, f.lotQty(t, lot.ID).Equal(qty(45)))

	movs, err := f.movs.ListByLot(lot.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementSalida, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(qty(5)))
}

func TestApplyAuditAdjustment_SinVarianzaNoEmiteAsiento(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "PEPTONA", "L-200", entity.LocationChileLabPiso5, 50)

	adj, err := f.uc.ApplyAuditAdjustment(context.Background(), lot.ID, qty(50), "auditor")
	require.NoError(t, err)
	assert.True(t, adj.Variance.IsZero())

	updated, err := f.lots.GetByID(lot.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastCountDate, "el conteo sin varianza igual registra LastCountDate")

	movs, err := f.movs.ListAll()
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestApplyAuditAdjustment_ConteoNegativoRechazado(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, "PEPTONA", "L-200", entity.LocationChileLabPiso5, 50)

	_, err := f.uc.ApplyAuditAdjustment(context.Background(), lot.ID, qty(-1), "auditor")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyCountSheet_DevuelveAjustesEnOrden(t *testing.T) {
	f := newFixture(t)
	a := f.seedLot(t, "SKU-A", "L-1", entity.LocationChileLogistica, 10)
	b := f.seedLot(t, "SKU-B", "L-1", entity.LocationChileLogistica, 20)

	adjs, err := f.uc.ApplyCountSheet(context.Background(), []ledger.CountLine{
		{LotID: a.ID, CountedQty: qty(12)},
		{LotID: b.ID, CountedQty: qty(20)},
	}, "auditor")
	require.NoError(t, err)
	require.Len(t, adjs, 2)

	assert.Equal(t, "SKU-A", adjs[0].SKU)
	assert.True(t, adjs[0].Variance.Equal(qty(2)))
	assert.Equal(t, "SKU-B", adjs[1].SKU)
	assert.True(t, adjs[1].Variance.IsZero(), "las líneas sin varianza también aparecen en el reporte")
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas
// ──────────────────────────────────────────────────────────────────────────────

func TestViews_PreviewCountSheetNoAplicaNada(t *testing.T) {
	f := newFixture(t)
	a := f.seedLot(t, "SKU-A", "L-1", entity.LocationChileLogistica, 10)

	adjs, err := f.views.PreviewCountSheet(context.Background(), []ledger.CountLine{
		{LotID: a.ID, CountedQty: qty(7)},
	})
	require.NoError(t, err)
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Variance.Equal(qty(-3)))

	// El preview no toca el Lot ni emite asientos.
	got, err := f.lots.GetByID(a.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(qty(10)))
	assert.Nil(t, got.LastCountDate)
	movs, err := f.movs.ListByLot(a.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestViews_LowStockIncluyeElBorde(t *testing.T) {
	f := newFixture(t)
	f.seedLot(t, "SKU-OK", "L-1", entity.LocationChileLogistica, 50)
	low := f.seedLot(t, "SKU-LOW", "L-1", entity.LocationChileLogistica, 10) // MinStockLevel = 10

	lots, err := f.views.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, low.ID, lots[0].ID)
}

func TestViews_ExpiryRiskIncluyeVencidos(t *testing.T) {
	f := newFixture(t)
	fresh := f.seedLot(t, "SKU-FRESH", "L-1", entity.LocationChileLogistica, 10)
	fresh.ExpiryDate = time.Now().AddDate(2, 0, 0)
	require.NoError(t, f.lots.Update(fresh))

	soon := f.seedLot(t, "SKU-SOON", "L-1", entity.LocationChileLogistica, 10)
	soon.ExpiryDate = time.Now().AddDate(0, 1, 0)
	require.NoError(t, f.lots.Update(soon))

	expired := f.seedLot(t, "SKU-EXPIRED", "L-1", entity.LocationChileLogistica, 10)
	expired.ExpiryDate = time.Now().AddDate(0, -1, 0)
	require.NoError(t, f.lots.Update(expired))

	lots, err := f.views.ExpiryRisk(context.Background(), 0) // horizonte por defecto: 3 meses
	require.NoError(t, err)
	require.Len(t, lots, 2)

	skus := []string{lots[0].SKU, lots[1].SKU}
	assert.Contains(t, skus, "SKU-SOON")
	assert.Contains(t, skus, "SKU-EXPIRED")
}

func TestViews_GlobalStockForSKU(t *testing.T) {
	f := newFixture(t)
	f.seedLot(t, "FAGO-T4", "L-1", entity.LocationChileLogistica, 30)
	f.seedLot(t, "FAGO-T4", "L-2", entity.LocationBrasilLogvet, 20)
	f.seedLot(t, "OTRO", "L-1", entity.LocationChileLogistica, 99)

	total, lots, err := f.views.GlobalStockForSKU(context.Background(), "FAGO-T4")
	require.NoError(t, err)
	assert.True(t, total.Equal(qty(50)))
	assert.Len(t, lots, 2)
}

func TestViews_TotalUnits(t *testing.T) {
	f := newFixture(t)
	f.seedLot(t, "A", "L-1", entity.LocationChileLogistica, 30)
	f.seedLot(t, "B", "L-1", entity.LocationChileLabPiso5, 12)

	total, err := f.views.TotalUnits(context.Background())
	require.NoError(t, err)
	assert.True(t, total.Equal(qty(42)))
}
