package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/export"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
)

func newFixture(t *testing.T) (*export.UseCase, *memory.LotRepository, *memory.MovementRepository) {
	t.Helper()
	store := memory.NewStore()
	lots := memory.NewLotRepository(store)
	movs := memory.NewMovementRepository(store)
	return export.NewUseCase(lots, movs), lots, movs
}

func seedLot(t *testing.T, lots *memory.LotRepository) *entity.Lot {
	t.Helper()
	lot := &entity.Lot{
		ID:          uuid.New().String(),
		SKU:         "MALTODEXTRINA",
		Name:        "Maltodextrina, grado técnico",
		Category:    entity.CategoryRawMaterial,
		Location:    entity.LocationChileLogistica,
		BatchNumber: "L-001",
		ExpiryDate:  time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		Quantity:    decimal.NewFromInt(100),
		Unit:        "kg",
	}
	require.NoError(t, lots.Create(lot))
	return lot
}

func TestInventorySnapshot(t *testing.T) {
	uc, lots, _ := newFixture(t)
	seedLot(t, lots)

	out, err := uc.InventorySnapshot()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "SKU,Nombre,Categoria,Ubicacion,Lote,Vencimiento,Cantidad,Unidad", lines[0])
	// El nombre lleva coma: debe salir entrecomillado.
	assert.Contains(t, lines[1], `"Maltodextrina, grado técnico"`)
	assert.Contains(t, lines[1], "2027-03-15")
	assert.Contains(t, lines[1], "100")
}

func TestKardex(t *testing.T) {
	uc, lots, movs := newFixture(t)
	lot := seedLot(t, lots)
	require.NoError(t, movs.Create(&entity.Movement{
		ID:             uuid.New().String(),
		LotID:          lot.ID,
		SKU:            lot.SKU,
		Name:           lot.Name,
		Type:           entity.MovementTransferencia,
		Quantity:       decimal.NewFromInt(40),
		Location:       entity.LocationChileLogistica,
		TargetLocation: entity.LocationBrasilLogvet,
		BatchNumber:    "L-001",
		Date:           time.Now(),
		User:           "sabrina",
	}))

	out, err := uc.Kardex()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Fecha,Tipo,SKU,Nombre,Cantidad,Ubicacion,Destino,Lote,Motivo,Usuario", lines[0])
	assert.Contains(t, lines[1], entity.MovementTransferencia)
	assert.Contains(t, lines[1], entity.LocationBrasilLogvet, "la transferencia exporta origen y destino en la misma fila")
}

func auditAdjustments() []ledger.Adjustment {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)
	return []ledger.Adjustment{
		{
			SKU: "MALTODEXTRINA", Name: "Maltodextrina", Location: entity.LocationChileLogistica,
			BatchNumber: "L-001", ExpiryDate: expiry,
			OldQty: decimal.NewFromInt(100), NewQty: decimal.NewFromInt(108),
			Variance: decimal.NewFromInt(8), Date: date,
		},
		{
			SKU: "PEPTONA", Name: "Peptona", Location: entity.LocationBrasilLogvet,
			BatchNumber: "L-002", ExpiryDate: expiry,
			OldQty: decimal.NewFromInt(50), NewQty: decimal.NewFromInt(45),
			Variance: decimal.NewFromInt(-5), Date: date,
		},
		{
			SKU: "AGAR-BASE", Name: "Agar base", Location: entity.LocationChileLabPiso5,
			BatchNumber: "L-003", ExpiryDate: expiry,
			OldQty: decimal.NewFromInt(20), NewQty: decimal.NewFromInt(20),
			Variance: decimal.Zero, Date: date,
		},
	}
}

func TestPulsarAudit(t *testing.T) {
	uc, _, _ := newFixture(t)

	out, err := uc.PulsarAudit(auditAdjustments())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4, "Pulsar lista todas las líneas contadas, incluso sin varianza")
	assert.Equal(t, "SKU;Description;Batch;ExpiryDate;Location;SystemQty;CountQty;Variance;AdjustmentType;Date", lines[0])
	assert.Contains(t, lines[1], "ENTRADA_AJUSTE")
	assert.Contains(t, lines[1], ";8;")
	assert.Contains(t, lines[2], "SALIDA_AJUSTE")
	assert.Contains(t, lines[2], ";-5;")
	assert.Contains(t, lines[3], "AGAR-BASE")
	assert.NotContains(t, lines[3], "AJUSTE", "la línea sin varianza no lleva tipo de ajuste")
}

func TestOmieAudit(t *testing.T) {
	uc, _, _ := newFixture(t)

	out, err := uc.OmieAudit(auditAdjustments())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3, "Omie omite las líneas sin varianza")
	assert.Equal(t, "Codigo_Produto,Descricao,Local_Estoque,Quantidade_Ajuste,Tipo_Movimento", lines[0])
	assert.Contains(t, lines[1], "ENTRADA")
	assert.Contains(t, lines[2], "SAIDA", "la varianza negativa sale en valor absoluto con tipo SAIDA")
	assert.Contains(t, lines[2], ",5,")
}
