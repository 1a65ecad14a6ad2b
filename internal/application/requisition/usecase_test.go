package requisition_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/requisition"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

type fixture struct {
	uc   *requisition.UseCase
	lots *memory.LotRepository
	movs *memory.MovementRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Level: "error"})
	lots := memory.NewLotRepository(store)
	ledgerUC := ledger.NewUseCase(memory.NewTxRunner(store), log)
	return &fixture{
		uc:   requisition.NewUseCase(memory.NewRequisitionRepository(), lots, ledgerUC, log),
		lots: lots,
		movs: memory.NewMovementRepository(store),
	}
}

func (f *fixture) seedLot(t *testing.T, qty int64) *entity.Lot {
	t.Helper()
	now := time.Now()
	lot := &entity.Lot{
		ID:          uuid.New().String(),
		SKU:         "AGAR-BASE",
		Name:        "Agar base",
		Category:    entity.CategoryLabSupply,
		Location:    entity.LocationChileLabPiso5,
		BatchNumber: "L-300",
		ExpiryDate:  now.AddDate(1, 0, 0),
		Quantity:    decimal.NewFromInt(qty),
		Unit:        "kg",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.lots.Create(lot))
	return lot
}

func (f *fixture) create(t *testing.T, lotID string, qty int64) *dto.RequisitionResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), dto.CreateRequisitionRequest{
		RequesterName:     "Marco",
		Department:        "Microbiología",
		LotID:             lotID,
		QuantityRequested: decimal.NewFromInt(qty),
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_QuedaPendingConSnapshot(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 100)

	resp := f.create(t, lot.ID, 20)
	assert.Equal(t, entity.RequisitionPending, resp.Status)
	assert.Equal(t, "Agar base", resp.ItemName)
	assert.Nil(t, resp.Approval)
	assert.Nil(t, resp.Fulfillment)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 100)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateRequisitionRequest{
		RequesterName: "Marco", Department: "Micro", LotID: lot.ID,
		QuantityRequested: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateRequisitionRequest{
		RequesterName: "Marco", Department: "Micro", LotID: uuid.New().String(),
		QuantityRequested: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_DescuentaStockYRegistraSalida(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 100)
	req := f.create(t, lot.ID, 30)

	resp, err := f.uc.Approve(context.Background(), req.ID, "sabrina")
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionApproved, resp.Status)
	require.NotNil(t, resp.Approval)
	assert.Equal(t, "sabrina", resp.Approval.ApprovedBy)

	updated, err := f.lots.GetByID(lot.ID)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(70)))

	movs, err := f.movs.ListByLot(lot.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementSalida, movs[0].Type)
	assert.Contains(t, movs[0].Reason, req.ID, "el asiento referencia la requisición")
}

func TestApprove_SinStockDejaPending(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 10)
	req := f.create(t, lot.ID, 30)

	_, err := f.uc.Approve(context.Background(), req.ID, "sabrina")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	resp, err := f.uc.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionPending, resp.Status, "la aprobación fallida no cambia el estado")

	updated, err := f.lots.GetByID(lot.ID)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestReject_NoTocaInventario(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 100)
	req := f.create(t, lot.ID, 30)

	resp, err := f.uc.Reject(context.Background(), req.ID, "sabrina")
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionRejected, resp.Status)

	updated, err := f.lots.GetByID(lot.ID)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(100)))

	movs, err := f.movs.ListAll()
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestFulfill_ExigeReceptorFirmaYLote(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 100)
	req := f.create(t, lot.ID, 30)
	ctx := context.Background()

	_, err := f.uc.Approve(ctx, req.ID, "sabrina")
	require.NoError(t, err)

	cases := []dto.FulfillRequisitionRequest{
		{ReceivedBy: "", DigitalSignature: true, BatchNumber: "L-300"},
		{ReceivedBy: "Marco", DigitalSignature: false, BatchNumber: "L-300"},
		{ReceivedBy: "Marco", DigitalSignature: true, BatchNumber: ""},
	}
	for _, in := range cases {
		_, err := f.uc.Fulfill(ctx, req.ID, "bodeguero", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	resp, err := f.uc.Fulfill(ctx, req.ID, "bodeguero", dto.FulfillRequisitionRequest{
		ReceivedBy: "Marco", DigitalSignature: true, BatchNumber: "L-300",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionFulfilled, resp.Status)
	require.NotNil(t, resp.Fulfillment)
	assert.Equal(t, "bodeguero", resp.Fulfillment.DeliveredBy)
	assert.Equal(t, "Marco", resp.Fulfillment.ReceivedBy)
}

func TestTransicionesInvalidas(t *testing.T) {
	f := newFixture(t)
	lot := f.seedLot(t, 100)
	ctx := context.Background()

	// Fulfill directo desde PENDING.
	pending := f.create(t, lot.ID, 10)
	_, err := f.uc.Fulfill(ctx, pending.ID, "bodeguero", dto.FulfillRequisitionRequest{
		ReceivedBy: "Marco", DigitalSignature: true, BatchNumber: "L-300",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Aprobar dos veces.
	req := f.create(t, lot.ID, 10)
	_, err = f.uc.Approve(ctx, req.ID, "sabrina")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, req.ID, "sabrina")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Rechazar una rechazada.
	other := f.create(t, lot.ID, 10)
	_, err = f.uc.Reject(ctx, other.ID, "sabrina")
	require.NoError(t, err)
	_, err = f.uc.Reject(ctx, other.ID, "sabrina")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
