package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
)

// MovementHandler maneja el registro de movimientos y la consulta del kardex
// (protegido).
type MovementHandler struct {
	ledger *ledger.UseCase
	kardex *usecase.KardexUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledgerUC *ledger.UseCase, kardex *usecase.KardexUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledgerUC, kardex: kardex}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA suma al lote (batch_number distinto crea un lote
//               hermano), SALIDA descuenta y TRANSFERENCIA mueve stock a
//               target_location en un único asiento. Rechaza salidas y
//               transferencias sin stock suficiente.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "lot_id, type, quantity, reason; target_location para TRANSFERENCIA"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.RegisterMovement(c.Context(), ledger.MovementInput{
		LotID:          in.LotID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		BatchNumber:    in.BatchNumber,
		TargetLocation: in.TargetLocation,
		Reason:         in.Reason,
		User:           GetUserID(c),
		Date:           time.Now(),
	})
	if err != nil {
		var stockErr *ledger.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movimiento inválido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToMovementResponse(mov))
}

// ListKardex godoc
// @Summary      Kardex global
// @Description  Historial de movimientos, más recientes primero.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Máx. resultados (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Param        search  query  string  false  "Filtro por SKU, nombre, ubicación o motivo"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) ListKardex(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	out, err := h.kardex.List(limit, offset, c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByLot godoc
// @Summary      Kardex de un lote
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        lotId  path  string  true  "ID del lote"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/lot/{lotId} [get]
func (h *MovementHandler) ListByLot(c *fiber.Ctx) error {
	items, err := h.kardex.ListByLot(c.Params("lotId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}
