package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
)

// AuditHandler maneja la conciliación de inventario por conteo físico
// (protegido). Los ajustes resultantes quedan en el kardex como ENTRADA o
// SALIDA con motivo de conciliación.
type AuditHandler struct {
	uc    *ledger.UseCase
	views *ledger.Views
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *ledger.UseCase, views *ledger.Views) *AuditHandler {
	return &AuditHandler{uc: uc, views: views}
}

// Adjust godoc
// @Summary      Conciliar un lote puntual
// @Description  Fija la cantidad del lote al valor contado, registra el
//               asiento de ajuste y actualiza la fecha de último conteo.
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuditAdjustRequest  true  "lot_id y counted_quantity"
// @Success      200   {object}  dto.AdjustmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/audit/adjustments [post]
func (h *AuditHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AuditAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.ApplyAuditAdjustment(c.Context(), in.LotID, in.CountedQuantity, GetUserID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(toAdjustmentDTO(*adj))
}

// PreviewCountSheet godoc
// @Summary      Previsualizar varianzas de una planilla de conteo
// @Description  Calcula las varianzas sin aplicar nada; el auditor revisa y
//               después confirma con /api/audit/count-sheet.
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CountSheetRequest  true  "líneas de conteo"
// @Success      200   {array}  dto.AdjustmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/audit/count-sheet/preview [post]
func (h *AuditHandler) PreviewCountSheet(c *fiber.Ctx) error {
	var in dto.CountSheetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la planilla no tiene líneas"})
	}
	lines := make([]ledger.CountLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.CountLine{LotID: l.LotID, CountedQty: l.CountedQuantity})
	}
	adjustments, err := h.views.PreviewCountSheet(c.Context(), lines)
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.AdjustmentDTO, 0, len(adjustments))
	for _, adj := range adjustments {
		out = append(out, toAdjustmentDTO(adj))
	}
	return c.JSON(out)
}

// CountSheet godoc
// @Summary      Conciliar una planilla de conteo completa
// @Description  Aplica cada línea en orden y devuelve el detalle de los
//               ajustes, incluidas las líneas sin varianza. El resultado
//               sirve de entrada a los exports Pulsar y Omie.
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CountSheetRequest  true  "líneas de conteo"
// @Success      200   {array}  dto.AdjustmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/audit/count-sheet [post]
func (h *AuditHandler) CountSheet(c *fiber.Ctx) error {
	var in dto.CountSheetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la planilla no tiene líneas"})
	}
	lines := make([]ledger.CountLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.CountLine{LotID: l.LotID, CountedQty: l.CountedQuantity})
	}
	adjustments, err := h.uc.ApplyCountSheet(c.Context(), lines, GetUserID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.AdjustmentDTO, 0, len(adjustments))
	for _, adj := range adjustments {
		out = append(out, toAdjustmentDTO(adj))
	}
	return c.JSON(out)
}

func (h *AuditHandler) mapError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la cantidad contada no puede ser negativa"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toAdjustmentDTO(adj ledger.Adjustment) dto.AdjustmentDTO {
	return dto.AdjustmentDTO{
		LotID:       adj.LotID,
		SKU:         adj.SKU,
		Name:        adj.Name,
		Location:    adj.Location,
		BatchNumber: adj.BatchNumber,
		ExpiryDate:  adj.ExpiryDate.Format("2006-01-02"),
		OldQuantity: adj.OldQty,
		NewQuantity: adj.NewQty,
		Variance:    adj.Variance,
		Date:        adj.Date.Format(time.RFC3339),
	}
}

// fromAdjustmentDTO reconstruye el ajuste para los exports. Las fechas que no
// parsean quedan en cero; los formatos de salida las imprimen igual.
func fromAdjustmentDTO(in dto.AdjustmentDTO) ledger.Adjustment {
	expiry, _ := time.Parse("2006-01-02", in.ExpiryDate)
	date, _ := time.Parse(time.RFC3339, in.Date)
	return ledger.Adjustment{
		LotID:       in.LotID,
		SKU:         in.SKU,
		Name:        in.Name,
		Location:    in.Location,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  expiry,
		OldQty:      in.OldQuantity,
		NewQty:      in.NewQuantity,
		Variance:    in.Variance,
		Date:        date,
	}
}
