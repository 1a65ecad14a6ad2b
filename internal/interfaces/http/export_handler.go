package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/export"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
)

// ExportHandler sirve los CSV de inventario, kardex y conciliación
// (protegido). Los exports de auditoría reciben los ajustes ya aplicados
// (salida de /api/audit/count-sheet): solo formatean, no tocan el stock.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Exportar snapshot de inventario (CSV)
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/exports/inventory [get]
func (h *ExportHandler) Inventory(c *fiber.Ctx) error {
	data, err := h.uc.InventorySnapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendCSV(c, "inventario", data)
}

// Kardex godoc
// @Summary      Exportar kardex completo (CSV)
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/exports/kardex [get]
func (h *ExportHandler) Kardex(c *fiber.Ctx) error {
	data, err := h.uc.Kardex()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendCSV(c, "kardex", data)
}

// PulsarAudit godoc
// @Summary      Exportar conciliación en formato Pulsar (CSV ';')
// @Description  Incluye todas las líneas contadas, también las sin varianza,
//               para dejar constancia del conteo completo.
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      text/csv
// @Param        body  body  []dto.AdjustmentDTO  true  "ajustes devueltos por /api/audit/count-sheet"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exports/audit/pulsar [post]
func (h *ExportHandler) PulsarAudit(c *fiber.Ctx) error {
	adjustments, err := parseAdjustments(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	data, err := h.uc.PulsarAudit(adjustments)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendCSV(c, "conciliacion_pulsar", data)
}

// OmieAudit godoc
// @Summary      Exportar conciliación en formato Omie (CSV)
// @Description  Solo exporta las líneas con varianza: Omie importa
//               movimientos, no conteos.
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      text/csv
// @Param        body  body  []dto.AdjustmentDTO  true  "ajustes devueltos por /api/audit/count-sheet"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exports/audit/omie [post]
func (h *ExportHandler) OmieAudit(c *fiber.Ctx) error {
	adjustments, err := parseAdjustments(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	data, err := h.uc.OmieAudit(adjustments)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendCSV(c, "conciliacion_omie", data)
}

func parseAdjustments(c *fiber.Ctx) ([]ledger.Adjustment, error) {
	var in []dto.AdjustmentDTO
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	out := make([]ledger.Adjustment, 0, len(in))
	for _, a := range in {
		out = append(out, fromAdjustmentDTO(a))
	}
	return out, nil
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
