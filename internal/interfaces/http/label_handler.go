package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/pdf"
)

// LabelHandler genera las etiquetas QR en PDF para impresión (protegido).
// Lee lotes directo del repositorio: no hay reglas de negocio de por medio,
// solo formateo.
type LabelHandler struct {
	lots repository.LotRepository
	gen  *pdf.LabelGenerator
}

// NewLabelHandler construye el handler.
func NewLabelHandler(lots repository.LotRepository, gen *pdf.LabelGenerator) *LabelHandler {
	return &LabelHandler{lots: lots, gen: gen}
}

// Generate godoc
// @Summary      Generar etiquetas QR de lotes (PDF)
// @Description  Cada etiqueta lleva el QR con el ID del lote, el SKU, el
//               número de lote con vencimiento y la ubicación. Tres por fila
//               en A4.
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  object  true  "{\"lot_ids\": [\"...\"]}"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels/lots [post]
func (h *LabelHandler) Generate(c *fiber.Ctx) error {
	var in struct {
		LotIDs []string `json:"lot_ids"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.LotIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lot_ids no puede estar vacío"})
	}

	lots := make([]*entity.Lot, 0, len(in.LotIDs))
	for _, id := range in.LotIDs {
		lot, err := h.lots.GetByID(id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if lot == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado: " + id})
		}
		lots = append(lots, lot)
	}

	data, err := h.gen.GenerateLotLabels(lots)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	filename := fmt.Sprintf("etiquetas_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
