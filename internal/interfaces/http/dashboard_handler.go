package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
)

// DashboardHandler maneja el resumen del tablero (protegido).
type DashboardHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.AnalyticsUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve el estado global del inventario en una pasada.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_units, low_stock_count,
// pending_requisitions, expiry_risk_count, stock_by_zone, low_stock_items).
// No requiere parámetros.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
