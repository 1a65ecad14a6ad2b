package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
)

// AIHandler maneja los endpoints del asistente de inventario (protegido).
// Las fallas del LLM no llegan aquí como error: el usecase degrada a una
// respuesta de cortesía, así el tablero nunca se rompe por la IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Analyze godoc
// @Summary      Diagnóstico de salud del inventario con IA
// @Description  Envía el snapshot completo al modelo y devuelve un informe
//               en lenguaje natural (quiebres, vencimientos, sugerencias).
//               Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ai/analysis [get]
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	out, err := h.uc.AnalyzeInventoryHealth(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(out)
}

// Chat godoc
// @Summary      Preguntar al asistente sobre el inventario
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "question"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	if strings.TrimSpace(in.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "question es requerido",
		})
	}
	out, err := h.uc.Chat(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(out)
}

// SuggestSKUs godoc
// @Summary      Sugerir nombres de SKU con IA
// @Description  Devuelve hasta 3 opciones de SKU normalizado con su
//               justificación, a partir de la descripción del insumo.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestSKURequest  true  "description y opcionalmente category"
// @Success      200   {object}  dto.SKUSuggestionsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/sku-suggestions [post]
func (h *AIHandler) SuggestSKUs(c *fiber.Ctx) error {
	var in dto.SuggestSKURequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	if strings.TrimSpace(in.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "description es requerido",
		})
	}
	out, err := h.uc.SuggestSKUNames(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(out)
}
