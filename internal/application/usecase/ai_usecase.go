package usecase

import (
	"context"
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ports"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// Mensajes de fallo suave del asistente: ante un error del LLM la UI muestra
// un mensaje amable en vez de romper el flujo.
const (
	analysisFallback = "Error al conectar con el asistente inteligente."
	chatFallback     = "Lo siento, no pude procesar tu pregunta."
)

// llmTimeout tope por llamada al LLM para no bloquear goroutines del servidor.
const llmTimeout = 10 * time.Second

// AIUseCase orquesta el asistente de inventario. Arma el snapshot de solo
// lectura del inventario, delega al puerto LLM y degrada con mensajes de
// fallo suave cuando el servicio externo no responde.
type AIUseCase struct {
	llm          ports.LLMService
	lots         repository.LotRepository
	requisitions repository.RequisitionRepository
	log          *logger.Logger
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, lots repository.LotRepository, requisitions repository.RequisitionRepository, log *logger.Logger) *AIUseCase {
	return &AIUseCase{llm: llm, lots: lots, requisitions: requisitions, log: log}
}

// AnalyzeInventoryHealth genera el informe de salud del inventario. Nunca
// devuelve error por fallas del LLM: degrada al mensaje de fallo suave.
func (uc *AIUseCase) AnalyzeInventoryHealth(ctx context.Context) (*dto.AnalysisResponse, error) {
	snapshot, err := uc.buildSnapshot()
	if err != nil {
		return nil, err
	}
	pending, err := uc.requisitions.CountByStatus(entity.RequisitionPending)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	report, err := uc.llm.AnalyzeInventoryHealth(ctx, snapshot, pending)
	if err != nil {
		uc.log.Warn().Err(err).Msg("análisis de inventario degradado a fallback")
		return &dto.AnalysisResponse{Report: analysisFallback}, nil
	}
	return &dto.AnalysisResponse{Report: report}, nil
}

// Chat responde una pregunta libre sobre el inventario.
func (uc *AIUseCase) Chat(ctx context.Context, in dto.ChatRequest) (*dto.ChatResponse, error) {
	if in.Question == "" {
		return nil, domain.ErrInvalidInput
	}
	snapshot, err := uc.buildSnapshot()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	answer, err := uc.llm.ChatWithInventory(ctx, in.Question, snapshot)
	if err != nil {
		uc.log.Warn().Err(err).Msg("chat de inventario degradado a fallback")
		return &dto.ChatResponse{Answer: chatFallback}, nil
	}
	return &dto.ChatResponse{Answer: answer}, nil
}

// SuggestSKUNames propone códigos SKU para un producto nuevo. Ante un fallo
// del LLM devuelve la lista vacía.
func (uc *AIUseCase) SuggestSKUNames(ctx context.Context, in dto.SuggestSKURequest) (*dto.SKUSuggestionsResponse, error) {
	if in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	suggestions, err := uc.llm.SuggestSKUNames(ctx, in.Description, in.Category)
	if err != nil {
		uc.log.Warn().Err(err).Msg("sugerencia de SKU degradada a lista vacía")
		return &dto.SKUSuggestionsResponse{Suggestions: []dto.SKUSuggestionDTO{}}, nil
	}
	return &dto.SKUSuggestionsResponse{Suggestions: suggestions}, nil
}

// buildSnapshot serializa el inventario completo en la forma compacta que se
// inyecta en el prompt.
func (uc *AIUseCase) buildSnapshot() ([]dto.LotSnapshotDTO, error) {
	lots, err := uc.lots.ListAll()
	if err != nil {
		return nil, err
	}
	snapshot := make([]dto.LotSnapshotDTO, 0, len(lots))
	for _, lot := range lots {
		snapshot = append(snapshot, dto.LotSnapshotDTO{
			Item:     lot.Name,
			Location: lot.Location,
			Quantity: lot.Quantity.String(),
			Unit:     lot.Unit,
			Batch:    lot.BatchNumber,
			Expiry:   lot.ExpiryDate.Format(dateLayout),
		})
	}
	return snapshot, nil
}
