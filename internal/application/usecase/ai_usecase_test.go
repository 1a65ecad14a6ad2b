package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/usecase"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// llmStub implementación controlable del puerto LLM. Cuando err != nil todas
// las operaciones fallan, simulando un servicio externo caído o un JSON
// imparseable.
type llmStub struct {
	err         error
	report      string
	answer      string
	suggestions []dto.SKUSuggestionDTO

	lastPending  int
	sawDeadline  bool
	lastQuestion string
}

func (s *llmStub) AnalyzeInventoryHealth(ctx context.Context, snapshot []dto.LotSnapshotDTO, pendingRequisitions int) (string, error) {
	s.lastPending = pendingRequisitions
	_, s.sawDeadline = ctx.Deadline()
	if s.err != nil {
		return "", s.err
	}
	return s.report, nil
}

func (s *llmStub) ChatWithInventory(ctx context.Context, question string, snapshot []dto.LotSnapshotDTO) (string, error) {
	s.lastQuestion = question
	_, s.sawDeadline = ctx.Deadline()
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *llmStub) SuggestSKUNames(ctx context.Context, description, category string) ([]dto.SKUSuggestionDTO, error) {
	_, s.sawDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

func newAIUseCase(t *testing.T, stub *llmStub) *usecase.AIUseCase {
	t.Helper()
	log := logger.New(logger.Config{Level: "error"})
	store := memory.NewStore()
	return usecase.NewAIUseCase(stub, memory.NewLotRepository(store), memory.NewRequisitionRepository(), log)
}

func TestAIUseCase_AnalysisDegradaConMensajeSuave(t *testing.T) {
	stub := &llmStub{err: errors.New("gemini: respuesta no parseable")}
	uc := newAIUseCase(t, stub)

	resp, err := uc.AnalyzeInventoryHealth(context.Background())

	require.NoError(t, err, "una falla del LLM nunca debe propagarse como error")
	require.NotNil(t, resp)
	assert.Equal(t, "Error al conectar con el asistente inteligente.", resp.Report)
	assert.True(t, stub.sawDeadline, "la llamada al LLM debe llevar timeout")
}

func TestAIUseCase_AnalysisPropagaPendientes(t *testing.T) {
	stub := &llmStub{report: "Inventario sin anomalías."}
	uc := newAIUseCase(t, stub)

	resp, err := uc.AnalyzeInventoryHealth(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Inventario sin anomalías.", resp.Report)
	assert.Equal(t, 0, stub.lastPending)
}

func TestAIUseCase_ChatDegradaConMensajeSuave(t *testing.T) {
	stub := &llmStub{err: errors.New("gemini: timeout")}
	uc := newAIUseCase(t, stub)

	resp, err := uc.Chat(context.Background(), dto.ChatRequest{Question: "¿Cuánta peptona queda?"})

	require.NoError(t, err, "una falla del LLM nunca debe propagarse como error")
	require.NotNil(t, resp)
	assert.Equal(t, "Lo siento, no pude procesar tu pregunta.", resp.Answer)
	assert.Equal(t, "¿Cuánta peptona queda?", stub.lastQuestion)
}

func TestAIUseCase_ChatPreguntaVaciaEsInvalida(t *testing.T) {
	uc := newAIUseCase(t, &llmStub{})

	_, err := uc.Chat(context.Background(), dto.ChatRequest{})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAIUseCase_SugerenciasDegradanAListaVacia(t *testing.T) {
	stub := &llmStub{err: errors.New("gemini: servicio no disponible")}
	uc := newAIUseCase(t, stub)

	resp, err := uc.SuggestSKUNames(context.Background(), dto.SuggestSKURequest{
		Description: "Medio de cultivo enriquecido",
		Category:    "Insumos",
	})

	require.NoError(t, err, "una falla del LLM nunca debe propagarse como error")
	require.NotNil(t, resp)
	require.NotNil(t, resp.Suggestions, "la lista degradada debe serializar como [] y no como null")
	assert.Empty(t, resp.Suggestions)
}

func TestAIUseCase_SugerenciasDescripcionVaciaEsInvalida(t *testing.T) {
	uc := newAIUseCase(t, &llmStub{})

	_, err := uc.SuggestSKUNames(context.Background(), dto.SuggestSKURequest{})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAIUseCase_SugerenciasExitosasSePropagan(t *testing.T) {
	stub := &llmStub{suggestions: []dto.SKUSuggestionDTO{
		{SKU: "MEDIO-CULT-01", Reason: "Abrevia medio de cultivo"},
	}}
	uc := newAIUseCase(t, stub)

	resp, err := uc.SuggestSKUNames(context.Background(), dto.SuggestSKURequest{
		Description: "Medio de cultivo enriquecido",
	})

	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "MEDIO-CULT-01", resp.Suggestions[0].SKU)
}
