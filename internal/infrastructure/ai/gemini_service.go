// Package ai implementa el adaptador del asistente de inventario sobre la
// API REST de Google Gemini.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// analystPrompt define el rol del modelo para el informe de salud y el
	// chat: analista de inventario de un laboratorio farmacéutico, solo
	// lectura, respuestas en español.
	analystPrompt = `Eres el asistente de inventario de un laboratorio farmacéutico.
Recibes un snapshot JSON del inventario (item, loc, qty, unit, batch, exp) y respondes en español,
de forma breve y accionable. Solo analizas: nunca propones modificar datos directamente.
Presta especial atención a stock bajo, lotes próximos a vencer y cantidades anómalas.`

	// skuPrompt obliga salida JSON pura para las sugerencias de SKU.
	// Con responseMimeType=application/json no hace falta limpiar markdown.
	skuPrompt = `Eres un experto en catalogación de insumos de laboratorio farmacéutico.
Dada la descripción y categoría de un producto nuevo, devuelve ÚNICAMENTE un arreglo JSON
(sin texto adicional) con 3 opciones de código SKU, con esta estructura exacta:
[
  {"sku": "<código corto en mayúsculas, sin espacios, guiones permitidos>", "reason": "<por qué, máximo 120 caracteres, en español>"}
]

Reglas:
- SKUs memorables y consistentes con nomenclatura de laboratorio (ej: MALTODEXTRINA, AGAR-BASE, FAGO-T4).
- Sin caracteres especiales fuera de A-Z, 0-9 y guion.`
)

// GeminiService adaptador que implementa LLMService llamando a la API REST de
// Google Gemini. Usa únicamente net/http: el protocolo es un POST JSON plano
// y no amerita un SDK.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnalyzeInventoryHealth pide un informe breve de salud del inventario.
func (s *GeminiService) AnalyzeInventoryHealth(ctx context.Context, snapshot []dto.LotSnapshotDTO, pendingRequisitions int) (string, error) {
	inventory, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("AI: serializar snapshot: %w", err)
	}
	userText := fmt.Sprintf(
		"Inventario actual:\n%s\n\nRequisiciones pendientes de resolver: %d\n\nGenera un informe de salud del inventario: stock bajo, vencimientos próximos, carga pendiente y cualquier anomalía.",
		inventory, pendingRequisitions,
	)
	return s.generate(ctx, analystPrompt, userText, "", 1024)
}

// ChatWithInventory responde una pregunta libre usando el snapshot como contexto.
func (s *GeminiService) ChatWithInventory(ctx context.Context, question string, snapshot []dto.LotSnapshotDTO) (string, error) {
	inventory, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("AI: serializar snapshot: %w", err)
	}
	userText := fmt.Sprintf("Inventario actual:\n%s\n\nPregunta del usuario: %s", inventory, question)
	return s.generate(ctx, analystPrompt, userText, "", 1024)
}

// SuggestSKUNames pide opciones de SKU en JSON puro y las deserializa.
func (s *GeminiService) SuggestSKUNames(ctx context.Context, description, category string) ([]dto.SKUSuggestionDTO, error) {
	userText := fmt.Sprintf("Descripción del producto: %s\nCategoría: %s", description, category)
	raw, err := s.generate(ctx, skuPrompt, userText, "application/json", 512)
	if err != nil {
		return nil, err
	}
	var suggestions []dto.SKUSuggestionDTO
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, raw)
	}
	return suggestions, nil
}

// generate hace la llamada a Gemini y devuelve el texto del primer candidato.
func (s *GeminiService) generate(ctx context.Context, system, user, mimeType string, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: system}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: user}},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: mimeType,
			Temperature:      0.2, // baja temperatura para respuestas más deterministas
			MaxOutputTokens:  maxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text), nil
}
