package dto

// LotSnapshotDTO resumen compacto de un Lot que se serializa dentro del prompt
// del asistente. Solo lectura: el asistente jamás muta el ledger.
type LotSnapshotDTO struct {
	Item     string `json:"item"`
	Location string `json:"loc"`
	Quantity string `json:"qty"`
	Unit     string `json:"unit"`
	Batch    string `json:"batch"`
	Expiry   string `json:"exp"`
}

// ChatRequest body para POST /api/assistant/chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse respuesta del asistente (texto libre).
type ChatResponse struct {
	Answer string `json:"answer"`
}

// AnalysisResponse informe de salud del inventario.
type AnalysisResponse struct {
	Report string `json:"report"`
}

// SuggestSKURequest body para POST /api/assistant/sku-suggestions.
type SuggestSKURequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SKUSuggestionDTO una opción de SKU propuesta por el modelo.
type SKUSuggestionDTO struct {
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// SKUSuggestionsResponse lista de opciones (vacía si el modelo no devolvió
// JSON parseable: fallo suave, nunca error duro).
type SKUSuggestionsResponse struct {
	Suggestions []SKUSuggestionDTO `json:"suggestions"`
}
