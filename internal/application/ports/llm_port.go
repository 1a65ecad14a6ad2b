// Package ports define los puertos de salida de la capa de aplicación hacia
// servicios externos.
package ports

import (
	"context"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
)

// LLMService puerto hacia el modelo de lenguaje del asistente de inventario.
// Las implementaciones reciben un snapshot de solo lectura del inventario:
// el asistente analiza y responde, jamás muta el ledger.
type LLMService interface {
	// AnalyzeInventoryHealth genera un informe breve de salud del inventario
	// (stock bajo, vencimientos próximos, anomalías). pendingRequisitions es
	// la cantidad de requisiciones sin resolver, para que el informe pueda
	// mencionar la carga de trabajo pendiente.
	AnalyzeInventoryHealth(ctx context.Context, snapshot []dto.LotSnapshotDTO, pendingRequisitions int) (string, error)

	// ChatWithInventory responde una pregunta libre del usuario usando el
	// snapshot como contexto.
	ChatWithInventory(ctx context.Context, question string, snapshot []dto.LotSnapshotDTO) (string, error)

	// SuggestSKUNames propone códigos SKU para un producto nuevo a partir de
	// su descripción y categoría.
	SuggestSKUNames(ctx context.Context, description, category string) ([]dto.SKUSuggestionDTO, error)
}
