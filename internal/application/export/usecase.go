// Package export genera los archivos CSV que se descargan desde la UI y los
// que se importan en los sistemas externos de conciliación (Pulsar y Omie),
// cada uno con su dialecto propio.
package export

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Tipos de ajuste del formato Pulsar.
const (
	pulsarEntrada = "ENTRADA_AJUSTE"
	pulsarSalida  = "SALIDA_AJUSTE"
)

// Tipos de movimiento del formato Omie (portugués: salida es SAIDA).
const (
	omieEntrada = "ENTRADA"
	omieSaida   = "SAIDA"
)

// UseCase genera los exports CSV.
type UseCase struct {
	lots      repository.LotRepository
	movements repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(lots repository.LotRepository, movements repository.MovementRepository) *UseCase {
	return &UseCase{lots: lots, movements: movements}
}

// InventorySnapshot exporta el inventario completo, una fila por Lot.
func (uc *UseCase) InventorySnapshot() ([]byte, error) {
	lots, err := uc.lots.ListAll()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"SKU", "Nombre", "Categoria", "Ubicacion", "Lote", "Vencimiento", "Cantidad", "Unidad"}); err != nil {
		return nil, err
	}
	for _, lot := range lots {
		record := []string{
			lot.SKU,
			lot.Name,
			lot.Category,
			lot.Location,
			lot.BatchNumber,
			lot.ExpiryDate.Format(dateLayout),
			lot.Quantity.String(),
			lot.Unit,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Kardex exporta el historial completo de movimientos, más recientes primero.
func (uc *UseCase) Kardex() ([]byte, error) {
	movements, err := uc.movements.ListAll()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Fecha", "Tipo", "SKU", "Nombre", "Cantidad", "Ubicacion", "Destino", "Lote", "Motivo", "Usuario"}); err != nil {
		return nil, err
	}
	for _, m := range movements {
		record := []string{
			m.Date.Format(time.RFC3339),
			m.Type,
			m.SKU,
			m.Name,
			m.Quantity.String(),
			m.Location,
			m.TargetLocation,
			m.BatchNumber,
			m.Reason,
			m.User,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// PulsarAudit exporta una conciliación en el formato de importación de
// Pulsar: separador punto y coma y una fila por línea contada, incluidas las
// de varianza cero (documentan el conteo completo).
func (uc *UseCase) PulsarAudit(adjustments []ledger.Adjustment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write([]string{"SKU", "Description", "Batch", "ExpiryDate", "Location", "SystemQty", "CountQty", "Variance", "AdjustmentType", "Date"}); err != nil {
		return nil, err
	}
	for _, adj := range adjustments {
		adjType := ""
		switch {
		case adj.Variance.IsPositive():
			adjType = pulsarEntrada
		case adj.Variance.IsNegative():
			adjType = pulsarSalida
		}
		record := []string{
			adj.SKU,
			adj.Name,
			adj.BatchNumber,
			adj.ExpiryDate.Format(dateLayout),
			adj.Location,
			adj.OldQty.String(),
			adj.NewQty.String(),
			adj.Variance.String(),
			adjType,
			adj.Date.Format(dateLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// OmieAudit exporta una conciliación en el formato de importación de Omie
// (operación Brasil): solo las líneas con varianza, cantidad en valor
// absoluto y tipo ENTRADA/SAIDA.
func (uc *UseCase) OmieAudit(adjustments []ledger.Adjustment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Codigo_Produto", "Descricao", "Local_Estoque", "Quantidade_Ajuste", "Tipo_Movimento"}); err != nil {
		return nil, err
	}
	for _, adj := range adjustments {
		if adj.Variance.IsZero() {
			continue
		}
		movType := omieEntrada
		if adj.Variance.IsNegative() {
			movType = omieSaida
		}
		record := []string{
			adj.SKU,
			adj.Name,
			adj.Location,
			adj.Variance.Abs().String(),
			movType,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
