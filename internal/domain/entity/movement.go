package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementEntrada       = "ENTRADA"       // recepción
	MovementSalida        = "SALIDA"        // consumo / despacho
	MovementTransferencia = "TRANSFERENCIA" // traslado entre ubicaciones
)

// Motivo fijo de los movimientos sintetizados por la conciliación física.
const ReasonAuditAdjustment = "Ajuste por conciliación de inventario"

// Movement es un asiento inmutable del kardex. Se crea únicamente a través del
// ledger y nunca se edita ni se borra. La cantidad es siempre positiva; el
// signo lo implica el tipo. Una TRANSFERENCIA se registra como UN solo asiento
// con TargetLocation (ambas piernas codificadas), que es la forma que asumen
// los exports CSV del kardex.
type Movement struct {
	ID             string
	LotID          string          // Lot origen contra el que se emitió
	SKU            string          // snapshot desnormalizado para el historial
	Name           string          // snapshot desnormalizado para el historial
	Type           string          // ENTRADA | SALIDA | TRANSFERENCIA
	Quantity       decimal.Decimal // magnitud, > 0
	Location       string          // ubicación origen
	TargetLocation string          // solo TRANSFERENCIA
	BatchNumber    string
	Date           time.Time
	Reason         string
	User           string
}

// IsTransfer indica si el asiento codifica un traslado entre ubicaciones.
func (m *Movement) IsTransfer() bool {
	return m.Type == MovementTransferencia
}

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementTransferencia:
		return true
	}
	return false
}
