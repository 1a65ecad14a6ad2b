package entity

import "time"

// Ubicaciones sembradas por defecto (operación Chile + Brasil). El conjunto es
// abierto: se pueden agregar y quitar ubicaciones en runtime desde el panel
// de administración.
const (
	LocationChileLogistica = "Chile - Chile Logistica"
	LocationChileLabPiso5  = "Chile - Lab Piso 5"
	LocationChileLabMinus3 = "Chile - Lab -3"
	LocationBrasilLogvet   = "Brasil - Logvet"
	LocationBrasilPalotina = "Brasil - Bodega Palotina"
)

// Location es un sitio físico con stock (bodega, laboratorio, piso).
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// DefaultLocations devuelve el set inicial de ubicaciones de la operación.
func DefaultLocations() []string {
	return []string{
		LocationChileLogistica,
		LocationChileLabPiso5,
		LocationChileLabMinus3,
		LocationBrasilLogvet,
		LocationBrasilPalotina,
	}
}
