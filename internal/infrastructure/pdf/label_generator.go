// Package pdf genera las etiquetas imprimibles de lote con código QR.
//
// Layout de la página A4 (tres etiquetas por fila):
//
//	┌──────────────┬──────────────┬──────────────┐
//	│  QR          │  QR          │  QR          │
//	│  SKU         │  SKU         │  SKU         │
//	│  Lote / Venc │  Lote / Venc │  Lote / Venc │
//	│  Ubicación   │  Ubicación   │  Ubicación   │
//	└──────────────┴──────────────┴──────────────┘
//
// El QR codifica el ID del Lot: al escanearlo, la UI abre la ficha del lote
// para registrar movimientos o conteos sin tipear.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
)

var labelGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// labelsPerRow etiquetas por fila en la hoja A4.
const labelsPerRow = 3

// LabelGenerator genera hojas de etiquetas de lote usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// GenerateLotLabels genera una hoja A4 con una etiqueta QR por Lot y devuelve
// sus bytes.
func (g *LabelGenerator) GenerateLotLabels(lots []*entity.Lot) ([]byte, error) {
	if len(lots) == 0 {
		return nil, fmt.Errorf("pdf: sin lotes para etiquetar")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiquetas de lote", true).
		Build()

	m := maroto.New(cfg)

	for start := 0; start < len(lots); start += labelsPerRow {
		end := start + labelsPerRow
		if end > len(lots) {
			end = len(lots)
		}
		m.AddRows(labelRow(lots[start:end]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow arma una fila con hasta tres etiquetas.
func labelRow(lots []*entity.Lot) core.Row {
	r := row.New(55)
	for _, lot := range lots {
		r.Add(labelCol(lot))
	}
	// Relleno para que las filas incompletas mantengan el ancho de columna.
	for i := len(lots); i < labelsPerRow; i++ {
		r.Add(col.New(4))
	}
	return r
}

func labelCol(lot *entity.Lot) core.Col {
	return col.New(4).Add(
		code.NewQr(lot.ID, props.Rect{
			Percent: 60,
			Center:  true,
		}),
		text.New(lot.SKU, props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 36, Align: align.Center,
		}),
		text.New(fmt.Sprintf("Lote %s · Vence %s", lot.BatchNumber, lot.ExpiryDate.Format("02/01/2006")), props.Text{
			Size: 8, Top: 42, Align: align.Center, Color: labelGray,
		}),
		text.New(lot.Location, props.Text{
			Size: 8, Top: 47, Align: align.Center, Color: labelGray,
		}),
	)
}
