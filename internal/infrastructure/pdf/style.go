package pdf

import (
	"math"

	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Todas las medidas de Style y Geometry están en puntos tipográficos (1/72 pulgada).
// maroto trabaja en milímetros: la conversión se hace en un solo lugar (ptToMM).

// DefaultFontFamily nombre con el que se registra la fuente TTF en el documento.
const DefaultFontFamily = "arabic"

// TextStyle estilo de un párrafo o celda.
type TextStyle struct {
	Size       float64 // tamaño de fuente
	LineHeight float64 // interlineado
	Align      align.Type
	SpaceAfter float64
	Color      *props.Color
}

// CellStyle estilo de una fila de la tabla.
type CellStyle struct {
	Text       TextStyle
	Background *props.Color
	Padding    float64 // vertical y horizontal dentro de la celda
}

// Geometry página y columnas de la tabla.
type Geometry struct {
	PageSize     pagesize.Type
	PageWidth    float64
	Margin       float64 // simétrico en los cuatro lados
	ColumnWidths []float64
}

// ContentWidth ancho útil entre márgenes.
func (g Geometry) ContentWidth() float64 { return g.PageWidth - 2*g.Margin }

// gridSize la grilla de maroto se define con una unidad por punto del ancho útil.
func (g Geometry) gridSize() int { return int(math.Round(g.ContentWidth())) }

// columnSpans devuelve el ancho en unidades de grilla de cada columna y los espaciadores
// izquierdo y derecho que centran la tabla en la página.
func (g Geometry) columnSpans() (spans []int, left, right int) {
	spans = make([]int, len(g.ColumnWidths))
	used := 0
	for i, w := range g.ColumnWidths {
		spans[i] = int(math.Round(w))
		used += spans[i]
	}
	free := g.gridSize() - used
	if free < 0 {
		free = 0
	}
	left = free / 2
	return spans, left, free - left
}

// Style configuración completa del documento. Se construye una vez y no se modifica.
type Style struct {
	FontFamily    string
	Title         TextStyle
	Normal        TextStyle
	Header        CellStyle
	Body          CellStyle
	GridColor     *props.Color
	GridThickness float64
	Geometry      Geometry
	DocumentTitle string
}

var (
	colorBlack      = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGrey       = &props.Color{Red: 128, Green: 128, Blue: 128}
	colorWhiteSmoke = &props.Color{Red: 245, Green: 245, Blue: 245}
	colorBeige      = &props.Color{Red: 245, Green: 245, Blue: 220}
)

// DefaultStyle A4 con márgenes de 30pt, título 16pt, cabecera gris y filas beige.
func DefaultStyle() Style {
	return Style{
		FontFamily: DefaultFontFamily,
		Title: TextStyle{
			Size: 16, LineHeight: 20, Align: align.Center, SpaceAfter: 20, Color: colorBlack,
		},
		Normal: TextStyle{
			Size: 12, LineHeight: 14, Align: align.Center, SpaceAfter: 14, Color: colorBlack,
		},
		Header: CellStyle{
			Text:       TextStyle{Size: 12, LineHeight: 14, Align: align.Center, Color: colorWhiteSmoke},
			Background: colorGrey,
			Padding:    6,
		},
		Body: CellStyle{
			Text:       TextStyle{Size: 10, LineHeight: 12, Align: align.Center, Color: colorBlack},
			Background: colorBeige,
			Padding:    3,
		},
		GridColor:     colorBlack,
		GridThickness: 1,
		Geometry: Geometry{
			PageSize:     pagesize.A4,
			PageWidth:    595.28,
			Margin:       30,
			ColumnWidths: []float64{40, 60, 100, 100, 200},
		},
		DocumentTitle: "تقرير المخزون",
	}
}

func ptToMM(pt float64) float64 { return pt * 25.4 / 72 }
