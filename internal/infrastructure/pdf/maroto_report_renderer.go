// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4 (márgenes de 30pt):
//
//	┌───────────────────────────────────────────────┐
//	│                 TÍTULO (16pt)                 │
//	│                 FECHA (12pt)                  │
//	│  ┌────┬──────┬────────┬────────┬───────────┐  │
//	│  │Cant│Tamaño│ Riwaya │Categor.│  Título   │  │ cabecera gris
//	│  ├────┼──────┼────────┼────────┼───────────┤  │
//	│  │ .. │  ..  │   ..   │   ..   │    ..     │  │ filas beige
//	│  └────┴──────┴────────┴────────┴───────────┘  │
//	│          totales por categoría + total        │
//	└───────────────────────────────────────────────┘
//
// El texto llega ya procesado por textshape (orden visual): el renderer solo coloca glifos.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/inventario-libros/fonts"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/report"
	"github.com/jhoicas/inventario-libros/pkg/textshape"
)

// MarotoReportRenderer implementa el Renderer del caso de uso de reportes. La fuente se
// valida una sola vez al construirlo; cada Render crea su propio documento, por lo que
// es seguro para uso concurrente.
type MarotoReportRenderer struct {
	style Style
	font  []byte
	fonts []*marotoentity.CustomFont
}

// NewMarotoReportRenderer carga la fuente TTF (con glifos árabes) desde fontPath. Con
// fontPath vacío usa la fuente embebida en el binario.
// Devuelve domain.ErrFontUnavailable si el archivo no existe o no es TrueType.
func NewMarotoReportRenderer(fontPath string, style Style) (*MarotoReportRenderer, error) {
	if fontPath == "" {
		return NewMarotoReportRendererFromBytes(fonts.DejaVuSansCondensed, style)
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFontUnavailable, fontPath, err)
	}
	r, err := NewMarotoReportRendererFromBytes(data, style)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontPath, err)
	}
	return r, nil
}

// NewMarotoReportRendererFromBytes igual que NewMarotoReportRenderer con la fuente ya leída.
func NewMarotoReportRendererFromBytes(data []byte, style Style) (*MarotoReportRenderer, error) {
	if !isTrueType(data) {
		return nil, fmt.Errorf("%w: no es una fuente TrueType", domain.ErrFontUnavailable)
	}
	if style.FontFamily == "" {
		style.FontFamily = DefaultFontFamily
	}
	// gofpdf lee las métricas acá y no recién al primer Render.
	if _, err := newTextMeasurer(style.FontFamily, data); err != nil {
		return nil, err
	}
	custom, err := repository.New().
		AddUTF8FontFromBytes(style.FontFamily, fontstyle.Normal, data).
		Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFontUnavailable, err)
	}
	return &MarotoReportRenderer{style: style, font: data, fonts: custom}, nil
}

// isTrueType revisa la firma sfnt: 0x00010000 o "true". Las fuentes CFF ("OTTO") y las
// colecciones ("ttcf") no se pueden embeber como UTF-8.
func isTrueType(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	sig := data[:4]
	return bytes.Equal(sig, []byte{0x00, 0x01, 0x00, 0x00}) || bytes.Equal(sig, []byte("true"))
}

// Render produce los bytes del PDF para la secuencia de bloques.
func (r *MarotoReportRenderer) Render(ctx context.Context, blocks []report.Block) ([]byte, error) {
	if r == nil || len(r.fonts) == 0 {
		return nil, domain.ErrFontUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := r.config()
	l, err := r.newLayout(cfg)
	if err != nil {
		return nil, err
	}
	m := maroto.New(cfg)
	for _, b := range blocks {
		rows, err := l.rows(b)
		if err != nil {
			return nil, err
		}
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *MarotoReportRenderer) config() *marotoentity.Config {
	g := r.style.Geometry
	margin := ptToMM(g.Margin)
	return config.NewBuilder().
		WithPageSize(g.PageSize).
		WithLeftMargin(margin).WithRightMargin(margin).
		WithTopMargin(margin).WithBottomMargin(margin).
		WithMaxGridSize(g.gridSize()).
		WithCustomFonts(r.fonts).
		WithDefaultFont(&props.Font{
			Family: r.style.FontFamily,
			Style:  fontstyle.Normal,
			Size:   r.style.Normal.Size,
		}).
		WithTitle(r.style.DocumentTitle, true).
		Build()
}

// layout arma las filas de un documento. Todas las filas son de alto automático: maroto
// las mide con la fuente embebida. Las medidas propias solo sirven para centrar en
// vertical el texto de las celdas de tabla.
type layout struct {
	style Style
	ms    *textMeasurer
	width float64 // ancho útil de la página (mm)
}

func (r *MarotoReportRenderer) newLayout(cfg *marotoentity.Config) (*layout, error) {
	ms, err := newTextMeasurer(r.style.FontFamily, r.font)
	if err != nil {
		return nil, err
	}
	width := cfg.Dimensions.Width - cfg.Margins.Left - cfg.Margins.Right
	return &layout{style: r.style, ms: ms, width: width}, nil
}

func (l *layout) rows(b report.Block) ([]core.Row, error) {
	switch b := b.(type) {
	case report.TitleBlock:
		return l.paragraph(b.Text, l.style.Title, true), nil
	case report.MetaBlock:
		return l.paragraph(b.Text, l.style.Normal, true), nil
	case report.TableBlock:
		rows := l.table(b)
		if l.style.Normal.SpaceAfter > 0 {
			rows = append(rows, row.New(ptToMM(l.style.Normal.SpaceAfter)))
		}
		return rows, nil
	case report.SummaryBlock:
		var rows []core.Row
		for _, line := range b.Lines {
			rows = append(rows, l.paragraph(line, l.style.Normal, false)...)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("pdf: bloque no soportado %T", b)
	}
}

// paragraph una fila a todo el ancho útil, más el espacio posterior si corresponde.
func (l *layout) paragraph(s textshape.Shaped, st TextStyle, spaced bool) []core.Row {
	rows := []core.Row{
		row.New().Add(
			col.New(l.style.Geometry.gridSize()).Add(text.New(string(s), l.textProps(st, 0, 0, 0))),
		),
	}
	if spaced && st.SpaceAfter > 0 {
		rows = append(rows, row.New(ptToMM(st.SpaceAfter)))
	}
	return rows
}

func (l *layout) table(t report.TableBlock) []core.Row {
	rows := make([]core.Row, 0, len(t.Rows)+1)
	rows = append(rows, l.tableRow(t.Header, l.style.Header))
	for _, cells := range t.Rows {
		rows = append(rows, l.tableRow(cells, l.style.Body))
	}
	return rows
}

// tableRow arma una fila con bordes completos. La celda que más líneas ocupa define el
// alto y el resto se centra verticalmente con márgenes superior e inferior.
func (l *layout) tableRow(cells []textshape.Shaped, cs CellStyle) core.Row {
	spans, left, right := l.style.Geometry.columnSpans()
	rl := l.measureRow(cells, cs)

	cellStyle := &props.Cell{
		BackgroundColor: cs.Background,
		BorderColor:     l.style.GridColor,
		BorderType:      border.Full,
		BorderThickness: ptToMM(l.style.GridThickness),
	}

	cols := make([]core.Col, 0, len(spans)+2)
	if left > 0 {
		cols = append(cols, col.New(left))
	}
	for i, span := range spans {
		c := col.New(span).WithStyle(cellStyle)
		if i < len(cells) {
			c = c.Add(text.New(string(cells[i]), l.textProps(cs.Text, rl.tops[i], rl.bottoms[i], ptToMM(cs.Padding))))
		}
		cols = append(cols, c)
	}
	if right > 0 {
		cols = append(cols, col.New(right))
	}
	return row.New().Add(cols...)
}

// textProps márgenes en milímetros.
func (l *layout) textProps(st TextStyle, top, bottom, padding float64) props.Text {
	return props.Text{
		Family:          l.style.FontFamily,
		Style:           fontstyle.Normal,
		Size:            st.Size,
		Align:           st.Align,
		Color:           st.Color,
		Top:             top,
		Bottom:          bottom,
		Left:            padding,
		Right:           padding,
		VerticalPadding: leading(st),
	}
}

// rowLayout alto de una fila de tabla y márgenes verticales del texto de cada celda (mm).
type rowLayout struct {
	height  float64
	tops    []float64
	bottoms []float64
}

// measureRow mide cada celda en el ancho de su columna menos el padding. Si maroto
// midiera alguna celda más alta, la fila automática crece con ella.
func (l *layout) measureRow(cells []textshape.Shaped, cs CellStyle) rowLayout {
	g := l.style.Geometry
	spans, _, _ := g.columnSpans()
	pad := ptToMM(cs.Padding)

	content := make([]float64, len(spans))
	tallest := textHeight(1, cs.Text)
	for i, span := range spans {
		if i >= len(cells) {
			continue
		}
		width := l.width*float64(span)/float64(g.gridSize()) - 2*pad
		content[i] = textHeight(l.ms.lines(string(cells[i]), cs.Text.Size, width), cs.Text)
		tallest = max(tallest, content[i])
	}

	rl := rowLayout{
		height:  tallest + 2*pad,
		tops:    make([]float64, len(spans)),
		bottoms: make([]float64, len(spans)),
	}
	for i, h := range content {
		rl.tops[i] = (rl.height - h) / 2
		rl.bottoms[i] = rl.height - h - rl.tops[i]
	}
	return rl
}

// textHeight alto en mm de n líneas, con la misma fórmula que text.GetHeight de maroto.
func textHeight(n int, st TextStyle) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*ptToMM(st.Size) + float64(n-1)*leading(st)
}

// leading espacio extra entre líneas (mm).
func leading(st TextStyle) float64 {
	return ptToMM(max(st.LineHeight-st.Size, 0))
}
