package pdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-libros/fonts"
	"github.com/jhoicas/inventario-libros/internal/domain"
	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	"github.com/jhoicas/inventario-libros/internal/domain/report"
	"github.com/jhoicas/inventario-libros/pkg/textshape"
)

// newTestRenderer usa la fuente embebida; REPORT_FONT_PATH permite probar otra TTF.
func newTestRenderer(t *testing.T) *MarotoReportRenderer {
	t.Helper()
	r, err := NewMarotoReportRenderer(os.Getenv("REPORT_FONT_PATH"), DefaultStyle())
	require.NoError(t, err)
	return r
}

// rowHeights agrega las filas a un documento y devuelve el alto que maroto midió para cada una.
func rowHeights(t *testing.T, r *MarotoReportRenderer, rows ...core.Row) []float64 {
	t.Helper()
	m := maroto.New(r.config())
	m.AddRows(rows...)
	heights := make([]float64, len(rows))
	for i, row := range rows {
		// AddRows ya midió la fila y guardó el alto.
		heights[i] = row.GetHeight(nil, nil)
	}
	return heights
}

func TestNewMarotoReportRenderer_FuenteInexistente(t *testing.T) {
	_, err := NewMarotoReportRenderer(filepath.Join(t.TempDir(), "no-existe.ttf"), DefaultStyle())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFontUnavailable))
}

func TestNewMarotoReportRenderer_ArchivoNoTrueType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "falsa.ttf")
	require.NoError(t, os.WriteFile(path, []byte("esto no es una fuente, solo texto plano"), 0o600))

	_, err := NewMarotoReportRenderer(path, DefaultStyle())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFontUnavailable))
}

func TestRender_SinFuenteDevuelveErrFontUnavailable(t *testing.T) {
	var r MarotoReportRenderer

	_, err := r.Render(context.Background(), nil)

	assert.True(t, errors.Is(err, domain.ErrFontUnavailable))
}

func TestIsTrueType(t *testing.T) {
	pad := make([]byte, 8)
	assert.True(t, isTrueType(append([]byte{0, 1, 0, 0}, pad...)))
	assert.True(t, isTrueType(append([]byte("true"), pad...)))
	assert.False(t, isTrueType(append([]byte("OTTO"), pad...)))
	assert.False(t, isTrueType(append([]byte("ttcf"), pad...)))
	assert.False(t, isTrueType([]byte{0, 1, 0, 0}))
}

func TestGeometry_TablaCentradaEnLaGrilla(t *testing.T) {
	g := DefaultStyle().Geometry

	spans, left, right := g.columnSpans()

	assert.Equal(t, []int{40, 60, 100, 100, 200}, spans)
	assert.Equal(t, 535, g.gridSize())
	assert.Equal(t, 17, left)
	assert.Equal(t, 18, right)
}

func TestNewMarotoReportRenderer_SinRutaUsaFuenteEmbebida(t *testing.T) {
	r, err := NewMarotoReportRenderer("", DefaultStyle())

	require.NoError(t, err)
	assert.Equal(t, fonts.DejaVuSansCondensed, r.font)
	assert.Len(t, r.fonts, 1)
}

func TestNewMarotoReportRendererFromBytes_AsignaFamiliaPorDefecto(t *testing.T) {
	st := DefaultStyle()
	st.FontFamily = ""

	r, err := NewMarotoReportRendererFromBytes(fonts.DejaVuSansCondensed, st)

	require.NoError(t, err)
	assert.Equal(t, DefaultFontFamily, r.style.FontFamily)
}

func TestTextMeasurer_MideConAnchoRealDeGlifos(t *testing.T) {
	ms, err := newTextMeasurer(DefaultFontFamily, fonts.DejaVuSansCondensed)
	require.NoError(t, err)

	assert.Equal(t, 0, ms.lines("", 10, 100))
	assert.Equal(t, 1, ms.lines("MWMW", 10, 100))

	wide := ms.lines(strings.Repeat("MWMW ", 40), 10, 60)
	narrow := ms.lines(strings.Repeat("iiii ", 40), 10, 60)
	assert.Greater(t, wide, 1)
	assert.Greater(t, wide, narrow, "misma cantidad de runas, glifos más anchos")
	assert.Greater(t, ms.lines(strings.Repeat("MWMW ", 40), 10, 30), wide)
}

func TestMeasureRow_CentraCeldasCortas(t *testing.T) {
	r := newTestRenderer(t)
	l, err := r.newLayout(r.config())
	require.NoError(t, err)
	body := r.style.Body
	cells := []textshape.Shaped{"1", "S", "-", "x", textshape.Shaped(strings.Repeat("MWMW ", 40))}

	rl := l.measureRow(cells, body)

	pad := ptToMM(body.Padding)
	assert.InDelta(t, pad, rl.tops[4], 1e-9, "la celda más alta empieza en el padding")
	assert.Greater(t, rl.tops[0], rl.tops[4])
	for i := range cells {
		assert.InDelta(t, rl.tops[i], rl.bottoms[i], 1e-9, "columna %d centrada", i)
	}
}

func TestTableRow_AltoMedidoConTextoLatinoAncho(t *testing.T) {
	r := newTestRenderer(t)
	l, err := r.newLayout(r.config())
	require.NoError(t, err)
	body := r.style.Body
	short := []textshape.Shaped{"1", "S", "-", "x", "y"}
	wide := []textshape.Shaped{"1", "S", "-", "x", textshape.Shaped(strings.Repeat("MWMW ", 40))}

	heights := rowHeights(t, r, l.tableRow(short, body), l.tableRow(wide, body))

	oneLine := textHeight(1, body.Text) + 2*ptToMM(body.Padding)
	assert.InDelta(t, oneLine, heights[0], 1e-6)
	assert.Greater(t, heights[1], 2*oneLine, "el texto ancho no entra en una ni dos líneas")
	assert.InDelta(t, l.measureRow(wide, body).height, heights[1], 1e-6,
		"la medida propia coincide con la de maroto")
}

func TestParagraph_AltoMedidoConTextoLatinoAncho(t *testing.T) {
	r := newTestRenderer(t)
	l, err := r.newLayout(r.config())
	require.NoError(t, err)
	title := r.style.Title

	heights := rowHeights(t, r,
		l.paragraph("MWMW", title, false)[0],
		l.paragraph(textshape.Shaped(strings.Repeat("MWMW ", 40)), title, false)[0],
	)

	assert.InDelta(t, textHeight(1, title), heights[0], 1e-6)
	assert.Greater(t, heights[1], textHeight(2, title))
}

func TestRender_ConTituloLatinoAncho(t *testing.T) {
	r := newTestRenderer(t)
	items := []*entity.Item{
		{ID: "1", Title: strings.Repeat("MWMW ", 40), Category: "Fiction", Quantity: 1, Size: "Medium"},
	}
	rep := report.NewComposer(report.DefaultLabels(), textshape.Shape).
		Compose(items, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))

	out, err := r.Render(context.Background(), rep.Blocks)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_GeneraPDF(t *testing.T) {
	r := newTestRenderer(t)

	riwaya := "حفص"
	items := []*entity.Item{
		{ID: "1", Title: "صحيح البخاري", Category: "حديث", Quantity: 5, Size: "كبير"},
		{ID: "2", Title: "Title2", Category: "Fiction", Quantity: 3, Size: "Medium", Riwaya: &riwaya},
	}
	rep := report.NewComposer(report.DefaultLabels(), textshape.Shape).
		Compose(items, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))

	out, err := r.Render(context.Background(), rep.Blocks)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_ContextoCancelado(t *testing.T) {
	r := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
