package pdf

import (
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/inventario-libros/internal/domain"
)

// textMeasurer mide texto con el mismo motor (gofpdf) y la misma fuente con que maroto
// dibuja, y corta las líneas por espacios igual que breakline.EmptySpaceStrategy.
// No es seguro para uso concurrente: Render crea uno por documento.
type textMeasurer struct {
	pdf    *gofpdf.Fpdf
	family string
}

func newTextMeasurer(family string, font []byte) (*textMeasurer, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "mm", SizeStr: "A4"})
	pdf.AddUTF8FontFromBytes(family, "", font)
	pdf.SetFont(family, "", 10)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFontUnavailable, err)
	}
	return &textMeasurer{pdf: pdf, family: family}, nil
}

// lines cantidad de líneas que ocupa s en width milímetros. Cero para texto vacío.
func (m *textMeasurer) lines(s string, size, width float64) int {
	m.pdf.SetFont(m.family, "", size)

	n, current := 0, 0.0
	for _, word := range strings.Split(s, " ") {
		switch {
		case word == "":
		case n == 0:
			n, current = 1, m.pdf.GetStringWidth(word)
		default:
			if w := m.pdf.GetStringWidth(" " + word); current+w <= width {
				current += w
			} else {
				n++
				current = m.pdf.GetStringWidth(word)
			}
		}
	}
	return n
}
