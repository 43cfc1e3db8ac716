// Package report arma el reporte de inventario: agrupa el snapshot por categoría, calcula
// totales y produce la secuencia de bloques (título, fecha, tabla, resumen) que consume el
// generador de documentos. Todo texto que puede contener escritura RTL pasa por la función
// de shaping antes de entrar en un bloque.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	"github.com/jhoicas/inventario-libros/pkg/textshape"
)

// DateLayout formato de la fecha de generación (YYYY/MM/DD).
const DateLayout = "2006/01/02"

// Labels textos fijos (localizados) del reporte, en orden lógico.
type Labels struct {
	Title         string
	DatePrefix    string
	ColQuantity   string
	ColSize       string
	ColRiwaya     string
	ColCategory   string
	ColTitle      string
	MissingRiwaya string
	CategoryTotal string // formato con %s (categoría) y %d (total)
	GrandTotal    string // formato con %d
	Filename      string
}

// DefaultLabels textos en árabe del reporte.
func DefaultLabels() Labels {
	return Labels{
		Title:         "تقرير المخزون",
		DatePrefix:    "التاريخ: ",
		ColQuantity:   "الكمية",
		ColSize:       "الحجم",
		ColRiwaya:     "الرواية",
		ColCategory:   "التصنيف",
		ColTitle:      "اسم الكتاب",
		MissingRiwaya: "-",
		CategoryTotal: "%s: %d",
		GrandTotal:    "إجمالي عدد الكتب: %d",
		Filename:      "تقرير_المخزون.pdf",
	}
}

// ShapeFunc convierte texto lógico en texto listo para mostrar.
type ShapeFunc func(logical string) textshape.Shaped

// CategorySummary total y miembros de una categoría (efímero, no se persiste).
type CategorySummary struct {
	Category string
	Total    int
	Items    []*entity.Item
}

// Snapshot lectura puntual de todos los items usada para un reporte.
type Snapshot struct {
	Items       []*entity.Item
	GeneratedAt time.Time
	GrandTotal  int
}

// Report resultado de Compose.
type Report struct {
	Snapshot   Snapshot
	Categories []CategorySummary
	Blocks     []Block
}

// Composer construye reportes. Es inmutable y seguro para uso concurrente.
type Composer struct {
	labels Labels
	shape  ShapeFunc
}

// NewComposer construye el compositor. Si shape es nil se usa textshape.Shape.
func NewComposer(labels Labels, shape ShapeFunc) *Composer {
	if shape == nil {
		shape = textshape.Shape
	}
	return &Composer{labels: labels, shape: shape}
}

// Labels devuelve los textos configurados.
func (c *Composer) Labels() Labels { return c.labels }

// Compose agrupa los items por categoría (orden de primera aparición, estable dentro de
// cada categoría) y produce los bloques en orden fijo: título, fecha, tabla y resumen.
// Una lista vacía produce una tabla solo con cabecera y total cero.
func (c *Composer) Compose(items []*entity.Item, now time.Time) Report {
	categories := GroupByCategory(items)

	snap := Snapshot{Items: items, GeneratedAt: now}
	for _, cat := range categories {
		snap.GrandTotal += cat.Total
	}

	blocks := []Block{
		TitleBlock{Text: c.shape(c.labels.Title)},
		MetaBlock{Text: c.shape(c.labels.DatePrefix + now.Format(DateLayout))},
		c.table(categories),
		c.summary(categories, snap.GrandTotal),
	}
	return Report{Snapshot: snap, Categories: categories, Blocks: blocks}
}

func (c *Composer) table(categories []CategorySummary) TableBlock {
	t := TableBlock{
		Header: []textshape.Shaped{
			c.shape(c.labels.ColQuantity),
			c.shape(c.labels.ColSize),
			c.shape(c.labels.ColRiwaya),
			c.shape(c.labels.ColCategory),
			c.shape(c.labels.ColTitle),
		},
	}
	for _, cat := range categories {
		for _, it := range cat.Items {
			t.Rows = append(t.Rows, []textshape.Shaped{
				textshape.Verbatim(strconv.Itoa(it.Quantity)),
				c.shape(it.Size),
				c.shape(it.RiwayaOr(c.labels.MissingRiwaya)),
				c.shape(it.Category),
				c.shape(it.Title),
			})
		}
	}
	return t
}

func (c *Composer) summary(categories []CategorySummary, grandTotal int) SummaryBlock {
	s := SummaryBlock{Lines: make([]textshape.Shaped, 0, len(categories)+1)}
	for _, cat := range categories {
		s.Lines = append(s.Lines, c.shape(fmt.Sprintf(c.labels.CategoryTotal, cat.Category, cat.Total)))
	}
	s.Lines = append(s.Lines, c.shape(fmt.Sprintf(c.labels.GrandTotal, grandTotal)))
	return s
}

// GroupByCategory agrupa por categoría en orden de primera aparición.
func GroupByCategory(items []*entity.Item) []CategorySummary {
	index := make(map[string]int)
	var out []CategorySummary
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(out)
			index[it.Category] = i
			out = append(out, CategorySummary{Category: it.Category})
		}
		out[i].Total += it.Quantity
		out[i].Items = append(out[i].Items, it)
	}
	return out
}
