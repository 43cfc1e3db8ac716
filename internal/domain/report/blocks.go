package report

import "github.com/jhoicas/inventario-libros/pkg/textshape"

// Block unidad renderizable del reporte. Solo los tipos de este paquete la implementan.
type Block interface {
	isBlock()
}

// TitleBlock encabezado principal.
type TitleBlock struct {
	Text textshape.Shaped
}

// MetaBlock línea de metadatos (fecha de generación).
type MetaBlock struct {
	Text textshape.Shaped
}

// TableBlock tabla de items. Columnas: cantidad, tamaño, riwaya, categoría, título.
type TableBlock struct {
	Header []textshape.Shaped
	Rows   [][]textshape.Shaped
}

// SummaryBlock totales por categoría seguidos del total general (última línea).
type SummaryBlock struct {
	Lines []textshape.Shaped
}

func (TitleBlock) isBlock()   {}
func (MetaBlock) isBlock()    {}
func (TableBlock) isBlock()   {}
func (SummaryBlock) isBlock() {}
