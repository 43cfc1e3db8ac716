package entity

import (
	"math"
	"time"
)

// MaxQuantity tope de la cantidad: la columna es INTEGER de 32 bits en PostgreSQL.
const MaxQuantity = math.MaxInt32

// Item representa un libro (o artículo similar) del inventario.
// Riwaya es el atributo de variante opcional (la "rewaya" del texto); nil si no aplica.
type Item struct {
	ID        string
	Title     string
	Category  string
	Quantity  int // entre 0 y MaxQuantity
	Size      string
	Riwaya    *string
	CreatedAt time.Time // se fija al crear y no cambia
}

// RiwayaOr devuelve la variante o el valor de reemplazo si está ausente o vacía.
func (i *Item) RiwayaOr(placeholder string) string {
	if i.Riwaya == nil || *i.Riwaya == "" {
		return placeholder
	}
	return *i.Riwaya
}
