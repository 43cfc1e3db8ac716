// Package fonts embebe la fuente por defecto del reporte PDF.
package fonts

import _ "embed"

// DejaVuSansCondensed cubre latín, árabe y las formas de presentación árabes
// (U+FB50-U+FEFF) que produce textshape.
//
//go:embed DejaVuSansCondensed.ttf
var DejaVuSansCondensed []byte
