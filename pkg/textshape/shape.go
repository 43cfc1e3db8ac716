// Package textshape prepara texto lógico (árabe mezclado con latín y dígitos) para motores
// de maquetación que solo colocan glifos de izquierda a derecha, como el generador PDF.
//
// El proceso tiene dos etapas:
//
//  1. Reshape: cada letra árabe se reemplaza por su forma de presentación contextual.
//  2. Reordenamiento bidireccional (algoritmo Unicode bidi con las clases de golang.org/x/text): las
//     secuencias RTL se invierten y se ordenan visualmente según la dirección del párrafo,
//     mientras que las secuencias LTR (latín, dígitos) conservan su orden natural.
package textshape

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Shaped es texto ya preparado para mostrarse (orden visual, formas de presentación).
// Al ser un tipo distinto de string, volver a pasarlo por Shape exige una conversión
// explícita: el texto nunca se procesa dos veces por accidente.
type Shaped string

// String implementa fmt.Stringer.
func (s Shaped) String() string { return string(s) }

// Verbatim marca como listo un texto que no requiere procesamiento (p. ej. cantidades).
func Verbatim(s string) Shaped { return Shaped(s) }

// Run es un tramo de texto en orden visual con su dirección resuelta.
type Run struct {
	Text      string
	Direction bidi.Direction
}

// Shape devuelve la forma visual de un texto lógico. La cadena vacía devuelve vacía.
func Shape(logical string) Shaped {
	if logical == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range ShapeRuns(logical) {
		b.WriteString(r.Text)
	}
	return Shaped(b.String())
}

// ShapeRuns devuelve los tramos en orden visual (de izquierda a derecha).
// Los tramos RTL ya vienen invertidos y con los paréntesis reflejados.
func ShapeRuns(logical string) []Run {
	if logical == "" {
		return nil
	}
	return reorder(Reshape(logical))
}

// BaseDirection resuelve la dirección del párrafo con el primer carácter fuerte
// (reglas P2/P3). Sin caracteres fuertes el párrafo es LTR.
func BaseDirection(s string) bidi.Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return bidi.LeftToRight
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		}
	}
	return bidi.LeftToRight
}
