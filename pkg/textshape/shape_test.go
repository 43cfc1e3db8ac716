package textshape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"

	"github.com/jhoicas/inventario-libros/pkg/textshape"
)

func TestShape_CadenaVacia(t *testing.T) {
	assert.Equal(t, textshape.Shaped(""), textshape.Shape(""))
	assert.Nil(t, textshape.ShapeRuns(""))
	assert.Equal(t, "", textshape.Reshape(""))
}

func TestShape_TextoLTRNoCambia(t *testing.T) {
	for _, in := range []string{"Title1", "Fiction 123", "Large (A5) - v2.0", "2026/10/15"} {
		assert.Equal(t, in, textshape.Shape(in).String(), in)
	}
}

func TestReshape_FormasContextuales(t *testing.T) {
	// ب inicial, ي medial, ت final
	assert.Equal(t, "ﺑﻴﺖ", textshape.Reshape("بيت"))
	// letra sola: forma aislada
	assert.Equal(t, "ﺏ", textshape.Reshape("ب"))
	// alef no se une con la siguiente: la ب queda aislada
	assert.Equal(t, "ﻛﺘﺎﺏ", textshape.Reshape("كتاب"))
}

func TestReshape_LigaduraLamAlef(t *testing.T) {
	assert.Equal(t, "ﻻ", textshape.Reshape("لا"))
	// س inicial + lam-alef final + م aislada (alef corta la unión)
	assert.Equal(t, "ﺳﻼﻡ", textshape.Reshape("سلام"))
}

func TestReshape_MarcasNoRompenUnion(t *testing.T) {
	// بَيت: la fatha sobre ب no impide que ب tome la forma inicial
	assert.Equal(t, "ﺑَﻴﺖ", textshape.Reshape("بَيت"))
}

func TestReshape_CaracteresDesconocidosPasanSinCambio(t *testing.T) {
	assert.Equal(t, "abc ✓ 123", textshape.Reshape("abc ✓ 123"))
	assert.Equal(t, "ـ", textshape.Reshape("ـ"))
}

func TestShape_ArabeSeInvierte(t *testing.T) {
	assert.Equal(t, "ﺖﻴﺑ", textshape.Shape("بيت").String())
}

func TestShape_DigitosDentroDeTextoRTLConservanOrden(t *testing.T) {
	runs := textshape.ShapeRuns("كتاب 123")
	require.Len(t, runs, 2)

	assert.Equal(t, "123", runs[0].Text)
	assert.Equal(t, bidi.LeftToRight, runs[0].Direction)

	assert.Equal(t, " ﺏﺎﺘﻛ", runs[1].Text)
	assert.Equal(t, bidi.RightToLeft, runs[1].Direction)

	assert.Equal(t, "123 ﺏﺎﺘﻛ", textshape.Shape("كتاب 123").String())
}

func TestShape_ParrafoLTRConTramoRTLYNumero(t *testing.T) {
	got := textshape.Shape("Book كتاب 123").String()
	assert.Equal(t, "Book 123 ﺏﺎﺘﻛ", got)
}

func TestShape_ParentesisSeReflejanEnRTL(t *testing.T) {
	assert.Equal(t, "(ﺖﻴﺑ)", textshape.Shape("(بيت)").String())
}

func TestBaseDirection(t *testing.T) {
	assert.Equal(t, bidi.RightToLeft, textshape.BaseDirection("123 كتاب"))
	assert.Equal(t, bidi.LeftToRight, textshape.BaseDirection("Book كتاب"))
	assert.Equal(t, bidi.LeftToRight, textshape.BaseDirection("123 - 456"))
}

func TestVerbatim(t *testing.T) {
	assert.Equal(t, textshape.Shaped("42"), textshape.Verbatim("42"))
}
