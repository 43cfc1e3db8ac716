package textshape

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

const (
	lam      = 'ل'
	tatweel  = 'ـ'
	zwj      = '‍'
	formIsol = " ISOLATED FORM"
	formFina = " FINAL FORM"
	formInit = " INITIAL FORM"
	formMedi = " MEDIAL FORM"
)

// letterForms formas de presentación de una letra árabe.
// Un valor 0 significa que la letra no tiene esa forma.
type letterForms struct {
	base     rune
	isolated rune
	final    rune
	initial  rune
	medial   rune
}

// dual indica si la letra se une por ambos lados (tiene forma inicial y medial).
func (f *letterForms) dual() bool { return f.initial != 0 && f.medial != 0 }

func (f *letterForms) pick(joinsPrev, joinsNext bool) rune {
	switch {
	case joinsPrev && joinsNext:
		return f.medial
	case joinsPrev:
		return f.final
	case joinsNext:
		return f.initial
	case f.isolated != 0:
		return f.isolated
	default:
		return f.base
	}
}

// Tablas de solo lectura construidas en init a partir de la base Unicode de x/text.
var (
	forms   map[rune]*letterForms
	lamAlef map[rune]letterForms // clave: variante de alef que sigue a lam
)

func init() {
	forms = make(map[rune]*letterForms)
	lamAlef = make(map[rune]letterForms)
	// Presentation Forms-B primero: son las formas canónicas; Forms-A solo rellena huecos
	// (persa, urdu).
	scanPresentationForms(0xFE70, 0xFEFF)
	scanPresentationForms(0xFB50, 0xFDFF)
}

// scanPresentationForms clasifica cada punto de código del rango por el sufijo de su
// nombre Unicode ("... INITIAL FORM") y lo asocia a la letra base que devuelve NFKC.
func scanPresentationForms(lo, hi rune) {
	for r := lo; r <= hi; r++ {
		name := runenames.Name(r)
		set := formSetter(name)
		if set == nil {
			continue
		}
		base := []rune(norm.NFKC.String(string(r)))
		switch {
		case len(base) == 1 && strings.HasPrefix(name, "ARABIC LETTER ") && unicode.Is(unicode.Arabic, base[0]):
			f, ok := forms[base[0]]
			if !ok {
				f = &letterForms{base: base[0]}
				forms[base[0]] = f
			}
			set(f, r)
		case len(base) == 2 && base[0] == lam && isAlef(base[1]) && strings.HasPrefix(name, "ARABIC LIGATURE LAM WITH ALEF"):
			f := lamAlef[base[1]]
			f.base = base[1]
			set(&f, r)
			lamAlef[base[1]] = f
		}
	}
}

// formSetter devuelve la función que asigna r a la forma indicada por el nombre.
// Nunca sobreescribe una forma ya asignada.
func formSetter(name string) func(f *letterForms, r rune) {
	var slot func(f *letterForms) *rune
	switch {
	case strings.HasSuffix(name, formIsol):
		slot = func(f *letterForms) *rune { return &f.isolated }
	case strings.HasSuffix(name, formFina):
		slot = func(f *letterForms) *rune { return &f.final }
	case strings.HasSuffix(name, formInit):
		slot = func(f *letterForms) *rune { return &f.initial }
	case strings.HasSuffix(name, formMedi):
		slot = func(f *letterForms) *rune { return &f.medial }
	default:
		return nil
	}
	return func(f *letterForms, r rune) {
		if p := slot(f); *p == 0 {
			*p = r
		}
	}
}

func isAlef(r rune) bool {
	switch r {
	case 'آ', 'أ', 'إ', 'ا':
		return true
	}
	return false
}

// transparent: marcas (harakat) que no interrumpen la unión entre letras.
func transparent(r rune) bool { return unicode.Is(unicode.Mn, r) }

func joinCausing(r rune) bool { return r == tatweel || r == zwj }

// joinsNext indica si r se une con la letra que le sigue.
func joinsNext(r rune) bool {
	if joinCausing(r) {
		return true
	}
	f, ok := forms[r]
	return ok && f.dual()
}

// joinsPrev indica si r acepta unirse con la letra anterior (tiene forma final).
func joinsPrev(r rune) bool {
	if joinCausing(r) {
		return true
	}
	f, ok := forms[r]
	return ok && f.final != 0
}

func prevSignificant(in []rune, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !transparent(in[j]) {
			return j
		}
	}
	return -1
}

func nextSignificant(in []rune, i int) int {
	for j := i + 1; j < len(in); j++ {
		if !transparent(in[j]) {
			return j
		}
	}
	return -1
}

// Reshape sustituye cada letra árabe por su forma de presentación contextual
// (aislada, inicial, medial o final) y fusiona lam + alef en su ligadura.
// El resultado sigue en orden lógico. Los caracteres sin formas conocidas pasan sin cambios.
func Reshape(logical string) string {
	if logical == "" {
		return ""
	}
	in := []rune(logical)
	out := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		r := in[i]
		f, ok := forms[r]
		if !ok {
			out = append(out, r)
			continue
		}
		prev := prevSignificant(in, i)
		connectPrev := prev >= 0 && joinsNext(in[prev]) && f.final != 0
		next := nextSignificant(in, i)

		if r == lam && next >= 0 {
			if lig, ok := lamAlef[in[next]]; ok {
				if connectPrev && lig.final != 0 {
					out = append(out, lig.final)
				} else {
					out = append(out, lig.isolated)
				}
				// las marcas entre lam y alef se conservan detrás de la ligadura
				out = append(out, in[i+1:next]...)
				i = next
				continue
			}
		}

		connectNext := next >= 0 && f.dual() && joinsPrev(in[next])
		out = append(out, f.pick(connectPrev, connectNext))
	}
	return string(out)
}
