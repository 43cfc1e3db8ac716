package textshape

import (
	"golang.org/x/text/unicode/bidi"
)

// Resolución de niveles del algoritmo bidi Unicode (UAX #9) para un párrafo de una línea
// sin caracteres de formato explícito: reglas W1–W7, N1–N2, I1–I2, L1 y L2.
// Las clases de cada carácter vienen de la base de datos de x/text.
//
// bidi.Paragraph.Order agrupa los tramos solo por dirección y pierde el nivel
// (un número de nivel 2 dentro de texto RTL se fusiona con el latín de nivel 0 que le sigue),
// por eso la regla L2 se aplica aquí sobre los niveles resueltos.

func classOf(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

func isNeutral(c bidi.Class) bool {
	switch c {
	case bidi.B, bidi.S, bidi.WS, bidi.ON:
		return true
	}
	return false
}

// strongDir: dirección con la que un tipo resuelto influye sobre los neutrales (N1).
func strongDir(c bidi.Class) bidi.Class {
	if c == bidi.L {
		return bidi.L
	}
	return bidi.R // R, EN, AN
}

// resolveLevels devuelve el nivel de inserción de cada rune. baseLevel es 0 (LTR) o 1 (RTL).
func resolveLevels(rs []rune, baseLevel int) []int {
	n := len(rs)
	sos := bidi.L
	if baseLevel == 1 {
		sos = bidi.R
	}
	orig := make([]bidi.Class, n)
	cls := make([]bidi.Class, n)
	for i, r := range rs {
		orig[i] = classOf(r)
		cls[i] = orig[i]
	}

	// W1: NSM toma la clase del anterior; los controles explícitos se tratan como neutrales.
	prev := sos
	for i, c := range cls {
		switch c {
		case bidi.NSM:
			cls[i] = prev
		case bidi.BN, bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF,
			bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI, bidi.Control:
			cls[i] = bidi.ON
		}
		prev = cls[i]
	}

	// W2 y W3
	last := sos
	for i, c := range cls {
		switch c {
		case bidi.L, bidi.R, bidi.AL:
			last = c
		case bidi.EN:
			if last == bidi.AL {
				cls[i] = bidi.AN
			}
		}
	}
	for i, c := range cls {
		if c == bidi.AL {
			cls[i] = bidi.R
		}
	}

	// W4
	for i := 1; i+1 < n; i++ {
		before, after := cls[i-1], cls[i+1]
		switch {
		case cls[i] == bidi.ES && before == bidi.EN && after == bidi.EN:
			cls[i] = bidi.EN
		case cls[i] == bidi.CS && before == after && (before == bidi.EN || before == bidi.AN):
			cls[i] = before
		}
	}

	// W5
	for i := 0; i < n; {
		if cls[i] != bidi.ET {
			i++
			continue
		}
		j := i
		for j < n && cls[j] == bidi.ET {
			j++
		}
		if (i > 0 && cls[i-1] == bidi.EN) || (j < n && cls[j] == bidi.EN) {
			for k := i; k < j; k++ {
				cls[k] = bidi.EN
			}
		}
		i = j
	}

	// W6 y W7
	last = sos
	for i, c := range cls {
		switch c {
		case bidi.ES, bidi.ET, bidi.CS:
			cls[i] = bidi.ON
		case bidi.L, bidi.R:
			last = c
		case bidi.EN:
			if last == bidi.L {
				cls[i] = bidi.L
			}
		}
	}

	// N1 y N2
	for i := 0; i < n; {
		if !isNeutral(cls[i]) {
			i++
			continue
		}
		j := i
		for j < n && isNeutral(cls[j]) {
			j++
		}
		leading, trailing := sos, sos
		if i > 0 {
			leading = strongDir(cls[i-1])
		}
		if j < n {
			trailing = strongDir(cls[j])
		}
		dir := sos
		if leading == trailing {
			dir = leading
		}
		for k := i; k < j; k++ {
			cls[k] = dir
		}
		i = j
	}

	// I1 e I2
	levels := make([]int, n)
	for i, c := range cls {
		lvl := baseLevel
		if baseLevel%2 == 0 {
			switch c {
			case bidi.R:
				lvl++
			case bidi.AN, bidi.EN:
				lvl += 2
			}
		} else if c == bidi.L || c == bidi.EN || c == bidi.AN {
			lvl++
		}
		levels[i] = lvl
	}

	// L1: espacios finales y los previos a separadores vuelven al nivel del párrafo.
	trailing := true
	for i := n - 1; i >= 0; i-- {
		switch orig[i] {
		case bidi.S, bidi.B:
			levels[i] = baseLevel
			trailing = true
		case bidi.WS, bidi.BN, bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
			if trailing {
				levels[i] = baseLevel
			}
		default:
			trailing = false
		}
	}
	return levels
}

// visualOrder aplica L2 y devuelve los rune en orden visual junto a su nivel.
func visualOrder(rs []rune, levels []int) ([]rune, []int) {
	out := append([]rune(nil), rs...)
	lv := append([]int(nil), levels...)
	maxLevel, lowestOdd := 0, -1
	for _, l := range lv {
		if l > maxLevel {
			maxLevel = l
		}
		if l%2 == 1 && (lowestOdd < 0 || l < lowestOdd) {
			lowestOdd = l
		}
	}
	if lowestOdd < 0 {
		return out, lv
	}
	for level := maxLevel; level >= lowestOdd; level-- {
		for i := 0; i < len(out); {
			if lv[i] < level {
				i++
				continue
			}
			j := i
			for j < len(out) && lv[j] >= level {
				j++
			}
			reverseRange(out, lv, i, j)
			i = j
		}
	}
	return out, lv
}

func reverseRange(rs []rune, lv []int, i, j int) {
	for a, b := i, j-1; a < b; a, b = a+1, b-1 {
		rs[a], rs[b] = rs[b], rs[a]
		lv[a], lv[b] = lv[b], lv[a]
	}
}

// mirror refleja paréntesis y corchetes (L4) usando la tabla de x/text.
func mirror(r rune) rune {
	m := []rune(bidi.ReverseString(string(r)))
	if len(m) != 1 {
		return r
	}
	return m[0]
}

func reorder(s string) []Run {
	rs := []rune(s)
	baseLevel := 0
	if BaseDirection(s) == bidi.RightToLeft {
		baseLevel = 1
	}
	visual, levels := visualOrder(rs, resolveLevels(rs, baseLevel))

	var runs []Run
	start := 0
	for i := 1; i <= len(visual); i++ {
		if i < len(visual) && levels[i]%2 == levels[start]%2 {
			continue
		}
		dir := bidi.LeftToRight
		chunk := visual[start:i]
		if levels[start]%2 == 1 {
			dir = bidi.RightToLeft
			for k, r := range chunk {
				chunk[k] = mirror(r)
			}
		}
		runs = append(runs, Run{Text: string(chunk), Direction: dir})
		start = i
	}
	return runs
}
