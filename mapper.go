package arabica

import (
	"strings"
	"unicode"
)

// mapWord transliterates a single word token through the staged pipeline:
// foreign-word check, dictionary lookup, trigraph/digraph scan, single
// character substitution, vowel-length collapse. The returned bool reports
// whether every Latin letter and digit in the token found a mapping.
func (e *Engine) mapWord(d *dialect, word string) (string, bool) {
	if word == "" {
		return "", true
	}

	lower := strings.ToLower(word)
	if _, ok := e.foreign[lower]; ok {
		// Foreign words keep their original casing and skip every stage.
		return word, true
	}
	if v, ok := d.dictionary[lower]; ok {
		return v, true
	}
	if v, ok := e.dictionary[lower]; ok {
		return v, true
	}

	runes := []rune(word)
	var b strings.Builder
	b.Grow(len(word))
	resolved := true

	for i := 0; i < len(runes); {
		// Longest pattern first: dialect trigraphs, base trigraphs,
		// dialect digraphs, base digraphs. The casing of the first
		// character of the matched span is the emphatic signal.
		if rep, n, ok := matchMulti(d, runes[i:]); ok {
			b.WriteString(emphaticVariant(rep, unicode.IsUpper(runes[i])))
			i += n
			continue
		}

		r := runes[i]
		lr := unicode.ToLower(r)
		if rep, ok := d.singles[lr]; ok {
			b.WriteString(emphaticVariant(rep, unicode.IsUpper(r)))
		} else if rep, ok := baseSingles[lr]; ok {
			b.WriteString(emphaticVariant(rep, unicode.IsUpper(r)))
		} else {
			// Unmapped characters pass through verbatim so the failure
			// stays visible. An unmapped ASCII letter or digit means the
			// token is a candidate for an external resolver.
			b.WriteRune(r)
			if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				resolved = false
			}
		}
		i++
	}

	return CollapseLongVowels(b.String()), resolved
}

// matchMulti tries the multi-character tables at the start of rest and
// returns the replacement and the number of runes consumed. Matching is
// case-insensitive; precedence is trigraphs before digraphs, dialect
// overrides before the base tables.
func matchMulti(d *dialect, rest []rune) (string, int, bool) {
	for _, table := range [][]Mapping{d.trigraphs, baseTrigraphs} {
		if rep, ok := matchTable(table, rest, 3); ok {
			return rep, 3, true
		}
	}
	for _, table := range [][]Mapping{d.digraphs, baseDigraphs} {
		if rep, ok := matchTable(table, rest, 2); ok {
			return rep, 2, true
		}
	}
	return "", 0, false
}

func matchTable(table []Mapping, rest []rune, arity int) (string, bool) {
	if len(rest) < arity || len(table) == 0 {
		return "", false
	}
	span := string(rest[:arity])
	for _, m := range table {
		if strings.EqualFold(span, m.Pattern) {
			return m.Replacement, true
		}
	}
	return "", false
}

// emphaticVariant substitutes the pharyngealized counterpart when the source
// span was capitalized and the mapped consonant has one. All other mappings
// discard source casing.
func emphaticVariant(rep string, upper bool) string {
	if !upper {
		return rep
	}
	if emp, ok := emphatics[rep]; ok {
		return emp
	}
	return rep
}

// CollapseLongVowels rewrites every run of two identical short vowels (a, i,
// u) into the corresponding macron form (ā, ī, ū). It runs on mapped output,
// so vowels produced by digraph expansion are still eligible. The function is
// idempotent: macron vowels are never collapsed further.
func CollapseLongVowels(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		r := unicode.ToLower(runes[i])
		if long, ok := longVowels[r]; ok && i+1 < len(runes) && unicode.ToLower(runes[i+1]) == r {
			b.WriteRune(long)
			i += 2
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}
