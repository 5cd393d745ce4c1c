package arabica

import (
	"strings"
	"unicode"
)

// arabicScriptMap renders one Arabica symbol as Arabic script. Short vowels
// become their diacritic marks; long vowels their carrier letters.
var arabicScriptMap = map[rune]string{
	'b': "ب",
	't': "ت",
	'ṯ': "ث",
	'ǧ': "ج",
	'j': "ج",
	'ḥ': "ح",
	'ḫ': "خ",
	'd': "د",
	'ḏ': "ذ",
	'r': "ر",
	'z': "ز",
	's': "س",
	'š': "ش",
	'ṣ': "ص",
	'ḍ': "ض",
	'ṭ': "ط",
	'ẓ': "ظ",
	'ʿ': "ع",
	'ġ': "غ",
	'f': "ف",
	'q': "ق",
	'k': "ك",
	'l': "ل",
	'm': "م",
	'n': "ن",
	'h': "ه",
	'w': "و",
	'y': "ي",
	'g': "گ", // Moroccan gāf
	'p': "پ",
	'v': "ڤ",

	'a': "َ", // fatha
	'i': "ِ", // kasra
	'u': "ُ", // damma
	'ā': "ا",
	'ī': "ي",
	'ū': "و",

	'ʾ': "ء",
	'-': " ",

	'?': "؟",
	',': "،",
	';': "؛",
}

const shadda = "ّ"

// ApproximateArabicScript renders an Arabica transliteration as approximate
// Arabic script. It is experimental and best-effort: anything it cannot
// resolve passes through, and any internal failure degrades to "" rather
// than reaching the caller. No correction layer is applied.
func ApproximateArabicScript(s string) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		atWordStart := i == 0 || !unicode.IsLetter(runes[i-1])

		// Definite article: "al-" joins as bare alif-lām.
		if atWordStart && r == 'a' && i+2 < len(runes) && runes[i+1] == 'l' && runes[i+2] == '-' {
			b.WriteString("ال")
			i += 3
			continue
		}

		// lām-alif ligature.
		if r == 'l' && i+1 < len(runes) && runes[i+1] == 'ā' {
			b.WriteString("لا")
			i += 2
			continue
		}

		// Word-final fatha is written as alif.
		if r == 'a' && (i+1 == len(runes) || !unicode.IsLetter(runes[i+1])) && !atWordStart {
			b.WriteString("ا")
			i++
			continue
		}

		// A doubled consonant becomes the single letter plus shadda.
		if i > 0 && r == runes[i-1] && isScriptConsonant(r) {
			b.WriteString(shadda)
			i++
			continue
		}

		if rep, ok := arabicScriptMap[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

func isScriptConsonant(r rune) bool {
	switch r {
	case 'a', 'i', 'u', 'e', 'o', 'ā', 'ī', 'ū':
		return false
	}
	return unicode.IsLetter(r)
}
