package arabica

// Mapping is one ordered (pattern → replacement) pair of a multi-character
// table. Patterns within a table share a fixed rune arity; tables are tried
// longest arity first so a digraph is never split into two single-character
// substitutions.
type Mapping struct {
	Pattern     string
	Replacement string
}

// baseSingles maps a single lowercase chat character to its Arabica rendering.
// Digits follow the common chat-alphabet convention; vowels map to themselves
// and are collapsed to macron forms by the vowel-length pass afterwards.
var baseSingles = map[rune]string{
	// digits standing in for Arabic consonants
	'2': "ʾ", // hamza
	'3': "ʿ", // ʿayn
	'5': "ḫ", // ḫāʾ
	'6': "ṭ", // ṭāʾ
	'7': "ḥ", // ḥāʾ
	'8': "q", // qāf (regional)
	'9': "q", // qāf

	// consonants
	'b': "b",
	'd': "d",
	'f': "f",
	'g': "g", // Moroccan realization of qāf
	'h': "h",
	'j': "ǧ",
	'k': "k",
	'l': "l",
	'm': "m",
	'n': "n",
	'q': "q",
	'r': "r",
	's': "s",
	't': "t",
	'w': "w",
	'y': "y",
	'z': "z",

	// short vowels, kept bare; doubling is handled by the vowel-length pass
	'a': "a",
	'i': "i",
	'u': "u",
	'e': "e", // dialectal
	'o': "o", // dialectal
}

// baseDigraphs are two-character sequences mapped as a unit. Order matters:
// rules are tried top to bottom at each scan position.
var baseDigraphs = []Mapping{
	{"sh", "š"},
	{"ch", "š"},
	{"th", "ṯ"},
	{"dh", "ḏ"},
	{"gh", "ġ"},
	{"kh", "ḫ"},
	{"7'", "ḫ"}, // apostrophe marks the dotted counterpart of 7
	{"3'", "ġ"}, // apostrophe marks the dotted counterpart of 3
	{"ee", "ī"},
	{"oo", "ū"},
}

// baseTrigraphs are three-character sequences mapped as a unit. The base
// scheme defines none; dialect profiles may add their own.
var baseTrigraphs []Mapping

// emphatics maps a plain consonant rendering to its pharyngealized
// counterpart. An uppercase source letter selects the emphatic variant.
var emphatics = map[string]string{
	"t": "ṭ",
	"d": "ḍ",
	"s": "ṣ",
	"z": "ẓ",
}

// longVowels maps a doubled short vowel to its macron form.
var longVowels = map[rune]rune{
	'a': 'ā',
	'i': 'ī',
	'u': 'ū',
}
