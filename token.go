package arabica

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType classifies a token.
type TokenType int

const (
	// Word is a maximal run of letters, digits, apostrophes and underscores.
	// Digits are word characters because the chat alphabet uses them as
	// consonants (7 → ḥ, 3 → ʿ); the underscore marks morpheme boundaries
	// such as the tāʾ marbūṭa marker "_t".
	Word TokenType = iota
	// Space is a contiguous run of whitespace.
	Space
	// Punct is a single non-word, non-space character.
	Punct
)

// String returns the name of the token type.
func (t TokenType) String() string {
	switch t {
	case Word:
		return "Word"
	case Space:
		return "Space"
	case Punct:
		return "Punct"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is a contiguous span of the input. The byte offset invariant
// s[t.Start:t.End] == t.Text holds for every token, and concatenating all
// token texts reconstructs the input exactly.
type Token struct {
	Text  string
	Start int
	End   int
	Type  TokenType
}

// String returns a debug representation, e.g. Word("mar7aba")[0:7].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Text, t.Start, t.End)
}

// isWordRune reports whether r belongs to a word token.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '_'
}

// Tokenize splits s into word, whitespace and punctuation tokens. Any input,
// including the empty string, yields a valid (possibly empty) sequence.
func Tokenize(s string) []Token {
	if s == "" {
		return nil
	}

	tokens := make([]Token, 0, len(s)/4+1)
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case isWordRune(r):
			start := i
			i += size
			for i < len(s) {
				nr, ns := utf8.DecodeRuneInString(s[i:])
				if !isWordRune(nr) {
					break
				}
				i += ns
			}
			tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i, Type: Word})

		case unicode.IsSpace(r):
			start := i
			i += size
			for i < len(s) {
				nr, ns := utf8.DecodeRuneInString(s[i:])
				if !unicode.IsSpace(nr) {
					break
				}
				i += ns
			}
			tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i, Type: Space})

		default:
			tokens = append(tokens, Token{Text: s[i : i+size], Start: i, End: i + size, Type: Punct})
			i += size
		}
	}
	return tokens
}
