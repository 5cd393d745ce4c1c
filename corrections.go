package arabica

import (
	"fmt"
	"regexp"
	"strings"
)

// corrector is the compiled post-processing rule chain. It operates on the
// whole assembled output, after word-by-word mapping, and fixes cross-token
// or systematic errors the mapping engine cannot see.
type corrector struct {
	words    map[string]string
	patterns []patternRule
	suffixes []suffixRule
	stems    map[string]struct{}
	foreign  map[string]struct{}
}

type patternRule struct {
	re      *regexp.Regexp
	repl    string
	dialect string
	// exclusive stops the chain once the rule has changed the string.
	exclusive bool
}

type suffixRule struct {
	suffix string
	repl   string
}

// segmentRe matches one whitespace-delimited segment of the output.
var segmentRe = regexp.MustCompile(`\S+`)

// articleRe matches a definite article separated from its noun by spaces or
// hyphens. The leading capture avoids RE2's ASCII-only \b misfiring after
// non-ASCII letters such as ḥ.
var articleRe = regexp.MustCompile(`(^|[^\p{L}\p{N}])[aA]l[\s-]+(\p{L})`)

// Tāʾ marbūṭa marker rules. Construct state first (marker followed by a word),
// then the utterance-final / pre-punctuation rendering.
var (
	taaConstructRe = regexp.MustCompile(`a_t(\s+[\p{L}\p{N}'])`)
	taaFinalRe     = regexp.MustCompile(`a_t($|[^\p{L}\p{N}])`)
)

func compileCorrections(cc *CorrectionsConfig, foreign map[string]struct{}) (*corrector, error) {
	c := &corrector{
		words:   make(map[string]string, len(cc.Words)),
		stems:   make(map[string]struct{}, len(cc.ArticleStems)),
		foreign: foreign,
	}
	for k, v := range cc.Words {
		c.words[k] = v
	}
	for _, p := range cc.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, &ConfigError{File: "pattern corrections", Problem: fmt.Sprintf("invalid regex %q: %v", p.Pattern, err)}
		}
		c.patterns = append(c.patterns, patternRule{
			re:        re,
			repl:      p.Replacement,
			dialect:   strings.ToLower(p.Dialect),
			exclusive: p.Exclusive,
		})
	}
	for _, s := range cc.Suffixes {
		c.suffixes = append(c.suffixes, suffixRule{suffix: s.Suffix, repl: s.Replacement})
	}
	for _, s := range cc.ArticleStems {
		c.stems[s] = struct{}{}
	}
	return c, nil
}

// apply runs the full correction chain in its fixed order: word corrections,
// pattern corrections, suffix corrections, then the two structural fixups
// (definite article, tāʾ marbūṭa).
func (c *corrector) apply(dialectKey, text string) string {
	if text == "" {
		return ""
	}
	text = c.applyWords(text)
	text = c.applyPatterns(dialectKey, text)
	text = c.applySuffixes(text)
	text = c.normalizeArticle(text)
	text = renderTaaMarbuta(text)
	return text
}

// splitSegment separates a whitespace-delimited segment into leading
// punctuation, word core, and trailing punctuation.
func splitSegment(seg string) (lead, core, trail string) {
	runes := []rune(seg)
	start, end := 0, len(runes)
	for start < end && !isWordRune(runes[start]) {
		start++
	}
	for end > start && !isWordRune(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

// applyWords replaces whole segments that exactly match a word correction.
// Matching is case-sensitive on the transliterated form; foreign words are
// left alone.
func (c *corrector) applyWords(text string) string {
	if len(c.words) == 0 {
		return text
	}
	return segmentRe.ReplaceAllStringFunc(text, func(seg string) string {
		lead, core, trail := splitSegment(seg)
		if core == "" {
			return seg
		}
		if _, ok := c.foreign[strings.ToLower(core)]; ok {
			return seg
		}
		if repl, ok := c.words[core]; ok {
			return lead + repl + trail
		}
		return seg
	})
}

// applyPatterns runs the regex rules in table order. Each rule's output feeds
// the next; an exclusive rule that changed the string ends the chain.
func (c *corrector) applyPatterns(dialectKey, text string) string {
	for _, p := range c.patterns {
		if p.dialect != "" && p.dialect != dialectKey {
			continue
		}
		next := p.re.ReplaceAllString(text, p.repl)
		if p.exclusive && next != text {
			return next
		}
		text = next
	}
	return text
}

// applySuffixes replaces the first matching suffix of each segment, keeping
// the stem. Rules are tried in table order; first match wins.
func (c *corrector) applySuffixes(text string) string {
	if len(c.suffixes) == 0 {
		return text
	}
	return segmentRe.ReplaceAllStringFunc(text, func(seg string) string {
		lead, core, trail := splitSegment(seg)
		if core == "" {
			return seg
		}
		if _, ok := c.foreign[strings.ToLower(core)]; ok {
			return seg
		}
		for _, s := range c.suffixes {
			if strings.HasSuffix(core, s.suffix) && len(core) > len(s.suffix) {
				return lead + strings.TrimSuffix(core, s.suffix) + s.repl + trail
			}
		}
		return seg
	})
}

// normalizeArticle renders the definite article as the fixed lowercase
// hyphenated sequence "al-" joined to the following segment, however the
// writer separated it. A fused article ("alšams") is split only when the
// remainder is a configured article stem.
func (c *corrector) normalizeArticle(text string) string {
	text = articleRe.ReplaceAllString(text, "${1}al-${2}")

	if len(c.stems) == 0 {
		return text
	}
	return segmentRe.ReplaceAllStringFunc(text, func(seg string) string {
		lead, core, trail := splitSegment(seg)
		cl := strings.ToLower(core)
		if !strings.HasPrefix(cl, "al") || strings.HasPrefix(core[2:], "-") {
			return seg
		}
		rest := core[2:]
		if _, ok := c.stems[rest]; ok {
			return lead + "al-" + rest + trail
		}
		return seg
	})
}

// renderTaaMarbuta resolves the word-final "_t" marker: "at" when another
// word follows immediately (construct-state heuristic), plain "a" when the
// word is utterance-final or followed by punctuation.
func renderTaaMarbuta(text string) string {
	text = taaConstructRe.ReplaceAllString(text, "at${1}")
	return taaFinalRe.ReplaceAllString(text, "a${1}")
}
