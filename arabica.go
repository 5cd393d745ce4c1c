// Package arabica converts informal Latin-script Arabic chat text (Arabizi)
// into the Arabica academic transliteration scheme, with Moroccan dialect
// support, through a deterministic rule/dictionary pipeline.
//
// An Engine is built once from validated configuration and is immutable
// afterwards; Convert is a pure function of (text, dialect, loaded tables)
// and is safe for concurrent use without locking.
package arabica

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Engine holds all loaded tables and provides the public API.
type Engine struct {
	// dialects maps dialect key → compiled profile.
	dialects map[string]*dialect

	// dictionary is the shared common-word partition, keyed by lowercase
	// chat form.
	dictionary map[string]string

	// foreign is the set of words exempt from mapping, lowercase keys.
	foreign map[string]struct{}

	// corrector is the compiled post-processing rule chain.
	corrector *corrector

	// defaultDialect is the fallback profile key, may be empty.
	defaultDialect string
}

// dialect is a compiled DialectConfig.
type dialect struct {
	key  string
	name string

	singles    map[rune]string
	digraphs   []Mapping
	trigraphs  []Mapping
	dictionary map[string]string
}

// Result is the outcome of one conversion call.
type Result struct {
	// Output is the corrected Arabica transliteration.
	Output string
	// ArabicScript is the best-effort Arabic-script approximation of the
	// mapped text, or "" when nothing could be rendered. It is produced
	// independently of the correction layer and is experimental.
	ArabicScript string
	// Unresolved lists word tokens that passed through the mapping stage
	// with unmapped Latin letters or digits. Callers may feed these to an
	// external Resolver and splice the results into Output.
	Unresolved []Unresolved
}

// Unresolved is one word token the engine could not fully map.
type Unresolved struct {
	// Original is the token as written in the input.
	Original string
	// Mapped is the best-effort mapped form that appears in the
	// pre-correction output.
	Mapped string
}

// NewEngine validates cfg and compiles it into a ready Engine.
// Malformed configuration fails with a *ConfigError.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.validate("config"); err != nil {
		return nil, err
	}

	e := &Engine{
		dialects:       make(map[string]*dialect, len(cfg.Dialects)),
		dictionary:     make(map[string]string, len(cfg.Dictionary)),
		foreign:        make(map[string]struct{}, len(cfg.Foreign)),
		defaultDialect: cfg.DefaultDialect,
	}

	for key, dc := range cfg.Dialects {
		e.dialects[strings.ToLower(key)] = compileDialect(strings.ToLower(key), dc)
	}
	for k, v := range cfg.Dictionary {
		e.dictionary[strings.ToLower(k)] = v
	}
	for _, w := range cfg.Foreign {
		e.foreign[strings.ToLower(w)] = struct{}{}
	}

	c, err := compileCorrections(&cfg.Corrections, e.foreign)
	if err != nil {
		return nil, err
	}
	e.corrector = c

	if e.defaultDialect != "" {
		if _, ok := e.dialects[e.defaultDialect]; !ok {
			return nil, &ConfigError{File: "config", Problem: "default dialect " + e.defaultDialect + " has no profile"}
		}
	}
	return e, nil
}

func compileDialect(key string, dc *DialectConfig) *dialect {
	d := &dialect{
		key:        key,
		name:       dc.Name,
		singles:    make(map[rune]string, len(dc.Mappings)),
		dictionary: make(map[string]string, len(dc.Dictionary)),
	}
	for k, v := range dc.Mappings {
		d.singles[[]rune(k)[0]] = v
	}
	for _, m := range dc.Digraphs {
		d.digraphs = append(d.digraphs, Mapping{Pattern: m.Pattern, Replacement: m.Replacement})
	}
	for _, m := range dc.Trigraphs {
		d.trigraphs = append(d.trigraphs, Mapping{Pattern: m.Pattern, Replacement: m.Replacement})
	}
	for k, v := range dc.Dictionary {
		d.dictionary[strings.ToLower(k)] = v
	}
	return d
}

// Dialects returns the loaded dialect profiles as a map of key to display
// name.
func (e *Engine) Dialects() map[string]string {
	out := make(map[string]string, len(e.dialects))
	for k, d := range e.dialects {
		out[k] = d.name
	}
	return out
}

// DefaultDialect returns the configured fallback dialect key, may be "".
func (e *Engine) DefaultDialect() string {
	return e.defaultDialect
}

// DictionaryEntries returns a copy of the common-word dictionary visible to
// the named dialect: its own partition merged over the shared one. Callers
// use it for fuzzy suggestion lookups.
func (e *Engine) DictionaryEntries(dialectKey string) (map[string]string, error) {
	d, ok := e.dialects[strings.ToLower(dialectKey)]
	if !ok {
		return nil, &UnknownDialectError{Dialect: dialectKey}
	}
	out := make(map[string]string, len(e.dictionary)+len(d.dictionary))
	for k, v := range e.dictionary {
		out[k] = v
	}
	for k, v := range d.dictionary {
		out[k] = v
	}
	return out, nil
}

// Convert transliterates text using the named dialect profile. The only
// possible error is *UnknownDialectError; unmappable characters pass through
// unchanged so a partial, best-effort output is always produced.
func (e *Engine) Convert(text, dialectKey string) (*Result, error) {
	d, ok := e.dialects[strings.ToLower(dialectKey)]
	if !ok {
		return nil, &UnknownDialectError{Dialect: dialectKey}
	}

	tokens := Tokenize(text)

	var mapped strings.Builder
	var unresolved []Unresolved
	for _, t := range tokens {
		if t.Type != Word {
			mapped.WriteString(t.Text)
			continue
		}
		out, resolved := e.mapWord(d, t.Text)
		mapped.WriteString(out)
		if !resolved {
			unresolved = append(unresolved, Unresolved{Original: t.Text, Mapped: out})
		}
	}

	pre := norm.NFC.String(mapped.String())
	res := &Result{
		Output:       e.corrector.apply(d.key, pre),
		ArabicScript: ApproximateArabicScript(pre),
		Unresolved:   unresolved,
	}
	return res, nil
}

// MapWord transliterates a single word token without the correction layer.
// It exists for callers that need per-word behavior (tests, resolvers).
func (e *Engine) MapWord(word, dialectKey string) (string, error) {
	d, ok := e.dialects[strings.ToLower(dialectKey)]
	if !ok {
		return "", &UnknownDialectError{Dialect: dialectKey}
	}
	out, _ := e.mapWord(d, word)
	return norm.NFC.String(out), nil
}
