package arabica

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Config is the fully parsed, in-memory engine configuration. Callers may
// build one directly (tests, embedded tables) or read it from a data
// directory with Load. NewEngine validates everything once; conversion never
// fails on table data afterwards.
type Config struct {
	// Dialects maps a dialect key ("moroccan") to its profile.
	Dialects map[string]*DialectConfig `validate:"required,min=1"`
	// Dictionary is the shared common-word partition, consulted after the
	// active dialect's own dictionary.
	Dictionary map[string]string
	// Foreign lists words exempt from all mapping and correction.
	Foreign []string
	// Corrections is the post-processing rule set.
	Corrections CorrectionsConfig
	// DefaultDialect is used by callers that want a fallback profile.
	DefaultDialect string
}

// DialectConfig is one dialect profile as found in data/dialects/<key>.json.
type DialectConfig struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	// Mappings are single-character overrides, keyed by one lowercase rune.
	Mappings map[string]string `json:"mappings"`
	// Digraphs and Trigraphs override the base multi-character tables and
	// are tried before them, in file order.
	Digraphs  []PatternConfig `json:"digraphs"`
	Trigraphs []PatternConfig `json:"trigraphs"`
	// Dictionary is the dialect's common-word partition.
	Dictionary map[string]string `json:"dictionary"`
}

// PatternConfig is one literal pattern → replacement pair.
type PatternConfig struct {
	Pattern     string `json:"pattern" validate:"required"`
	Replacement string `json:"replacement" validate:"required"`
}

// CorrectionsConfig holds the three correction-rule kinds plus the article
// stem list used for fused definite-article normalization.
type CorrectionsConfig struct {
	// Words are exact segment replacements, case-sensitive on the
	// transliterated form. First match wins.
	Words map[string]string `json:"words"`
	// Patterns are regex rules applied over the whole string, in order.
	// Each rule's output feeds the next unless the rule is exclusive.
	Patterns []PatternRuleConfig `json:"patterns"`
	// Suffixes are tried per segment in file order; the first matching
	// suffix is replaced and the stem preserved.
	Suffixes []SuffixRuleConfig `json:"suffixes"`
	// ArticleStems are transliterated stems that license splitting a fused
	// article: "alšams" → "al-šams" only when "šams" is listed here.
	ArticleStems []string `json:"article_stems"`
}

// PatternRuleConfig is one regex correction rule.
type PatternRuleConfig struct {
	Pattern     string `json:"pattern" validate:"required"`
	Replacement string `json:"replacement"`
	// Dialect restricts the rule to one profile; empty applies to all.
	Dialect string `json:"dialect"`
	// Exclusive stops the pattern chain once this rule has changed the
	// string. Default is cumulative.
	Exclusive bool `json:"exclusive"`
}

// SuffixRuleConfig is one suffix correction rule.
type SuffixRuleConfig struct {
	Suffix      string `json:"suffix" validate:"required"`
	Replacement string `json:"replacement" validate:"required"`
}

var structValidator = validator.New()

// validate checks cfg for structural problems. origin names the configuration
// source in the resulting ConfigError (a file path or a symbolic name).
func (cfg *Config) validate(origin string) error {
	if err := structValidator.Struct(cfg); err != nil {
		return &ConfigError{File: origin, Problem: err.Error()}
	}

	for key, dc := range cfg.Dialects {
		if dc == nil {
			return &ConfigError{File: origin, Problem: fmt.Sprintf("dialect %q is empty", key)}
		}
		if err := validateDialect(key, dc); err != nil {
			return err
		}
	}
	return validateCorrections(&cfg.Corrections)
}

func validateDialect(key string, dc *DialectConfig) error {
	origin := "dialect " + key

	if dc.Name == "" {
		return &ConfigError{File: origin, Problem: "missing name"}
	}
	for k := range dc.Mappings {
		if utf8.RuneCountInString(k) != 1 {
			return &ConfigError{File: origin, Problem: fmt.Sprintf("single-character mapping key %q is not one character", k)}
		}
	}
	if err := validateArity(origin, dc.Digraphs, 2); err != nil {
		return err
	}
	return validateArity(origin, dc.Trigraphs, 3)
}

// validateArity checks pattern length and rejects duplicate pattern keys.
// Two replacements for the same pattern would be silently order-dependent,
// so it is a load-time error.
func validateArity(origin string, table []PatternConfig, arity int) error {
	seen := make(map[string]struct{}, len(table))
	for _, m := range table {
		if m.Pattern == "" || m.Replacement == "" {
			return &ConfigError{File: origin, Problem: "pattern entry with empty pattern or replacement"}
		}
		if utf8.RuneCountInString(m.Pattern) != arity {
			return &ConfigError{File: origin, Problem: fmt.Sprintf("pattern %q is not %d characters", m.Pattern, arity)}
		}
		if _, dup := seen[m.Pattern]; dup {
			return &ConfigError{File: origin, Problem: fmt.Sprintf("duplicate pattern %q", m.Pattern)}
		}
		seen[m.Pattern] = struct{}{}
	}
	return nil
}

func validateCorrections(cc *CorrectionsConfig) error {
	for _, p := range cc.Patterns {
		if p.Pattern == "" {
			return &ConfigError{File: "pattern corrections", Problem: "rule with empty pattern"}
		}
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return &ConfigError{File: "pattern corrections", Problem: fmt.Sprintf("invalid regex %q: %v", p.Pattern, err)}
		}
	}

	seen := make(map[string]struct{}, len(cc.Suffixes))
	for _, s := range cc.Suffixes {
		if s.Suffix == "" || s.Replacement == "" {
			return &ConfigError{File: "suffix corrections", Problem: "rule with empty suffix or replacement"}
		}
		if _, dup := seen[s.Suffix]; dup {
			return &ConfigError{File: "suffix corrections", Problem: fmt.Sprintf("duplicate suffix %q", s.Suffix)}
		}
		seen[s.Suffix] = struct{}{}
	}
	return nil
}
