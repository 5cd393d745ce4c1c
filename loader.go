package arabica

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// On-disk envelope shapes. Every file carries a free-form description field
// alongside its payload.

type dictionaryFile struct {
	Description string            `json:"description"`
	Entries     map[string]string `json:"entries"`
}

type foreignFile struct {
	Description string   `json:"description"`
	Words       []string `json:"words"`
}

type wordCorrectionsFile struct {
	Description string            `json:"description"`
	Corrections map[string]string `json:"corrections"`
}

type patternCorrectionsFile struct {
	Description string              `json:"description"`
	Corrections []PatternRuleConfig `json:"corrections"`
}

type suffixCorrectionsFile struct {
	Description string             `json:"description"`
	Corrections []SuffixRuleConfig `json:"corrections"`
}

type articleStemsFile struct {
	Description string   `json:"description"`
	Stems       []string `json:"stems"`
}

// Load reads all engine configuration from dataDir and returns a ready
// Engine. Expected layout:
//
//	dialects/<key>.json              one dialect profile per file
//	dictionary.json                  shared common-word dictionary
//	foreign_words.json               pass-through word list
//	corrections/word_corrections.json
//	corrections/pattern_corrections.json
//	corrections/suffix_corrections.json
//	corrections/article_stems.json
//
// Only the dialects directory is mandatory. Malformed files fail fast with a
// *ConfigError naming the file and the problem.
func Load(dataDir string) (*Engine, error) {
	cfg, err := LoadConfig(dataDir)
	if err != nil {
		return nil, err
	}
	return NewEngine(cfg)
}

// LoadConfig reads the same layout as Load but stops short of building the
// Engine, so callers can adjust the configuration first.
func LoadConfig(dataDir string) (*Config, error) {
	cfg := &Config{Dialects: make(map[string]*DialectConfig)}

	if err := loadDialects(dataDir, cfg); err != nil {
		return nil, err
	}

	var dict dictionaryFile
	if ok, err := readOptionalJSON(filepath.Join(dataDir, "dictionary.json"), &dict); err != nil {
		return nil, err
	} else if ok {
		cfg.Dictionary = dict.Entries
	}

	var foreign foreignFile
	if ok, err := readOptionalJSON(filepath.Join(dataDir, "foreign_words.json"), &foreign); err != nil {
		return nil, err
	} else if ok {
		cfg.Foreign = foreign.Words
	}

	if err := loadCorrections(dataDir, cfg); err != nil {
		return nil, err
	}

	// The shipped data set is Moroccan-first; keep it as the fallback
	// profile when present.
	if _, ok := cfg.Dialects["moroccan"]; ok {
		cfg.DefaultDialect = "moroccan"
	}

	log.Debug().
		Int("dialects", len(cfg.Dialects)).
		Int("dictionary", len(cfg.Dictionary)).
		Int("foreign", len(cfg.Foreign)).
		Int("word_corrections", len(cfg.Corrections.Words)).
		Int("pattern_corrections", len(cfg.Corrections.Patterns)).
		Int("suffix_corrections", len(cfg.Corrections.Suffixes)).
		Str("data_dir", dataDir).
		Msg("transliteration tables loaded")

	return cfg, nil
}

func loadDialects(dataDir string, cfg *Config) error {
	dir := filepath.Join(dataDir, "dialects")
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return &ConfigError{File: dir, Problem: "no dialect profiles found"}
	}

	for _, path := range matches {
		var dc DialectConfig
		if err := readJSON(path, &dc); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".json"))
		cfg.Dialects[key] = &dc
		log.Debug().Str("dialect", key).Str("name", dc.Name).Msg("loaded dialect profile")
	}
	return nil
}

func loadCorrections(dataDir string, cfg *Config) error {
	dir := filepath.Join(dataDir, "corrections")

	var words wordCorrectionsFile
	if ok, err := readOptionalJSON(filepath.Join(dir, "word_corrections.json"), &words); err != nil {
		return err
	} else if ok {
		cfg.Corrections.Words = words.Corrections
	}

	var patterns patternCorrectionsFile
	if ok, err := readOptionalJSON(filepath.Join(dir, "pattern_corrections.json"), &patterns); err != nil {
		return err
	} else if ok {
		cfg.Corrections.Patterns = patterns.Corrections
	}

	var suffixes suffixCorrectionsFile
	if ok, err := readOptionalJSON(filepath.Join(dir, "suffix_corrections.json"), &suffixes); err != nil {
		return err
	} else if ok {
		cfg.Corrections.Suffixes = suffixes.Corrections
	}

	var stems articleStemsFile
	if ok, err := readOptionalJSON(filepath.Join(dir, "article_stems.json"), &stems); err != nil {
		return err
	} else if ok {
		cfg.Corrections.ArticleStems = stems.Stems
	}
	return nil
}

// readJSON decodes path into v, rejecting unknown fields so typos in table
// files surface at load time instead of silently dropping rules.
func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ConfigError{File: path, Problem: err.Error()}
	}
	return nil
}

// readOptionalJSON is readJSON for files that may legitimately be absent.
func readOptionalJSON(path string, v any) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := readJSON(path, v); err != nil {
		return false, err
	}
	return true, nil
}
