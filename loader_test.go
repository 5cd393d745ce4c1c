package arabica

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMinimalLayout(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "dialects/testing.json", `{
		"name": "Testing",
		"mappings": {"g": "g"}
	}`)

	eng, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"testing": "Testing"}, eng.Dialects())
	assert.Equal(t, "", eng.DefaultDialect(), "no moroccan profile, no fallback")

	res, err := eng.Convert("kitaab", "testing")
	require.NoError(t, err)
	assert.Equal(t, "kitāb", res.Output)
}

func TestLoadDialectKeyFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "dialects/Moroccan.json", `{"name": "Moroccan Arabic"}`)

	eng, err := Load(dir)
	require.NoError(t, err)
	assert.Contains(t, eng.Dialects(), "moroccan")
	assert.Equal(t, "moroccan", eng.DefaultDialect())
}

func TestLoadMissingDialectsDir(t *testing.T) {
	_, err := Load(t.TempDir())
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Problem, "no dialect profiles")
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "dialects/testing.json", `{
		"name": "Testing",
		"diagraphs": [{"pattern": "sh", "replacement": "š"}]
	}`)

	_, err := Load(dir)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.File, "testing.json")
}

func TestLoadRejectsMalformedOptionalFile(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "dialects/testing.json", `{"name": "Testing"}`)
	writeDataFile(t, dir, "dictionary.json", `{"entries": `)

	_, err := Load(dir)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.File, "dictionary.json")
}

func TestLoadOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "dialects/testing.json", `{"name": "Testing"}`)
	writeDataFile(t, dir, "dictionary.json", `{
		"description": "shared",
		"entries": {"salam": "salām"}
	}`)
	writeDataFile(t, dir, "foreign_words.json", `{
		"description": "loanwords",
		"words": ["merci"]
	}`)
	writeDataFile(t, dir, "corrections/word_corrections.json", `{
		"description": "words",
		"corrections": {"lhamdulillah": "al-ḥamdu li-llāh"}
	}`)
	writeDataFile(t, dir, "corrections/suffix_corrections.json", `{
		"description": "suffixes",
		"corrections": [{"suffix": "hom", "replacement": "hum"}]
	}`)

	eng, err := Load(dir)
	require.NoError(t, err)

	res, err := eng.Convert("salam merci lhamdulillah 3lihom", "testing")
	require.NoError(t, err)
	assert.Equal(t, "salām merci al-ḥamdu li-llāh ʿlihum", res.Output)
}

func TestLoadConfigAllowsOverrides(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "dialects/first.json", `{"name": "First"}`)
	writeDataFile(t, dir, "dialects/second.json", `{"name": "Second"}`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	cfg.DefaultDialect = "second"

	eng, err := NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, "second", eng.DefaultDialect())
}
