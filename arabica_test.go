package arabica

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "data"

func loadTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := Load(dataDir)
	require.NoError(t, err)
	return eng
}

func TestLoadShippedData(t *testing.T) {
	eng := loadTestEngine(t)

	dialects := eng.Dialects()
	assert.Equal(t, "Moroccan Arabic", dialects["moroccan"])
	assert.Equal(t, "Egyptian Arabic", dialects["egyptian"])
	assert.Equal(t, "moroccan", eng.DefaultDialect())
}

func TestConvertEndToEnd(t *testing.T) {
	eng := loadTestEngine(t)

	tests := []struct {
		name    string
		in      string
		dialect string
		want    string
	}{
		{"greeting", "mar7aba, kayf 7alek?", "moroccan", "marḥaba, kayf ḥalek?"},
		{"darija dictionary", "wach kat3raf bzaf", "moroccan", "waš katʿraf bezzāf"},
		{"emphatic casing", "Tarig", "moroccan", "ṭarig"},
		{"long vowel collapse", "kitaab", "moroccan", "kitāb"},
		{"digraph precedence", "shams", "moroccan", "šams"},
		{"separated article", "al shams", "moroccan", "al-šams"},
		{"fused article", "alshams", "moroccan", "al-šams"},
		{"hyphenated article", "Al-shams", "moroccan", "al-šams"},
		{"construct state", "madina_t al-maghrib", "moroccan", "madīnat al-maġrib"},
		{"final taa marbuta", "madina_t", "moroccan", "madīna"},
		{"suffix pronoun", "salam 3likom", "moroccan", "salām ʿlikum"},
		{"foreign words", "merci 3la call", "moroccan", "merci ʿla call"},
		{"egyptian gim", "gamil awi", "egyptian", "ǧamil ʾawī"},
		{"emoji passthrough", "salam \U0001F600", "moroccan", "salām \U0001F600"},
		{"empty input", "", "moroccan", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := eng.Convert(tt.in, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestConvertDialectKeyCaseInsensitive(t *testing.T) {
	eng := loadTestEngine(t)

	res, err := eng.Convert("shams", "Moroccan")
	require.NoError(t, err)
	assert.Equal(t, "šams", res.Output)
}

func TestConvertUnknownDialect(t *testing.T) {
	eng := loadTestEngine(t)

	_, err := eng.Convert("salam", "levantine")
	var ude *UnknownDialectError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, "levantine", ude.Dialect)
}

func TestConvertArabicScript(t *testing.T) {
	eng := loadTestEngine(t)

	res, err := eng.Convert("salam", "moroccan")
	require.NoError(t, err)
	assert.Equal(t, "سَلام", res.ArabicScript)

	// The approximation reflects the mapped text before corrections.
	res, err = eng.Convert("", "moroccan")
	require.NoError(t, err)
	assert.Equal(t, "", res.ArabicScript)
}

func TestDictionaryEntries(t *testing.T) {
	eng := loadTestEngine(t)

	entries, err := eng.DictionaryEntries("moroccan")
	require.NoError(t, err)
	assert.Equal(t, "salām", entries["salam"], "shared partition")
	assert.Equal(t, "waš", entries["wach"], "dialect partition")

	egyptian, err := eng.DictionaryEntries("egyptian")
	require.NoError(t, err)
	assert.Equal(t, "salām", egyptian["salam"])
	assert.NotContains(t, egyptian, "wach")

	// The copy is detached from engine state.
	entries["salam"] = "tampered"
	again, err := eng.DictionaryEntries("moroccan")
	require.NoError(t, err)
	assert.Equal(t, "salām", again["salam"])

	_, err = eng.DictionaryEntries("levantine")
	var ude *UnknownDialectError
	require.ErrorAs(t, err, &ude)
}

func TestConvertConcurrent(t *testing.T) {
	eng := loadTestEngine(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				res, err := eng.Convert("wach mar7aba bzaf", "moroccan")
				if err != nil || res.Output != "waš marḥaba bezzāf" {
					t.Errorf("concurrent Convert: %q, %v", res.Output, err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
