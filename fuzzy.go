package arabica

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

const defaultFuzzyThreshold = 0.85

// FuzzyOption is a functional option for configuring a FuzzyMatcher.
type FuzzyOption func(*FuzzyMatcher)

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required for a
// candidate to be accepted. Default: 0.85.
func WithFuzzyThreshold(threshold float64) FuzzyOption {
	return func(m *FuzzyMatcher) {
		m.threshold = threshold
	}
}

// FuzzyMatcher finds dictionary entries close to a misspelled or variant
// chat word. Candidates are prefiltered by Double Metaphone phonetic codes
// and ranked by Jaro-Winkler similarity; when no phonetic candidate clears
// the threshold, plain Jaro-Winkler over all keys is tried. The matcher is
// read-only after construction and safe for concurrent use.
type FuzzyMatcher struct {
	threshold float64
}

// FuzzyMatch is one ranked dictionary candidate.
type FuzzyMatch struct {
	// Key is the matched dictionary key.
	Key string
	// Value is the dictionary entry for Key.
	Value string
	// Score is the Jaro-Winkler similarity in [0, 1].
	Score float64
}

// NewFuzzyMatcher returns a FuzzyMatcher configured with the supplied options.
func NewFuzzyMatcher(opts ...FuzzyOption) *FuzzyMatcher {
	m := &FuzzyMatcher{threshold: defaultFuzzyThreshold}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match returns the single best dictionary candidate for word, or ok=false
// when nothing clears the threshold.
func (m *FuzzyMatcher) Match(word string, dict map[string]string) (FuzzyMatch, bool) {
	matches := m.MatchN(word, dict, 1)
	if len(matches) == 0 {
		return FuzzyMatch{}, false
	}
	return matches[0], true
}

// MatchN returns up to limit candidates above the threshold, best first.
// Ties break alphabetically by key so results are deterministic.
func (m *FuzzyMatcher) MatchN(word string, dict map[string]string, limit int) []FuzzyMatch {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || len(dict) == 0 || limit <= 0 {
		return nil
	}

	primary, secondary := matchr.DoubleMetaphone(word)

	var candidates []FuzzyMatch
	for key, value := range dict {
		score := matchr.JaroWinkler(word, key, false)
		if score < m.threshold {
			continue
		}
		kp, ks := matchr.DoubleMetaphone(key)
		if phoneticOverlap(primary, secondary, kp, ks) && score < 1 {
			// Phonetically aligned candidates outrank plain string
			// similarity at equal scores.
			score += 1e-9
		}
		candidates = append(candidates, FuzzyMatch{Key: key, Value: value, Score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Key < candidates[j].Key
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func phoneticOverlap(p1, s1, p2, s2 string) bool {
	if p1 == "" && s1 == "" {
		return false
	}
	return p1 == p2 || (s1 != "" && s1 == s2) || (s1 != "" && s1 == p2) || (s2 != "" && p1 == s2)
}
