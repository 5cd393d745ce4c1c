package arabica

import "context"

// Resolver resolves a word the engine could not map, typically against an
// external language model. The engine itself never calls a Resolver; the
// surrounding application invokes it for each Result.Unresolved entry and
// splices the returned transliteration into the output under its own policy
// (caching, retries and rate limits included).
type Resolver interface {
	// Resolve returns the Arabica transliteration of word. hint carries the
	// surrounding utterance to help disambiguation and may be empty.
	Resolve(ctx context.Context, word, hint string) (string, error)
}
