package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/anthropic"
	"github.com/mozilla-ai/any-llm-go/providers/deepseek"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/groq"
	"github.com/mozilla-ai/any-llm-go/providers/mistral"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"
	"github.com/rs/zerolog/log"
)

const resolverSystemPrompt = `You transliterate romanized Arabic chat words (Arabizi) into the Arabica
Latin transcription system. Arabica uses: ʾ ʿ ā ī ū š ǧ ṯ ḏ ġ ḫ ḥ ṭ ḍ ṣ ẓ.
Reply with the transliterated word only, no explanation.`

// llmResolver answers unresolved words through an any-llm-go backend.
// Resolutions are cached per (word, hint) pair so repeated requests for the
// same word cost one completion.
type llmResolver struct {
	backend anyllmlib.Provider
	model   string
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]string
}

// newResolver creates a resolver from the server configuration. The API key
// comes from the provider's usual environment variable (OPENAI_API_KEY,
// ANTHROPIC_API_KEY, ...).
func newResolver(cfg resolverConfig) (*llmResolver, error) {
	backend, err := createBackend(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}
	return &llmResolver{
		backend: backend,
		model:   cfg.Model,
		timeout: cfg.timeout(),
		cache:   make(map[string]string),
	}, nil
}

func createBackend(providerName string) (anyllmlib.Provider, error) {
	switch strings.ToLower(providerName) {
	case "openai":
		return anyllmoai.New()
	case "anthropic":
		return anthropic.New()
	case "gemini":
		return gemini.New()
	case "ollama":
		return ollama.New()
	case "deepseek":
		return deepseek.New()
	case "mistral":
		return mistral.New()
	case "groq":
		return groq.New()
	default:
		return nil, fmt.Errorf("unsupported provider %q; supported: openai, anthropic, gemini, ollama, deepseek, mistral, groq", providerName)
	}
}

// Resolve implements arabica.Resolver.
func (r *llmResolver) Resolve(ctx context.Context, word, hint string) (string, error) {
	key := word + "\x00" + hint
	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf("Word: %s", word)
	if hint != "" {
		prompt += fmt.Sprintf("\nContext: %s", hint)
	}

	temperature := 0.0
	maxTokens := 64
	resp, err := r.backend.Completion(ctx, anyllmlib.CompletionParams{
		Model: r.model,
		Messages: []anyllmlib.Message{
			{Role: anyllmlib.RoleSystem, Content: resolverSystemPrompt},
			{Role: anyllmlib.RoleUser, Content: prompt},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("resolver: completion for %q: %w", word, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("resolver: empty response for %q", word)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.ContentString())
	if out == "" || strings.ContainsAny(out, " \n") {
		return "", fmt.Errorf("resolver: unusable response %q for word %q", out, word)
	}

	log.Debug().Str("word", word).Str("resolved", out).Msg("resolver answered")

	r.mu.Lock()
	r.cache[key] = out
	r.mu.Unlock()
	return out, nil
}
