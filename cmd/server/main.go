// Command server exposes the Arabica transliteration engine as a JSON REST API.
//
// Endpoints:
//
//	POST /api/convert    body: {"text":"...","dialect":"moroccan","resolve":true}
//	GET  /api/dialects
//	GET  /healthz
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arabichat/arabica"
)

// ---- JSON response types ------------------------------------------------

type unresolvedJSON struct {
	Original    string   `json:"original"`
	Mapped      string   `json:"mapped"`
	Resolved    string   `json:"resolved,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type convertResponse struct {
	Result       string           `json:"result"`
	ArabicScript string           `json:"arabic_script"`
	Dialect      string           `json:"dialect"`
	Unresolved   []unresolvedJSON `json:"unresolved"`
}

type dialectsResponse struct {
	Dialects map[string]string `json:"dialects"`
	Default  string            `json:"default"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// suggestFor ranks dictionary keys near the unresolved source word.
func suggestFor(eng *arabica.Engine, fm *arabica.FuzzyMatcher, dialect, word string, limit int) []string {
	entries, err := eng.DictionaryEntries(dialect)
	if err != nil || len(entries) == 0 {
		return nil
	}
	matches := fm.MatchN(word, entries, limit)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Value)
	}
	return out
}

// resolveUnresolved asks the LLM resolver for each unresolved word and
// splices answers into the converted text. Resolver failures degrade to the
// mapped form; they never fail the request.
func resolveUnresolved(ctx context.Context, res arabica.Resolver, text string, unresolved []unresolvedJSON) (string, []unresolvedJSON) {
	for i, u := range unresolved {
		answer, err := res.Resolve(ctx, u.Original, text)
		if err != nil {
			log.Warn().Err(err).Str("word", u.Original).Msg("resolver failed")
			continue
		}
		unresolved[i].Resolved = answer
		text = strings.Replace(text, u.Mapped, answer, 1)
	}
	return text, unresolved
}

// ---- handlers -----------------------------------------------------------

type server struct {
	engine   *arabica.Engine
	fuzzy    *arabica.FuzzyMatcher
	resolver arabica.Resolver
	cfg      *serverConfig
}

func (s *server) handleConvert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text    string `json:"text"`
			Dialect string `json:"dialect"`
			Resolve bool   `json:"resolve"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}
		dialect := body.Dialect
		if dialect == "" {
			dialect = s.engine.DefaultDialect()
		}

		start := time.Now()
		result, err := s.engine.Convert(body.Text, dialect)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		unresolved := make([]unresolvedJSON, 0, len(result.Unresolved))
		for _, u := range result.Unresolved {
			unresolved = append(unresolved, unresolvedJSON{
				Original:    u.Original,
				Mapped:      u.Mapped,
				Suggestions: suggestFor(s.engine, s.fuzzy, dialect, u.Original, s.cfg.Suggestions.Limit),
			})
		}

		output := result.Output
		if body.Resolve && s.resolver != nil {
			output, unresolved = resolveUnresolved(r.Context(), s.resolver, output, unresolved)
		}

		log.Debug().
			Str("dialect", dialect).
			Int("unresolved", len(unresolved)).
			Dur("took", time.Since(start)).
			Msg("convert")

		writeJSON(w, http.StatusOK, convertResponse{
			Result:       output,
			ArabicScript: result.ArabicScript,
			Dialect:      dialect,
			Unresolved:   unresolved,
		})
	}
}

func (s *server) handleDialects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, dialectsResponse{
			Dialects: s.engine.Dialects(),
			Default:  s.engine.DefaultDialect(),
		})
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- main ---------------------------------------------------------------

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl)
}

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	dataDir := flag.String("data", "", "path to Arabica data directory (overrides config)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	setupLogging(cfg.LogLevel)

	log.Info().Str("dir", cfg.DataDir).Msg("loading data")
	engineCfg, err := arabica.LoadConfig(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load data")
	}
	if cfg.DefaultDialect != "" {
		engineCfg.DefaultDialect = cfg.DefaultDialect
	}
	engine, err := arabica.NewEngine(engineCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build engine")
	}
	log.Info().Strs("dialects", dialectKeys(engine)).Msg("data loaded")

	s := &server{
		engine: engine,
		fuzzy:  arabica.NewFuzzyMatcher(arabica.WithFuzzyThreshold(cfg.Suggestions.Threshold)),
		cfg:    cfg,
	}
	if cfg.Resolver.Provider != "" {
		res, err := newResolver(cfg.Resolver)
		if err != nil {
			log.Fatal().Err(err).Msg("build resolver")
		}
		s.resolver = res
		log.Info().Str("provider", cfg.Resolver.Provider).Str("model", cfg.Resolver.Model).Msg("resolver enabled")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/convert", s.handleConvert())
	mux.HandleFunc("/api/dialects", s.handleDialects())
	mux.HandleFunc("/healthz", handleHealth)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)

	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func dialectKeys(e *arabica.Engine) []string {
	m := e.Dialects()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
