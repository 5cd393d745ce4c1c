package arabica

import "fmt"

// ConfigError describes a fatal problem in a configuration file or structure,
// detected when the engine is built. Conversion never fails on table data:
// everything is validated here, up front.
type ConfigError struct {
	// File is the offending file path, or a symbolic name for in-memory
	// configuration ("dialect moroccan", "pattern corrections").
	File string
	// Problem describes the validation failure.
	Problem string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("arabica: config %s: %s", e.File, e.Problem)
}

// UnknownDialectError is returned by Convert when the requested dialect has no
// loaded profile. Callers decide whether to fall back to a default profile or
// surface the error.
type UnknownDialectError struct {
	Dialect string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("arabica: unknown dialect %q", e.Dialect)
}
