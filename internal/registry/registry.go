package registry

import (
	"log"
	"strings"
	"unicode"

	"catalyst/internal/config"
)

// Registry holds the configured sources and routes queries to them
type Registry struct {
	sources []config.SourceSpec
}

// New creates a registry over sources in configuration order
func New(sources []config.SourceSpec) *Registry {
	cp := make([]config.SourceSpec, len(sources))
	copy(cp, sources)
	return &Registry{sources: cp}
}

// FromConfig creates a registry for cfg, logging keys that several sources
// share
func FromConfig(cfg *config.Config) *Registry {
	for _, dup := range cfg.DuplicateKeys() {
		log.Printf("Warning: %s; routing uses the first", dup)
	}
	return New(cfg.Sources)
}

// Sources returns all configured sources in configuration order
func (r *Registry) Sources() []config.SourceSpec {
	return r.sources
}

// Resolve returns the sources a query is routed to and the query text used
// for %query% substitution.
//
// A query equal to a source's key, or starting with the key followed by
// whitespace, goes to that source alone with the key stripped. The first
// configured source wins when keys repeat. Otherwise every source is a
// target and the raw query is used unchanged.
func (r *Registry) Resolve(query string) ([]config.SourceSpec, string) {
	trimmed := strings.TrimSpace(query)

	for _, src := range r.sources {
		if src.Key == "" {
			continue
		}
		if trimmed == src.Key {
			return []config.SourceSpec{src}, ""
		}
		rest, ok := strings.CutPrefix(trimmed, src.Key)
		if !ok || rest == "" {
			continue
		}
		first := []rune(rest)[0]
		if unicode.IsSpace(first) {
			return []config.SourceSpec{src}, strings.TrimLeftFunc(rest, unicode.IsSpace)
		}
	}

	return r.sources, query
}
