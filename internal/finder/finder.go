// Package finder turns a query into candidates by running every routed
// source concurrently and merging their filtered output.
package finder

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/iter"

	"catalyst/internal/config"
	"catalyst/internal/domain"
	"catalyst/internal/eventbus"
	"catalyst/internal/process"
	"catalyst/internal/registry"
)

const (
	// MaxPerSource caps the candidates contributed by one source
	MaxPerSource = 4
	// MaxCandidates caps the merged candidate list
	MaxCandidates = 5
)

// Finder runs source commands for queries
type Finder struct {
	registry atomic.Pointer[registry.Registry]
	runner   process.Runner
	bus      eventbus.EventBus
	cache    *outputCache
}

// New creates a finder. bus may be nil.
func New(reg *registry.Registry, runner process.Runner, bus eventbus.EventBus) *Finder {
	f := &Finder{
		runner: runner,
		bus:    bus,
		cache:  newOutputCache(),
	}
	f.registry.Store(reg)
	return f
}

// SetRegistry swaps the routed sources, e.g. after a config reload.
// Queries already running keep the registry they started with.
func (f *Finder) SetRegistry(reg *registry.Registry) {
	f.registry.Store(reg)
}

// Registry returns the current registry
func (f *Finder) Registry() *registry.Registry {
	return f.registry.Load()
}

// Find runs every source the query routes to and returns at most
// MaxCandidates candidates, merged in configuration order. It returns only
// once all sources have finished. A failing source contributes nothing.
func (f *Finder) Find(ctx context.Context, query string) []domain.Candidate {
	start := time.Now()
	targets, effective := f.registry.Load().Resolve(query)

	f.publish(eventbus.QueryStartedEvent{
		Query:          query,
		EffectiveQuery: effective,
		Sources:        sourceNames(targets),
	})

	mapper := iter.Mapper[config.SourceSpec, []domain.Candidate]{MaxGoroutines: len(targets)}
	perSource := mapper.Map(targets, func(src *config.SourceSpec) []domain.Candidate {
		return f.findInSource(ctx, *src, effective)
	})

	var merged []domain.Candidate
	for _, cs := range perSource {
		merged = append(merged, cs...)
	}
	if len(merged) > MaxCandidates {
		merged = merged[:MaxCandidates]
	}

	f.publish(eventbus.CandidatesFoundEvent{
		Query:    query,
		Count:    len(merged),
		Duration: time.Since(start),
	})
	return merged
}

func (f *Finder) findInSource(ctx context.Context, src config.SourceSpec, effective string) []domain.Candidate {
	argv := SubstituteQuery(src.Command, effective)

	output, ok := f.cache.get(src, argv)
	if !ok {
		res, err := f.runner.Run(ctx, argv, 0)
		if err != nil {
			f.sourceFailed(&domain.SourceExecutionError{
				Source: src.Name,
				Argv:   argv,
				Stderr: strings.TrimSpace(string(res.Stderr)),
				Err:    err,
			})
			return nil
		}
		output = string(res.Stdout)
		f.cache.put(src, argv, output)
	}

	lines := SplitLines(output)
	if !src.Unfiltered {
		lines = Filter(effective, lines)
	}
	if len(lines) > MaxPerSource {
		lines = lines[:MaxPerSource]
	}

	candidates := make([]domain.Candidate, 0, len(lines))
	for _, line := range lines {
		candidates = append(candidates, NewCandidate(src, line))
	}
	return candidates
}

// NewCandidate builds the candidate for one output line of src
func NewCandidate(src config.SourceSpec, value string) domain.Candidate {
	return domain.Candidate{
		Value:      value,
		SourceName: src.Name,
		Action: domain.Action{
			Argv:      SubstituteMatch(src.ActionTemplate, value),
			Kind:      src.ActionKind,
			TimeoutMs: src.TimeoutMs,
		},
	}
}

func (f *Finder) sourceFailed(err *domain.SourceExecutionError) {
	log.Printf("Source failed: %v", err)
	f.publish(eventbus.SourceFailedEvent{Source: err.Source, Err: err})
}

func (f *Finder) publish(event eventbus.DomainEvent) {
	if f.bus != nil {
		f.bus.Publish(event)
	}
}

func sourceNames(sources []config.SourceSpec) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return names
}
