package verdict

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/verdict-dev/verdict/internal/runtime"
	"github.com/verdict-dev/verdict/pkg/adapters/memory"
	"github.com/verdict-dev/verdict/pkg/adapters/yamlfile"
	"github.com/verdict-dev/verdict/pkg/domain"
	"github.com/verdict-dev/verdict/pkg/observability"
	"github.com/verdict-dev/verdict/pkg/ports"
)

// Engine is the high-level entry point for the Verdict library. It
// loads and validates a state definition once and answers any number of
// concurrent resolutions against it.
type Engine struct {
	graph   *runtime.Graph
	loader  ports.StateLoader
	states  []domain.RawState
	logger  *slog.Logger
	policy  domain.Policy
	metrics *observability.Metrics
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom StateLoader, bypassing the default file
// loader.
func WithLoader(l ports.StateLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStates supplies state descriptors directly, bypassing loaders
// entirely.
func WithStates(states []domain.RawState) Option {
	return func(e *Engine) {
		e.states = states
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPolicy selects the comparator policy for type mismatches. The
// default is PolicyStrict.
func WithPolicy(policy domain.Policy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithMetrics records every resolution on the given metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes a Verdict Engine from the state definition at path.
// By default the file is read with the yamlfile loader; WithLoader or
// WithStates replace that, in which case path may be empty and only
// names the engine. Validation happens here: a returned Engine always
// holds a well-formed graph.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{policy: domain.PolicyStrict}
	for _, opt := range opts {
		opt(eng)
	}

	if path != "" {
		eng.Name = filepath.Base(path)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("definition", eng.Name)
	}

	raw := eng.states
	if raw == nil {
		if eng.loader == nil {
			if path == "" {
				return nil, fmt.Errorf("path is required when no loader or states are provided")
			}
			eng.loader = yamlfile.New(path)
		}
		var err error
		raw, err = eng.loader.Load()
		if err != nil {
			return nil, err
		}
	}

	graph, err := runtime.Build(raw,
		runtime.WithComparator(domain.NewComparator(eng.policy)),
		runtime.WithLogger(eng.logger),
	)
	if err != nil {
		return nil, err
	}
	eng.graph = graph
	return eng, nil
}

// NewFromStates initializes an Engine directly from state descriptors.
func NewFromStates(states []domain.RawState, opts ...Option) (*Engine, error) {
	return New("", append([]Option{WithStates(states)}, opts...)...)
}

// Resolve computes the issue state for the given metadata snapshot.
// An ambiguous engaged set is returned as a *domain.AmbiguousStateError
// alongside the outcome describing it.
func (e *Engine) Resolve(meta ports.MetadataSource) (domain.Outcome, error) {
	start := time.Now()
	outcome, err := e.graph.Resolve(meta)
	e.observe(outcome, err, time.Since(start))
	return outcome, err
}

// ResolveValues resolves a metadata snapshot given as plain Go values,
// inferring each value's kind.
func (e *Engine) ResolveValues(values map[string]any) (domain.Outcome, error) {
	meta, err := memory.NewFromAny(values)
	if err != nil {
		return domain.Outcome{}, err
	}
	return e.Resolve(meta)
}

// States returns the validated states for introspection and
// visualization, declared states first, counter-states after.
func (e *Engine) States() []domain.StateInfo {
	return e.graph.States()
}

// EffectiveCondition returns a state's memoized effective condition.
func (e *Engine) EffectiveCondition(name string) (domain.Condition, bool) {
	return e.graph.EffectiveCondition(name)
}

func (e *Engine) observe(outcome domain.Outcome, err error, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	label := observability.OutcomeNone
	switch {
	case outcome.Matched:
		label = observability.OutcomeMatched
	case len(outcome.Engaged) > 1:
		label = observability.OutcomeAmbiguous
	case err != nil:
		label = observability.OutcomeError
	}
	e.metrics.Observe(label, elapsed)
}
