// Package runtime implements the resolution core: the validated state
// graph and the resolver that computes an issue's state from it.
package runtime

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/verdict-dev/verdict/internal/compiler"
	"github.com/verdict-dev/verdict/internal/validator"
	"github.com/verdict-dev/verdict/pkg/domain"
)

// record is one state in the graph arena. Relations are stored as index
// slices into the arena; closures are precomputed at build time. Records
// are never mutated after Build returns.
type record struct {
	name string
	own  domain.Condition

	extends   []int // direct
	overrides []int // direct

	extendsClosure   []int
	overridesClosure map[int]struct{}

	// effective is the memoized conjunction of own and every transitively
	// extended condition.
	effective domain.Condition

	// counter marks a synthetic counter-state; origin is then the index
	// of the countered state.
	counter bool
	origin  int
}

// Graph is the immutable, validated set of issue states. A Graph is safe
// for concurrent use: resolution never mutates it.
type Graph struct {
	states []record
	index  map[string]int
	real   int // number of declared states; counters follow
	cmp    *domain.Comparator
	logger *slog.Logger
}

// GraphOption configures graph construction.
type GraphOption func(*Graph)

// WithComparator sets the value comparator used during resolution.
func WithComparator(cmp *domain.Comparator) GraphOption {
	return func(g *Graph) {
		g.cmp = cmp
	}
}

// WithLogger sets the structured logger for build and resolution events.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Build validates the raw descriptors and publishes an immutable graph.
// Every invariant is checked here; a graph that fails any check is never
// returned, partially built or otherwise.
func Build(raw []domain.RawState, opts ...GraphOption) (*Graph, error) {
	g := &Graph{
		index:  make(map[string]int, len(raw)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cmp == nil {
		g.cmp = domain.NewComparator(domain.PolicyStrict)
	}

	if err := g.populate(raw); err != nil {
		return nil, err
	}
	if err := g.link(raw); err != nil {
		return nil, err
	}
	if err := g.checkRelations(); err != nil {
		return nil, err
	}
	g.computeEffective()
	g.appendCounters(raw)

	g.logger.Debug("state graph built",
		"states", g.real,
		"counters", len(g.states)-g.real,
	)
	return g, nil
}

// populate creates one record per declared state, enforcing unique names
// (counter names included) and parseable conditions.
func (g *Graph) populate(raw []domain.RawState) error {
	claim := func(name string) error {
		if name == "" {
			return &domain.ConfigError{Kind: domain.ErrDuplicateName, Detail: "state with empty name"}
		}
		if _, exists := g.index[name]; exists {
			return &domain.ConfigError{
				Kind:   domain.ErrDuplicateName,
				Detail: fmt.Sprintf("state %q declared twice", name),
			}
		}
		return nil
	}

	for _, rs := range raw {
		if err := claim(rs.Name); err != nil {
			return err
		}
		cond, err := compiler.ParseCondition(rs.Conditions)
		if err != nil {
			return &domain.ConfigError{
				Kind:   domain.ErrInvalidCondition,
				Detail: fmt.Sprintf("state %q: %v", rs.Name, err),
			}
		}
		g.index[rs.Name] = len(g.states)
		g.states = append(g.states, record{name: rs.Name, own: cond})
	}
	g.real = len(g.states)

	// Counter names share the namespace but get their records only after
	// the real states are fully validated.
	for _, rs := range raw {
		if rs.Counter == "" {
			continue
		}
		if err := claim(rs.Counter); err != nil {
			return err
		}
		g.index[rs.Counter] = -1 // reserved; repointed by appendCounters
	}
	return nil
}

// link resolves relation names to arena indices. Counter-states may not
// be the source or target of any relation.
func (g *Graph) link(raw []domain.RawState) error {
	resolve := func(owner, target, relation string) (int, error) {
		idx, ok := g.index[target]
		if !ok {
			return 0, &domain.ConfigError{
				Kind:   domain.ErrUnknownState,
				Detail: fmt.Sprintf("state %q %s unknown state %q", owner, relation, target),
			}
		}
		if idx == -1 {
			return 0, &domain.ConfigError{
				Kind:   domain.ErrInvalidCounterReference,
				Detail: fmt.Sprintf("state %q %s counter-state %q", owner, relation, target),
			}
		}
		return idx, nil
	}

	for i, rs := range raw {
		for _, target := range rs.Extends {
			idx, err := resolve(rs.Name, target, "extends")
			if err != nil {
				return err
			}
			g.states[i].extends = append(g.states[i].extends, idx)
		}
		for _, target := range rs.Overrides {
			idx, err := resolve(rs.Name, target, "overrides")
			if err != nil {
				return err
			}
			g.states[i].overrides = append(g.states[i].overrides, idx)
		}
	}
	return nil
}

// checkRelations verifies acyclicity of extends, overrides and their
// union, then precomputes the transitive closures and rejects any pair
// related by both extends and overrides.
func (g *Graph) checkRelations() error {
	n := g.real
	extends := func(v int) []int { return g.states[v].extends }
	overrides := func(v int) []int { return g.states[v].overrides }
	union := func(v int) []int {
		out := make([]int, 0, len(g.states[v].extends)+len(g.states[v].overrides))
		out = append(out, g.states[v].extends...)
		out = append(out, g.states[v].overrides...)
		return out
	}

	extOrder, cyclic := validator.Order(n, extends)
	if cyclic != nil {
		return g.cycleError("extends", cyclic)
	}
	ovrOrder, cyclic := validator.Order(n, overrides)
	if cyclic != nil {
		return g.cycleError("overrides", cyclic)
	}
	if _, cyclic = validator.Order(n, union); cyclic != nil {
		return g.cycleError("extends/overrides union", cyclic)
	}

	extClosure := validator.Closure(n, extOrder, extends)
	ovrClosure := validator.Closure(n, ovrOrder, overrides)

	for v := 0; v < n; v++ {
		g.states[v].extendsClosure = extClosure[v]
		set := make(map[int]struct{}, len(ovrClosure[v]))
		for _, w := range ovrClosure[v] {
			set[w] = struct{}{}
		}
		g.states[v].overridesClosure = set
	}

	// A pair related by both extends and overrides, in either direction,
	// is a configuration conflict.
	for v := 0; v < n; v++ {
		for _, w := range g.states[v].extendsClosure {
			if _, ok := g.states[v].overridesClosure[w]; ok {
				return g.conflictError(v, w)
			}
			if _, ok := g.states[w].overridesClosure[v]; ok {
				return g.conflictError(w, v)
			}
		}
	}
	return nil
}

func (g *Graph) cycleError(relation string, members []int) error {
	names := make([]string, len(members))
	for i, v := range members {
		names[i] = g.states[v].name
	}
	sort.Strings(names)
	return &domain.ConfigError{
		Kind:   domain.ErrCycleDetected,
		Detail: fmt.Sprintf("%s relation is cyclic among: %s", relation, strings.Join(names, ", ")),
	}
}

func (g *Graph) conflictError(overrider, overridden int) error {
	return &domain.ConfigError{
		Kind: domain.ErrRelationConflict,
		Detail: fmt.Sprintf("states %q and %q are related by both extends and overrides",
			g.states[overrider].name, g.states[overridden].name),
	}
}

// computeEffective memoizes each state's effective condition: its own
// atoms followed by the atoms of every transitively extended state. The
// extends closure makes this a single flat pass per state, immune to
// diamond-shaped extension graphs.
func (g *Graph) computeEffective() {
	for v := 0; v < g.real; v++ {
		eff := append(domain.Condition(nil), g.states[v].own...)
		for _, w := range g.states[v].extendsClosure {
			eff = append(eff, g.states[w].own...)
		}
		g.states[v].effective = eff
	}
}

// appendCounters materializes the synthetic counter-state records. They
// carry no condition and no relations; populate has already reserved
// their names.
func (g *Graph) appendCounters(raw []domain.RawState) {
	for _, rs := range raw {
		if rs.Counter == "" {
			continue
		}
		origin := g.index[rs.Name]
		g.index[rs.Counter] = len(g.states)
		g.states = append(g.states, record{
			name:    rs.Counter,
			counter: true,
			origin:  origin,
		})
	}
}

// Len returns the total number of states, counters included.
func (g *Graph) Len() int { return len(g.states) }

// States returns the read-only introspection view, in declaration order
// with counter-states last.
func (g *Graph) States() []domain.StateInfo {
	infos := make([]domain.StateInfo, 0, len(g.states))
	for _, st := range g.states {
		info := domain.StateInfo{Name: st.name}
		if st.counter {
			info.Counter = true
			info.Origin = g.states[st.origin].name
			infos = append(infos, info)
			continue
		}
		for _, atom := range st.own {
			info.Conditions = append(info.Conditions, atom.String())
		}
		for _, w := range st.extends {
			info.Extends = append(info.Extends, g.states[w].name)
		}
		for _, w := range st.overrides {
			info.Overrides = append(info.Overrides, g.states[w].name)
		}
		infos = append(infos, info)
	}
	return infos
}

// EffectiveCondition returns the memoized effective condition of a state.
func (g *Graph) EffectiveCondition(name string) (domain.Condition, bool) {
	idx, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.states[idx].effective, true
}
