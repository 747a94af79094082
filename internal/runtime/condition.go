package runtime

import (
	"github.com/verdict-dev/verdict/pkg/domain"
	"github.com/verdict-dev/verdict/pkg/ports"
)

// evalAtom evaluates one condition atom against a metadata snapshot.
//
// Presence checks follow the truthiness rule of the value's kind; a
// negated presence check holds exactly when the identifier is absent or
// falsy. For comparison operators an absent identifier never matches,
// negated or not: absence is not a value to compare against.
func (g *Graph) evalAtom(atom domain.Atom, meta ports.MetadataSource) (bool, error) {
	value, present := meta.Get(atom.Identifier)

	if atom.Op == domain.OpNone {
		truthy := present && value.Truthy()
		if atom.Negated {
			return !truthy, nil
		}
		return truthy, nil
	}

	if !present {
		return false, nil
	}
	return g.cmp.Compare(atom.Op, atom.Negated, value, atom.Literal)
}

// isEnabled reports whether a state's effective condition holds for the
// given metadata, short-circuiting on the first failing atom.
func (g *Graph) isEnabled(idx int, meta ports.MetadataSource) (bool, error) {
	for _, atom := range g.states[idx].effective {
		ok, err := g.evalAtom(atom, meta)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
