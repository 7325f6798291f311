package names

import "errors"

// ErrAmbiguousReference is returned by Resolve when candidates in more
// than one distinct namespace carry the requested local name and none of
// them matches one of the multiname's explicit namespaces (so they matched
// only through the any() wildcard).
var ErrAmbiguousReference = errors.New("ambiguous reference")

// Multiname is an unresolved name reference: a local name (possibly
// supplied only at runtime) plus a set of candidate namespaces to search
// in, plus optional type parameters for parameterized names such as
// Vector.<T>.
type Multiname struct {
	Name             string
	NSSet            []*Namespace
	RuntimeName      bool
	RuntimeNamespace bool
	TypeParams       []*Multiname
}

func NewMultiname(name string, nsSet ...*Namespace) *Multiname {
	return &Multiname{Name: name, NSSet: nsSet}
}

// QNameMultiname builds the single-namespace multiname equivalent to an
// already-resolved QName, used when code needs to look something up by
// exact name.
func QNameMultiname(q QName) *Multiname {
	return &Multiname{Name: q.Name, NSSet: []*Namespace{q.NS}}
}

// IsAny reports whether the namespace set admits every namespace.
func (m *Multiname) IsAny() bool {
	for _, ns := range m.NSSet {
		if ns.Kind == KindAny {
			return true
		}
	}
	return false
}

// MatchesNamespace reports whether ns qualifies under this multiname's
// candidate set: any() is a wildcard, everything else compares with
// Namespace.Equals (so private/protected match only by identity).
func (m *Multiname) MatchesNamespace(ns *Namespace) bool {
	for _, cand := range m.NSSet {
		if cand.Kind == KindAny {
			return true
		}
		if cand.Equals(ns) {
			return true
		}
	}
	return false
}

// Resolve searches candidates (typically a class's own trait-name table)
// for the unique QName this multiname refers to. It implements the
// kind-sensitive matching rules: a multiname whose set names a specific
// namespace only matches that namespace (by Namespace.Equals, so
// protected/private match by identity, not URI); a multiname carrying the
// any() wildcard matches every namespace. When candidates in more than one
// namespace match, the first explicit namespace in m.NSSet order that has
// a match wins; only if none does (every match came through any()) and the
// matches span distinct namespaces is the lookup ambiguous.
func (m *Multiname) Resolve(candidates []QName) (QName, bool, error) {
	var found []QName
	for _, c := range candidates {
		if c.Name != m.Name {
			continue
		}
		if !m.MatchesNamespace(c.NS) {
			continue
		}
		found = append(found, c)
	}
	switch len(found) {
	case 0:
		return QName{}, false, nil
	case 1:
		return found[0], true, nil
	default:
		// More than one distinct namespace matched. m's own namespace set
		// order breaks the tie: the first explicit namespace in m.NSSet
		// that has a matching candidate wins, so an ordered multi-namespace
		// multiname (the common case for an ABC-sourced ns-set) resolves
		// deterministically instead of faulting. Only the any() wildcard,
		// which carries no ordering of its own among the namespaces it
		// admits, leaves a genuine multi-namespace match ambiguous.
		for _, ns := range m.NSSet {
			if ns.Kind == KindAny {
				continue
			}
			for _, f := range found {
				if f.NS.Equals(ns) {
					return f, true, nil
				}
			}
		}
		first := found[0]
		for _, f := range found[1:] {
			if !f.NS.Equals(first.NS) {
				return QName{}, false, ErrAmbiguousReference
			}
		}
		return first, true, nil
	}
}
