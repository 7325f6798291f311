package class

import (
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
)

// Validate runs the trait-override verification algorithm against a
// class's own instance traits, ported from validate_class: getter/setter
// pairs of the same name are exempt from the duplicate-trait check; a
// trait marked override must match some trait of the same name and kind
// somewhere up the superclass chain, and that matched trait must not be
// final. System classes (playerglobals bootstrap) skip verification
// entirely, and a class is only ever validated once.
func Validate(c *Class) error {
	if c.IsSystem || c.verified {
		return nil
	}

	seen := make(map[string]*Trait, len(c.InstanceTraits.All()))
	for _, t := range c.InstanceTraits.All() {
		if existing, dup := seen[dupKey(t)]; dup {
			if !isExemptGetterSetterPair(existing, t) {
				return avmerrors.NewVerifyError("duplicate trait %s", t.Name)
			}
		}
		seen[dupKey(t)] = t

		if t.IsOverride {
			super, found := c.Super.findByNameKindUpward(t.Name, t.Kind)
			if !found {
				return avmerrors.NewVerifyError("%s is marked override but does not override a superclass member", t.Name)
			}
			if super.IsFinal {
				return avmerrors.NewVerifyError("cannot override final member %s", t.Name)
			}
			continue
		}

		if isDispatchable(t.Kind) {
			if _, found := c.Super.findByNameKindUpward(t.Name, t.Kind); found {
				return avmerrors.NewVerifyError("%s overrides a superclass member without the override attribute", t.Name)
			}
		}
	}

	c.verified = true
	return nil
}

func isDispatchable(k TraitKind) bool {
	return k == TraitMethod || k == TraitGetter || k == TraitSetter
}

// dupKey distinguishes getter/setter by kind so the two can share a name
// without colliding in the seen-set, while two traits of the same kind
// and name still collide.
func dupKey(t *Trait) string {
	if t.Kind == TraitGetter {
		return t.Name.String() + "#get"
	}
	if t.Kind == TraitSetter {
		return t.Name.String() + "#set"
	}
	return t.Name.String()
}

func isExemptGetterSetterPair(a, b *Trait) bool {
	return (a.Kind == TraitGetter && b.Kind == TraitSetter) ||
		(a.Kind == TraitSetter && b.Kind == TraitGetter)
}

// findByNameKindUpward is nil-receiver safe so Super chains terminating
// at the root class (nil Super) are handled without a separate guard at
// every call site.
func (c *Class) findByNameKindUpward(name names.QName, kind TraitKind) (*Trait, bool) {
	if c == nil {
		return nil, false
	}
	return c.findByNameKind(name, kind)
}
