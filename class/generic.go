package class

import "github.com/flashcore/avm2/names"

// ApplyTypeParameter returns the memoized specialization of a generic
// class (in practice, only Vector.<*>) for the given type argument, or
// creates and caches one on first use. param == nil requests the "any"
// specialization (Vector.<*> applied to itself), stored in a dedicated
// field rather than under a nil map key so "never applied" and "applied
// to the any slot" remain distinguishable.
func (c *Class) ApplyTypeParameter(param *Class) *Class {
	if param == nil {
		if c.anyApplication != nil {
			return c.anyApplication
		}
		c.anyApplication = c.newSpecialization(nil, c)
		return c.anyApplication
	}
	if existing, ok := c.applications[param]; ok {
		return existing
	}
	// A concrete specialization such as Vector.<int> is built from the
	// already-registered object-vector application (Vector.<*>), not from
	// the bare generic template: the object-vector application is the one
	// that actually carries the real Super/InstanceInit/ClassInit/traits a
	// native Vector host class wires up, while the template c itself is
	// just the shared generic definition every specialization hangs off.
	objectVector := c.ApplyTypeParameter(nil)
	spec := c.newSpecialization(param, objectVector)
	c.applications[param] = spec
	return spec
}

// newSpecialization builds the specialization of the generic template c
// for param (nil for the object-vector/"any" application), copying its
// runtime shape from src: src is c itself for the object-vector
// application (there is nothing else to copy from yet) and the
// object-vector application for every concrete specialization after that.
func (c *Class) newSpecialization(param *Class, src *Class) *Class {
	paramName := "*"
	if param != nil {
		paramName = param.Name.Name
	}
	qn := names.NewQName(c.Name.NS, c.Name.Name+".<"+paramName+">")
	spec := NewClass(qn, src.Super)
	spec.GenericBase = c
	spec.Params = []*Class{param}
	spec.IsFinal = src.IsFinal
	spec.IsSealed = src.IsSealed
	spec.IsSystem = src.IsSystem
	spec.InstanceTraits = src.InstanceTraits
	spec.StaticTraits = src.StaticTraits
	spec.InstanceInit = src.InstanceInit
	spec.ClassInit = src.ClassInit
	spec.verified = src.verified
	return spec
}
