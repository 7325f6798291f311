package class

import (
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

// Class is the AVM2 class record: its inheritance chain, its own
// instance/static traits, its two initializer methods, and (when it is a
// generic base like Vector.<*>) the memoized table of specializations
// built from it.
type Class struct {
	Name       names.QName
	Super      *Class
	Interfaces []*Class

	IsFinal     bool
	IsSealed    bool // false => dynamic, instances may gain ad-hoc properties
	IsInterface bool

	// IsSystem disables verification entirely, matching the playerglobals
	// bootstrap classes the original source exempts from validate_class
	// because they are constructed directly by the host rather than
	// loaded from untrusted bytecode.
	IsSystem bool

	// ProtectedNamespace is this class's own protected namespace
	// instance; subclasses' "super::foo" references resolve through it,
	// and it is distinct (by identity) from every other class's
	// protected namespace even when both use the same URI string.
	ProtectedNamespace *names.Namespace

	InstanceTraits *Vtable
	StaticTraits   *Vtable

	InstanceInit *Method
	ClassInit    *Method

	// IsGeneric marks a native class, such as Vector, constructed by the
	// host runtime as a parameterized template. ABC-loaded classes never
	// set this: the instance_info record carries no generic bit, so only
	// bootstrap code that builds a class directly (not domain/unit.go's
	// ABC decoding path) may set it.
	IsGeneric bool

	// GenericBase/Params describe a parameterized specialization such as
	// Vector.<int>: GenericBase points back to the unparameterized
	// generic definition (e.g. Vector) and Params holds the applied
	// type argument (nil element means the "any" parameter).
	GenericBase *Class
	Params      []*Class

	// applications memoizes ApplyTypeParameter results keyed by the
	// parameter Class pointer; the "any" specialization (param == nil) is
	// never stored under a nil key but kept in anyApplication instead.
	applications   map[*Class]*Class
	anyApplication *Class

	verified     bool
	classInitRan bool
}

func NewClass(name names.QName, super *Class) *Class {
	return &Class{
		Name:               name,
		Super:              super,
		ProtectedNamespace: names.New(names.KindProtected, name.Name),
		InstanceTraits:     NewVtable(),
		StaticTraits:       NewVtable(),
		applications:       make(map[*Class]*Class),
	}
}

func (c *Class) ClassName() string { return c.Name.String() }

// IsInstanceObject reports whether o is an instance of c or one of c's
// subclasses, walking o's class's superclass chain.
func (c *Class) IsInstanceObject(o values.Object) bool {
	if o == nil {
		return false
	}
	ref := o.Class()
	asClass, ok := ref.(*Class)
	if !ok {
		return false
	}
	for cur := asClass; cur != nil; cur = cur.Super {
		if cur == c {
			return true
		}
	}
	return false
}

// FindInherited looks up name starting at this class and walking up the
// superclass chain, returning the first vtable that defines it and the
// owning class.
func (c *Class) FindInherited(mn *names.Multiname) (*Trait, *Class, error) {
	for cur := c; cur != nil; cur = cur.Super {
		t, err := cur.InstanceTraits.Resolve(mn)
		if err != nil {
			return nil, nil, err
		}
		if t != nil {
			return t, cur, nil
		}
	}
	return nil, nil, nil
}

// FindSlot walks the superclass chain for the trait declared under the
// given ABC slot id, the lookup getslot/setslot need since those opcodes
// address a trait by position rather than by name.
func (c *Class) FindSlot(id int) (*Trait, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if t, ok := cur.InstanceTraits.BySlot(id); ok {
			return t, true
		}
	}
	return nil, false
}

// FindInheritedStatic looks up name among this class's own static traits,
// walking the superclass chain the same way FindInherited does for
// instance traits. This is what a class-side reference like Foo.bar or
// Foo.staticMethod() must resolve against instead of InstanceTraits.
func (c *Class) FindInheritedStatic(mn *names.Multiname) (*Trait, *Class, error) {
	for cur := c; cur != nil; cur = cur.Super {
		t, err := cur.StaticTraits.Resolve(mn)
		if err != nil {
			return nil, nil, err
		}
		if t != nil {
			return t, cur, nil
		}
	}
	return nil, nil, nil
}

// FindStaticSlot is FindSlot's static-trait counterpart, for getslot/setslot
// addressing a class-side slot by ABC slot id.
func (c *Class) FindStaticSlot(id int) (*Trait, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if t, ok := cur.StaticTraits.BySlot(id); ok {
			return t, true
		}
	}
	return nil, false
}

// NeedsClassInit reports whether this class has a static initializer that
// has not yet run. Per AVM2 semantics a class initializer runs at most
// once, lazily, the first time the class is referenced externally (a
// Foo.bar property access, a Foo.method() call, an applytype result or a
// construct) rather than eagerly at definition time.
func (c *Class) NeedsClassInit() bool {
	return c.ClassInit != nil && !c.classInitRan
}

// MarkClassInitRan records that the static initializer has executed, so
// NeedsClassInit never triggers a second run.
func (c *Class) MarkClassInitRan() {
	c.classInitRan = true
}

// findByNameKind walks the superclass chain for an exact (name, kind)
// match, used by Validate to check override legality. Getter and setter
// are treated as distinct kinds here deliberately: a subclass getter may
// coexist with a superclass setter of the same name.
func (c *Class) findByNameKind(name names.QName, kind TraitKind) (*Trait, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if t, ok := cur.InstanceTraits.Lookup(name); ok && t.Kind == kind {
			return t, true
		}
	}
	return nil, false
}
