// Package domain implements the AVM2 Domain/Script model and the do_abc
// script-loading lifecycle: decoding a translation unit, linking its
// classes against the domain's name-to-class table, and materializing
// script globals eagerly or lazily.
package domain

import (
	"github.com/flashcore/avm2/abcfile"
	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

// Flags controls do_abc behavior.
type Flags uint8

const LazyInitialize Flags = 1 << 0

// MethodRunner executes a script or class initializer's bytecode body
// against a global/static receiver. Domain depends on this interface
// rather than the interpreter package directly, so abcfile/class/domain
// stay free of a dependency on interp (which itself depends on all
// three).
type MethodRunner interface {
	RunInitializer(method *class.Method, receiver values.Object) error
}

// PersistentStore is the out-of-scope collaborator for flash.net-style
// persistence; this module defines the seam but ships no backing
// implementation (see DESIGN.md).
type PersistentStore interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}

// Domain owns a parent chain, a name-to-class table, and the scripts
// loaded into it via do_abc.
type Domain struct {
	Parent   *Domain
	isSystem bool
	decoder  abcfile.Decoder

	byQName map[names.QName]*class.Class
	byName  map[string][]names.QName

	scripts []*Script
}

func newBareDomain(parent *Domain) *Domain {
	return &Domain{
		Parent:  parent,
		decoder: abcfile.NewReferenceDecoder(),
		byQName: make(map[names.QName]*class.Class),
		byName:  make(map[string][]names.QName),
	}
}

// New creates a user-level domain, optionally parented to another
// domain (e.g. the playerglobals system domain).
func New(parent *Domain) *Domain {
	return newBareDomain(parent)
}

// NewSystemDomain creates the root playerglobals domain, the one for
// which IsPlayerglobals reports true. Loading does not consult this flag:
// no loaded class is bound to native tables by it.
func NewSystemDomain() *Domain {
	d := newBareDomain(nil)
	d.isSystem = true
	return d
}

func (d *Domain) IsPlayerglobals() bool { return d.isSystem }

// SetDecoder overrides the ABC decoder (for a host supplying its own
// SWF-aware ABC extraction).
func (d *Domain) SetDecoder(dec abcfile.Decoder) { d.decoder = dec }

func (d *Domain) registerClass(c *class.Class) {
	d.byQName[c.Name] = c
	d.byName[c.Name.Name] = append(d.byName[c.Name.Name], c.Name)
}

// RegisterNative registers a host-constructed class (a playerglobals
// builtin, not loaded from any do_abc translation unit) directly into
// this domain's name table, the way a system domain bootstraps Object,
// Number, the Error hierarchy and the other classes every script expects
// to find already defined before its own do_abc runs.
func (d *Domain) RegisterNative(c *class.Class) {
	d.registerClass(c)
}

// lookupByQName checks only this domain's own table, not its parents;
// used by the linker while resolving superclass references that may
// have just been registered by a later script in the same reverse-order
// pass.
func (d *Domain) lookupByQName(q names.QName) (*class.Class, bool) {
	c, ok := d.byQName[q]
	return c, ok
}

// GetClass resolves a Multiname against this domain, then its parent
// chain, stopping at the first domain that defines a matching class.
func (d *Domain) GetClass(mn *names.Multiname) (*class.Class, bool, error) {
	for dom := d; dom != nil; dom = dom.Parent {
		candidates := dom.byName[mn.Name]
		if len(candidates) == 0 {
			continue
		}
		q, ok, err := mn.Resolve(candidates)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return dom.byQName[q], true, nil
		}
	}
	return nil, false, nil
}
