package class

import "github.com/flashcore/avm2/names"

// Vtable holds one class's own traits (instance-side or static-side),
// indexed for both exact QName lookup and Multiname resolution.
type Vtable struct {
	traits   []*Trait
	byQName  map[names.QName]*Trait
	byName   map[string][]names.QName
	bySlot   map[int]*Trait
}

func NewVtable() *Vtable {
	return &Vtable{
		byQName: make(map[names.QName]*Trait),
		byName:  make(map[string][]names.QName),
		bySlot:  make(map[int]*Trait),
	}
}

// Define adds a trait, keeping the getter/setter-pair exemption in mind:
// callers are expected to have already run Validate before trusting a
// vtable built this way for dispatch.
func (vt *Vtable) Define(t *Trait) {
	vt.traits = append(vt.traits, t)
	vt.byQName[t.Name] = t
	vt.byName[t.Name.Name] = append(vt.byName[t.Name.Name], t.Name)
	if t.SlotID != 0 {
		vt.bySlot[t.SlotID] = t
	}
}

// BySlot finds the trait directly defined on this vtable under the given
// ABC slot id (getslot/setslot index into a class's traits by position
// rather than by name).
func (vt *Vtable) BySlot(id int) (*Trait, bool) {
	t, ok := vt.bySlot[id]
	return t, ok
}

// All returns every trait this vtable directly defines (not inherited).
func (vt *Vtable) All() []*Trait { return vt.traits }

// Lookup finds the trait matching an exact QName, defined directly on
// this vtable (no inheritance walk).
func (vt *Vtable) Lookup(q names.QName) (*Trait, bool) {
	t, ok := vt.byQName[q]
	return t, ok
}

// Resolve finds the trait a Multiname refers to among this vtable's own
// traits, applying the namespace-set resolution rules in names.Multiname.
func (vt *Vtable) Resolve(mn *names.Multiname) (*Trait, error) {
	candidates := vt.byName[mn.Name]
	if len(candidates) == 0 {
		return nil, nil
	}
	q, ok, err := mn.Resolve(candidates)
	if err != nil || !ok {
		return nil, err
	}
	return vt.byQName[q], nil
}
