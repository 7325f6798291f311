package domain

import (
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/values"
)

// globalClassRef is the nominal "class" of a script's global object; a
// script's globals are a dynamic property bag, not an instance of any
// user-visible class, so this exists only to satisfy values.Object's
// Class() method.
type globalClassRef struct{}

func (globalClassRef) ClassName() string                 { return "global" }
func (globalClassRef) IsInstanceObject(values.Object) bool { return false }

var theGlobalClass = globalClassRef{}

// DoABC implements the script-loading lifecycle: decode (raising the
// numbered corrupt-ABC error on failure), register every script in the
// translation unit in reverse index order so later scripts' names are
// already visible when earlier scripts link their superclass references,
// then force every script's globals to materialize in forward order
// unless LazyInitialize is set.
func (d *Domain) DoABC(data []byte, flags Flags, runner MethodRunner) ([]*Script, error) {
	f, err := d.decoder.Decode(data)
	if err != nil {
		return nil, avmerrors.NewCorruptABC()
	}

	u := newUnit(f, d)
	scripts := make([]*Script, len(f.Scripts))

	for i := len(f.Scripts) - 1; i >= 0; i-- {
		info := f.Scripts[i]
		traits, err := u.buildScriptTraits(info.Traits)
		if err != nil {
			return nil, err
		}
		s := &Script{
			Domain: d,
			Traits: traits,
			Init:   u.buildMethod(info.InitIndex),
			Global: values.NewScriptObject(theGlobalClass, nil, false),
		}
		scripts[i] = s
	}

	u.finalizeMethodPool()
	d.scripts = append(d.scripts, scripts...)

	if flags&LazyInitialize == 0 {
		for _, s := range scripts {
			if err := s.EnsureInitialized(runner); err != nil {
				return scripts, err
			}
		}
	}

	return scripts, nil
}

// Scripts returns every script registered in this domain across all
// do_abc calls, in registration order.
func (d *Domain) Scripts() []*Script { return d.scripts }
