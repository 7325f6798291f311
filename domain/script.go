package domain

import (
	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/values"
)

// Script is one do_abc-registered script: its own top-level traits
// (usually TraitClass entries introducing the classes it defines) and
// its initializer method, which runs once to materialize its globals.
type Script struct {
	Domain      *Domain
	Traits      []*class.Trait
	Init        *class.Method
	Global      values.Object
	initialized bool
}

// EnsureInitialized runs this script's initializer exactly once. Forced
// eagerly in do_abc's forward pass unless LazyInitialize was set, in
// which case a caller (typically findproperty/getproperty resolving a
// name this script defines) must call this before touching Global.
func (s *Script) EnsureInitialized(runner MethodRunner) error {
	if s.initialized {
		return nil
	}
	s.initialized = true
	if s.Init == nil {
		return nil
	}
	return runner.RunInitializer(s.Init, s.Global)
}

func (s *Script) IsInitialized() bool { return s.initialized }
