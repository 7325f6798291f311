// Package runtime implements the playerglobals builtin classes every
// domain bootstraps before the first user do_abc runs: Object, the
// boxing classes for primitive method dispatch, and the Error hierarchy
// the interpreter throws numbered AVM errors as.
package runtime

import (
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

var publicNS = names.New(names.KindPublic, "")

func qn(n string) names.QName { return names.NewQName(publicNS, n) }

// NewErrorObject builds a catchable instance of the AS3 Error subclass
// matching e.Kind, with message/name/errorID populated the way a
// try/catch block reads them. The returned object's Class() is the
// matching entry from r.ErrorClasses (falling back to plain Error), so
// catch-type filtering via IsInstanceObject works the same as it would
// for a script-thrown `new TypeError(...)`.
func (r *Registry) NewErrorObject(e *avmerrors.AVMError) values.Object {
	c, ok := r.ErrorClasses[string(e.Kind)]
	if !ok {
		c = r.ErrorClasses["Error"]
	}
	obj := values.NewScriptObject(c, nil, false)
	obj.Set(qn("message"), values.NewString(e.Message))
	obj.Set(qn("name"), values.NewString(string(e.Kind)))
	obj.Set(qn("errorID"), values.NewInt(int32(e.Number)))
	return obj
}
