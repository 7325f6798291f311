package domain

import (
	"github.com/flashcore/avm2/abcfile"
	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/names"
)

// unit holds the per-translation-unit linker state: lazily-built
// namespace/multiname/class/method views over one decoded abcfile.File,
// cached so a name referenced from multiple traits is only built once
// and so class cross-references within the same unit resolve to the
// same *class.Class pointer.
type unit struct {
	file *abcfile.File
	dom  *Domain

	namespaces     []*names.Namespace
	multinames     []*names.Multiname
	classesByIndex []*class.Class
	methodsByIndex []*class.Method
	bodiesByMethod map[int]*abcfile.MethodBodyInfo

	pool *class.ConstantPool
}

func newUnit(f *abcfile.File, dom *Domain) *unit {
	u := &unit{
		file:           f,
		dom:            dom,
		namespaces:     make([]*names.Namespace, len(f.Namespaces)),
		multinames:     make([]*names.Multiname, len(f.Multinames)),
		classesByIndex: make([]*class.Class, len(f.Instances)),
		methodsByIndex: make([]*class.Method, len(f.Methods)),
		bodiesByMethod: make(map[int]*abcfile.MethodBodyInfo, len(f.MethodBodies)),
	}
	for i := range f.MethodBodies {
		b := &f.MethodBodies[i]
		u.bodiesByMethod[b.MethodIndex] = b
	}
	return u
}

func (u *unit) namespace(i int) *names.Namespace {
	if i <= 0 || i >= len(u.file.Namespaces) {
		return names.AnyNamespace
	}
	if u.namespaces[i] != nil {
		return u.namespaces[i]
	}
	info := u.file.Namespaces[i]
	ns := names.New(namespaceKind(info.Kind), u.file.String(info.NameIndex))
	u.namespaces[i] = ns
	return ns
}

func namespaceKind(k abcfile.NamespaceKind) names.NamespaceKind {
	switch k {
	case abcfile.NSKindPackageNS:
		return names.KindPublic
	case abcfile.NSKindPackageInternal:
		return names.KindPackageInternal
	case abcfile.NSKindProtectedNS:
		return names.KindProtected
	case abcfile.NSKindExplicitNS:
		return names.KindExplicit
	case abcfile.NSKindStaticProtectedNS:
		return names.KindStaticProtected
	case abcfile.NSKindPrivateNS:
		return names.KindPrivate
	default:
		return names.KindPublic
	}
}

func (u *unit) nsSet(i int) []*names.Namespace {
	if i <= 0 || i >= len(u.file.NSSets) {
		return nil
	}
	idxs := u.file.NSSets[i]
	out := make([]*names.Namespace, len(idxs))
	for j, idx := range idxs {
		out[j] = u.namespace(idx)
	}
	return out
}

func (u *unit) multiname(i int) *names.Multiname {
	if i <= 0 || i >= len(u.file.Multinames) {
		return names.NewMultiname("")
	}
	if u.multinames[i] != nil {
		return u.multinames[i]
	}
	info := u.file.Multinames[i]
	var mn *names.Multiname
	switch info.Kind {
	case abcfile.MNKindQName, abcfile.MNKindQNameA:
		mn = names.NewMultiname(u.file.String(info.NameIndex), u.namespace(info.NSIndex))
	case abcfile.MNKindMultiname, abcfile.MNKindMultinameA:
		mn = names.NewMultiname(u.file.String(info.NameIndex), u.nsSet(info.NSSetIndex)...)
	case abcfile.MNKindRTQName, abcfile.MNKindRTQNameA:
		mn = &names.Multiname{Name: u.file.String(info.NameIndex), RuntimeNamespace: true}
	case abcfile.MNKindRTQNameL, abcfile.MNKindRTQNameLA:
		mn = &names.Multiname{RuntimeName: true, RuntimeNamespace: true}
	case abcfile.MNKindMultinameL, abcfile.MNKindMultinameLA:
		mn = &names.Multiname{RuntimeName: true, NSSet: u.nsSet(info.NSSetIndex)}
	case abcfile.MNKindTypeName:
		base := u.multiname(info.QNameIndex)
		params := make([]*names.Multiname, len(info.TypeParams))
		for j, p := range info.TypeParams {
			params[j] = u.multiname(p)
		}
		mn = &names.Multiname{Name: base.Name, NSSet: base.NSSet, TypeParams: params}
	default:
		mn = names.NewMultiname(u.file.String(info.NameIndex))
	}
	u.multinames[i] = mn
	return mn
}

// constantPool builds (once) the shared ConstantPool every method body
// cut from this unit points at, resolving every multiname up front so
// the interpreter can index into it without ever touching abcfile types.
func (u *unit) constantPool() *class.ConstantPool {
	if u.pool != nil {
		return u.pool
	}
	mns := make([]*names.Multiname, len(u.file.Multinames))
	for i := range u.file.Multinames {
		if i == 0 {
			continue
		}
		mns[i] = u.multiname(i)
	}
	u.pool = &class.ConstantPool{
		Ints:       u.file.Ints,
		Uints:      u.file.UInts,
		Doubles:    u.file.Doubles,
		Strings:    u.file.Strings,
		Multinames: mns,
	}
	return u.pool
}

// finalizeMethodPool builds every method in the unit's method array,
// including ones reachable only from a newfunction instruction inside
// some other method's bytecode rather than from any trait, then publishes
// the complete array on the constant pool so newfunction's operand (a
// plain index into this array) resolves without needing its own
// resolution path through traits.
func (u *unit) finalizeMethodPool() {
	for i := range u.file.Methods {
		u.buildMethod(i)
	}
	u.constantPool().Methods = u.methodsByIndex
}

// traitQName resolves a trait/instance name_index (which the ABC format
// stores as a QName-kind multiname index) to the QName it denotes.
func (u *unit) traitQName(nameIndex int) names.QName {
	mn := u.multiname(nameIndex)
	ns := names.New(names.KindPublic, "")
	if len(mn.NSSet) > 0 {
		ns = mn.NSSet[0]
	}
	return names.NewQName(ns, mn.Name)
}

func (u *unit) buildMethod(idx int) *class.Method {
	if idx < 0 || idx >= len(u.file.Methods) {
		return nil
	}
	if u.methodsByIndex[idx] != nil {
		return u.methodsByIndex[idx]
	}
	info := u.file.Methods[idx]
	m := &class.Method{
		Name:            u.file.String(info.NameIndex),
		Kind:            class.MethodBytecode,
		ParamCount:      len(info.ParamTypes),
		NeedsActivation: info.NeedActivation,
		NeedsRest:       info.NeedRest,
		NeedsArguments:  info.NeedArguments,
		SetsDXNS:        info.SetsDXNS,
	}
	u.methodsByIndex[idx] = m // register before recursing into the body
	if body, ok := u.bodiesByMethod[idx]; ok {
		m.Body = &class.Body{
			Code:              body.Code,
			MaxStack:          body.MaxStack,
			MaxLocals:         body.MaxLocals,
			InitialScopeDepth: body.InitScopeDepth,
			MaxScopeDepth:     body.MaxScopeDepth,
			Exceptions:        u.buildExceptions(body.Exceptions),
			Pool:              u.constantPool(),
		}
	}
	return m
}

func (u *unit) buildExceptions(excs []abcfile.ExceptionInfo) []class.ExceptionHandler {
	out := make([]class.ExceptionHandler, len(excs))
	for i, e := range excs {
		var typeMN *names.Multiname
		if e.TypeIndex != 0 {
			typeMN = u.multiname(e.TypeIndex)
		}
		varName := names.NewQName(names.New(names.KindPublic, ""), u.file.String(e.VarNameIndex))
		out[i] = class.ExceptionHandler{From: e.From, To: e.To, Target: e.Target, ExceptionType: typeMN, VarName: varName}
	}
	return out
}

func (u *unit) buildTrait(ti abcfile.TraitInfo) (*class.Trait, error) {
	qn := u.traitQName(ti.NameIndex)
	t := &class.Trait{Name: qn, IsFinal: ti.IsFinal, IsOverride: ti.IsOverride}
	switch ti.Kind {
	case abcfile.TraitSlot:
		t.Kind = class.TraitSlot
		t.SlotID = ti.SlotID
	case abcfile.TraitConst:
		t.Kind = class.TraitConst
		t.SlotID = ti.SlotID
	case abcfile.TraitMethod:
		t.Kind = class.TraitMethod
		t.Method = u.buildMethod(ti.MethodIndex)
	case abcfile.TraitGetter:
		t.Kind = class.TraitGetter
		t.Method = u.buildMethod(ti.MethodIndex)
	case abcfile.TraitSetter:
		t.Kind = class.TraitSetter
		t.Method = u.buildMethod(ti.MethodIndex)
	case abcfile.TraitFunction:
		t.Kind = class.TraitFunction
		t.Method = u.buildMethod(ti.MethodIndex)
	case abcfile.TraitClass:
		t.Kind = class.TraitClass
		t.SlotID = ti.SlotID
		nested, err := u.buildClass(ti.ClassIndex)
		if err != nil {
			return nil, err
		}
		t.NestedClass = nested
	}
	return t, nil
}

// buildClass links one instance_info/class_info pair into a *class.Class
// and registers it in the owning domain, resolving its superclass
// against the domain (which, thanks to do_abc's reverse registration
// order, may already hold a same-unit class defined by a later script).
func (u *unit) buildClass(classIdx int) (*class.Class, error) {
	if classIdx < 0 || classIdx >= len(u.file.Instances) {
		return nil, nil
	}
	if u.classesByIndex[classIdx] != nil {
		return u.classesByIndex[classIdx], nil
	}
	inst := u.file.Instances[classIdx]
	name := u.traitQName(inst.NameIndex)

	var super *class.Class
	if inst.SuperNameIndex != 0 {
		superQN := u.traitQName(inst.SuperNameIndex)
		super, _ = u.dom.lookupByQName(superQN)
	}

	c := class.NewClass(name, super)
	c.IsSealed = inst.IsSealed
	c.IsFinal = inst.IsFinal
	c.IsInterface = inst.IsInterface
	u.classesByIndex[classIdx] = c
	u.dom.registerClass(c)

	for _, ti := range inst.Traits {
		trait, err := u.buildTrait(ti)
		if err != nil {
			return nil, err
		}
		c.InstanceTraits.Define(trait)
	}
	c.InstanceInit = u.buildMethod(inst.IInitIndex)

	if classIdx < len(u.file.Classes) {
		cinfo := u.file.Classes[classIdx]
		for _, ti := range cinfo.Traits {
			trait, err := u.buildTrait(ti)
			if err != nil {
				return nil, err
			}
			c.StaticTraits.Define(trait)
		}
		c.ClassInit = u.buildMethod(cinfo.CInitIndex)
	}

	if err := class.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *unit) buildScriptTraits(ti []abcfile.TraitInfo) ([]*class.Trait, error) {
	out := make([]*class.Trait, 0, len(ti))
	for _, t := range ti {
		built, err := u.buildTrait(t)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}
