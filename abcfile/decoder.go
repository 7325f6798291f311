package abcfile

import (
	"encoding/binary"
	"math"
)

// Decoder turns a raw ABC byte buffer into a File. do_abc depends only
// on this interface, so a host embedding its own SWF/ABC pipeline can
// supply a decoder without this module's reference implementation in
// the loop.
type Decoder interface {
	Decode(data []byte) (*File, error)
}

// ErrTruncated is returned (wrapped) by the reference decoder whenever
// it runs past the end of the buffer; domain.do_abc turns this into the
// numbered corrupt-ABC error.
type truncatedError struct{}

func (truncatedError) Error() string { return "truncated abc data" }

var ErrTruncated error = truncatedError{}

// ReferenceDecoder decodes the standard ABC binary layout: version
// header, seven constant pools, method signatures, metadata, instance/
// class/script records, and method bodies.
type ReferenceDecoder struct{}

func NewReferenceDecoder() *ReferenceDecoder { return &ReferenceDecoder{} }

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u8() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, ErrTruncated
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) u16() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// u30 reads an unsigned LEB128 varint (ABC uses u30 for most indices and
// counts; this accepts up to 5 bytes of payload like the real format).
func (c *cursor) u30() (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := c.u8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return result, nil
}

func (c *cursor) s32() (int32, error) {
	v, err := c.u30()
	return int32(v), err
}

func (c *cursor) d64() (float64, error) {
	if c.pos+8 > len(c.data) {
		return 0, ErrTruncated
	}
	bits := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return math.Float64frombits(bits), nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, ErrTruncated
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) str() (string, error) {
	n, err := c.u30()
	if err != nil {
		return "", err
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *ReferenceDecoder) Decode(data []byte) (*File, error) {
	c := &cursor{data: data}
	f := &File{}

	var err error
	if f.MinorVersion, err = c.u16(); err != nil {
		return nil, err
	}
	if f.MajorVersion, err = c.u16(); err != nil {
		return nil, err
	}

	if err := decodeConstantPool(c, f); err != nil {
		return nil, err
	}
	if err := decodeMethods(c, f); err != nil {
		return nil, err
	}
	if err := decodeMetadata(c, f); err != nil {
		return nil, err
	}
	if err := decodeInstancesAndClasses(c, f); err != nil {
		return nil, err
	}
	if err := decodeScripts(c, f); err != nil {
		return nil, err
	}
	if err := decodeMethodBodies(c, f); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeConstantPool(c *cursor, f *File) error {
	intCount, err := c.u30()
	if err != nil {
		return err
	}
	f.Ints = make([]int32, maxInt(1, int(intCount)))
	for i := 1; i < int(intCount); i++ {
		if f.Ints[i], err = c.s32(); err != nil {
			return err
		}
	}

	uintCount, err := c.u30()
	if err != nil {
		return err
	}
	f.UInts = make([]uint32, maxInt(1, int(uintCount)))
	for i := 1; i < int(uintCount); i++ {
		v, err := c.u30()
		if err != nil {
			return err
		}
		f.UInts[i] = v
	}

	doubleCount, err := c.u30()
	if err != nil {
		return err
	}
	f.Doubles = make([]float64, maxInt(1, int(doubleCount)))
	for i := 1; i < int(doubleCount); i++ {
		if f.Doubles[i], err = c.d64(); err != nil {
			return err
		}
	}

	strCount, err := c.u30()
	if err != nil {
		return err
	}
	f.Strings = make([]string, maxInt(1, int(strCount)))
	for i := 1; i < int(strCount); i++ {
		if f.Strings[i], err = c.str(); err != nil {
			return err
		}
	}

	nsCount, err := c.u30()
	if err != nil {
		return err
	}
	f.Namespaces = make([]NamespaceInfo, maxInt(1, int(nsCount)))
	for i := 1; i < int(nsCount); i++ {
		kind, err := c.u8()
		if err != nil {
			return err
		}
		nameIdx, err := c.u30()
		if err != nil {
			return err
		}
		f.Namespaces[i] = NamespaceInfo{Kind: NamespaceKind(kind), NameIndex: int(nameIdx)}
	}

	nsSetCount, err := c.u30()
	if err != nil {
		return err
	}
	f.NSSets = make([][]int, maxInt(1, int(nsSetCount)))
	for i := 1; i < int(nsSetCount); i++ {
		n, err := c.u30()
		if err != nil {
			return err
		}
		set := make([]int, n)
		for j := range set {
			v, err := c.u30()
			if err != nil {
				return err
			}
			set[j] = int(v)
		}
		f.NSSets[i] = set
	}

	mnCount, err := c.u30()
	if err != nil {
		return err
	}
	f.Multinames = make([]MultinameInfo, maxInt(1, int(mnCount)))
	for i := 1; i < int(mnCount); i++ {
		mn, err := decodeMultiname(c)
		if err != nil {
			return err
		}
		f.Multinames[i] = mn
	}
	return nil
}

func decodeMultiname(c *cursor) (MultinameInfo, error) {
	kindByte, err := c.u8()
	if err != nil {
		return MultinameInfo{}, err
	}
	kind := MultinameKind(kindByte)
	mn := MultinameInfo{Kind: kind}
	switch kind {
	case MNKindQName, MNKindQNameA:
		ns, err := c.u30()
		if err != nil {
			return mn, err
		}
		name, err := c.u30()
		if err != nil {
			return mn, err
		}
		mn.NSIndex, mn.NameIndex = int(ns), int(name)
	case MNKindRTQName, MNKindRTQNameA:
		name, err := c.u30()
		if err != nil {
			return mn, err
		}
		mn.NameIndex = int(name)
	case MNKindRTQNameL, MNKindRTQNameLA:
		// no data
	case MNKindMultiname, MNKindMultinameA:
		name, err := c.u30()
		if err != nil {
			return mn, err
		}
		nsSet, err := c.u30()
		if err != nil {
			return mn, err
		}
		mn.NameIndex, mn.NSSetIndex = int(name), int(nsSet)
	case MNKindMultinameL, MNKindMultinameLA:
		nsSet, err := c.u30()
		if err != nil {
			return mn, err
		}
		mn.NSSetIndex = int(nsSet)
	case MNKindTypeName:
		qname, err := c.u30()
		if err != nil {
			return mn, err
		}
		count, err := c.u30()
		if err != nil {
			return mn, err
		}
		params := make([]int, count)
		for i := range params {
			v, err := c.u30()
			if err != nil {
				return mn, err
			}
			params[i] = int(v)
		}
		mn.QNameIndex = int(qname)
		mn.TypeParams = params
	default:
		return mn, ErrTruncated
	}
	return mn, nil
}

func decodeMethods(c *cursor, f *File) error {
	count, err := c.u30()
	if err != nil {
		return err
	}
	f.Methods = make([]MethodInfo, count)
	for i := range f.Methods {
		paramCount, err := c.u30()
		if err != nil {
			return err
		}
		returnType, err := c.u30()
		if err != nil {
			return err
		}
		params := make([]int, paramCount)
		for j := range params {
			v, err := c.u30()
			if err != nil {
				return err
			}
			params[j] = int(v)
		}
		nameIdx, err := c.u30()
		if err != nil {
			return err
		}
		flags, err := c.u8()
		if err != nil {
			return err
		}
		m := MethodInfo{ParamTypes: params, ReturnType: int(returnType), NameIndex: int(nameIdx)}
		m.NeedArguments = flags&0x01 != 0
		m.NeedActivation = flags&0x02 != 0
		m.HasOptional = flags&0x08 != 0
		m.NeedRest = flags&0x04 != 0
		m.SetsDXNS = flags&0x40 != 0
		m.HasParamNames = flags&0x80 != 0

		if m.HasOptional {
			optCount, err := c.u30()
			if err != nil {
				return err
			}
			opts := make([]OptionDetail, optCount)
			for j := range opts {
				val, err := c.u30()
				if err != nil {
					return err
				}
				kind, err := c.u8()
				if err != nil {
					return err
				}
				opts[j] = OptionDetail{ValueIndex: int(val), ValueKind: kind}
			}
			m.Optionals = opts
		}
		if m.HasParamNames {
			names := make([]int, paramCount)
			for j := range names {
				v, err := c.u30()
				if err != nil {
					return err
				}
				names[j] = int(v)
			}
			m.ParamNames = names
		}
		f.Methods[i] = m
	}
	return nil
}

func decodeMetadata(c *cursor, f *File) error {
	count, err := c.u30()
	if err != nil {
		return err
	}
	f.Metadata = make([][2][]int, count)
	for i := range f.Metadata {
		if _, err := c.u30(); err != nil { // name index, unused
			return err
		}
		itemCount, err := c.u30()
		if err != nil {
			return err
		}
		keys := make([]int, itemCount)
		values := make([]int, itemCount)
		for j := 0; j < int(itemCount); j++ {
			k, err := c.u30()
			if err != nil {
				return err
			}
			keys[j] = int(k)
		}
		for j := 0; j < int(itemCount); j++ {
			v, err := c.u30()
			if err != nil {
				return err
			}
			values[j] = int(v)
		}
		f.Metadata[i] = [2][]int{keys, values}
	}
	return nil
}

func decodeTraits(c *cursor) ([]TraitInfo, error) {
	count, err := c.u30()
	if err != nil {
		return nil, err
	}
	traits := make([]TraitInfo, count)
	for i := range traits {
		nameIdx, err := c.u30()
		if err != nil {
			return nil, err
		}
		kindAndFlags, err := c.u8()
		if err != nil {
			return nil, err
		}
		kind := TraitKindByte(kindAndFlags & 0x0f)
		attrs := kindAndFlags >> 4
		t := TraitInfo{NameIndex: int(nameIdx), Kind: kind, IsFinal: attrs&0x1 != 0, IsOverride: attrs&0x2 != 0}

		switch kind {
		case TraitSlot, TraitConst:
			slotID, err := c.u30()
			if err != nil {
				return nil, err
			}
			typeIdx, err := c.u30()
			if err != nil {
				return nil, err
			}
			valueIdx, err := c.u30()
			if err != nil {
				return nil, err
			}
			t.SlotID, t.TypeIndex, t.ValueIndex = int(slotID), int(typeIdx), int(valueIdx)
			if valueIdx != 0 {
				vk, err := c.u8()
				if err != nil {
					return nil, err
				}
				t.ValueKind = vk
			}
		case TraitMethod, TraitGetter, TraitSetter, TraitFunction:
			dispID, err := c.u30()
			if err != nil {
				return nil, err
			}
			methodIdx, err := c.u30()
			if err != nil {
				return nil, err
			}
			_ = dispID
			t.MethodIndex = int(methodIdx)
		case TraitClass:
			slotID, err := c.u30()
			if err != nil {
				return nil, err
			}
			classIdx, err := c.u30()
			if err != nil {
				return nil, err
			}
			t.SlotID, t.ClassIndex = int(slotID), int(classIdx)
		}

		if attrs&0x4 != 0 { // has metadata
			mcount, err := c.u30()
			if err != nil {
				return nil, err
			}
			meta := make([]int, mcount)
			for j := range meta {
				v, err := c.u30()
				if err != nil {
					return nil, err
				}
				meta[j] = int(v)
			}
			t.Metadata = meta
		}
		traits[i] = t
	}
	return traits, nil
}

func decodeInstancesAndClasses(c *cursor, f *File) error {
	count, err := c.u30()
	if err != nil {
		return err
	}
	f.Instances = make([]InstanceInfo, count)
	for i := range f.Instances {
		nameIdx, err := c.u30()
		if err != nil {
			return err
		}
		superIdx, err := c.u30()
		if err != nil {
			return err
		}
		flags, err := c.u8()
		if err != nil {
			return err
		}
		inst := InstanceInfo{NameIndex: int(nameIdx), SuperNameIndex: int(superIdx)}
		inst.IsSealed = flags&0x01 == 0
		inst.IsFinal = flags&0x02 != 0
		inst.IsInterface = flags&0x04 != 0
		if flags&0x08 != 0 {
			protectedNS, err := c.u30()
			if err != nil {
				return err
			}
			inst.ProtectedNSIndex = int(protectedNS)
		}
		ifaceCount, err := c.u30()
		if err != nil {
			return err
		}
		ifaces := make([]int, ifaceCount)
		for j := range ifaces {
			v, err := c.u30()
			if err != nil {
				return err
			}
			ifaces[j] = int(v)
		}
		inst.Interfaces = ifaces
		iinit, err := c.u30()
		if err != nil {
			return err
		}
		inst.IInitIndex = int(iinit)
		traits, err := decodeTraits(c)
		if err != nil {
			return err
		}
		inst.Traits = traits
		f.Instances[i] = inst
	}

	f.Classes = make([]ClassInfo, count)
	for i := range f.Classes {
		cinit, err := c.u30()
		if err != nil {
			return err
		}
		traits, err := decodeTraits(c)
		if err != nil {
			return err
		}
		f.Classes[i] = ClassInfo{CInitIndex: int(cinit), Traits: traits}
	}
	return nil
}

func decodeScripts(c *cursor, f *File) error {
	count, err := c.u30()
	if err != nil {
		return err
	}
	f.Scripts = make([]ScriptInfo, count)
	for i := range f.Scripts {
		initIdx, err := c.u30()
		if err != nil {
			return err
		}
		traits, err := decodeTraits(c)
		if err != nil {
			return err
		}
		f.Scripts[i] = ScriptInfo{InitIndex: int(initIdx), Traits: traits}
	}
	return nil
}

func decodeMethodBodies(c *cursor, f *File) error {
	count, err := c.u30()
	if err != nil {
		return err
	}
	f.MethodBodies = make([]MethodBodyInfo, count)
	for i := range f.MethodBodies {
		methodIdx, err := c.u30()
		if err != nil {
			return err
		}
		maxStack, err := c.u30()
		if err != nil {
			return err
		}
		maxLocals, err := c.u30()
		if err != nil {
			return err
		}
		initScope, err := c.u30()
		if err != nil {
			return err
		}
		maxScope, err := c.u30()
		if err != nil {
			return err
		}
		codeLen, err := c.u30()
		if err != nil {
			return err
		}
		code, err := c.bytes(int(codeLen))
		if err != nil {
			return err
		}
		body := MethodBodyInfo{
			MethodIndex:    int(methodIdx),
			MaxStack:       int(maxStack),
			MaxLocals:      int(maxLocals),
			InitScopeDepth: int(initScope),
			MaxScopeDepth:  int(maxScope),
			Code:           append([]byte(nil), code...),
		}

		excCount, err := c.u30()
		if err != nil {
			return err
		}
		excs := make([]ExceptionInfo, excCount)
		for j := range excs {
			from, err := c.u30()
			if err != nil {
				return err
			}
			to, err := c.u30()
			if err != nil {
				return err
			}
			target, err := c.u30()
			if err != nil {
				return err
			}
			typeIdx, err := c.u30()
			if err != nil {
				return err
			}
			varIdx, err := c.u30()
			if err != nil {
				return err
			}
			excs[j] = ExceptionInfo{From: int(from), To: int(to), Target: int(target), TypeIndex: int(typeIdx), VarNameIndex: int(varIdx)}
		}
		body.Exceptions = excs

		traits, err := decodeTraits(c)
		if err != nil {
			return err
		}
		body.Traits = traits
		f.MethodBodies[i] = body
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
