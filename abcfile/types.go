// Package abcfile implements a reference decoder for ABC (ActionScript
// Byte Code) translation units: the constant pools, method signatures,
// instance/class/script records and method bodies that domain.do_abc
// consumes to populate a Domain. Decoding itself is outside this
// module's core scope; this package exists so do_abc has something
// concrete to call, behind the Decoder interface a host may replace.
package abcfile

// NamespaceKind mirrors the ABC constant-pool namespace_info kind byte.
type NamespaceKind byte

const (
	NSKindNamespace       NamespaceKind = 0x08
	NSKindPackageNS       NamespaceKind = 0x16
	NSKindPackageInternal NamespaceKind = 0x17
	NSKindProtectedNS     NamespaceKind = 0x18
	NSKindExplicitNS      NamespaceKind = 0x19
	NSKindStaticProtectedNS NamespaceKind = 0x1A
	NSKindPrivateNS       NamespaceKind = 0x05
)

type NamespaceInfo struct {
	Kind      NamespaceKind
	NameIndex int
}

// MultinameKind mirrors the ABC constant-pool multiname_info kind byte.
type MultinameKind byte

const (
	MNKindQName       MultinameKind = 0x07
	MNKindQNameA      MultinameKind = 0x0D
	MNKindRTQName     MultinameKind = 0x0F
	MNKindRTQNameA    MultinameKind = 0x10
	MNKindRTQNameL    MultinameKind = 0x11
	MNKindRTQNameLA   MultinameKind = 0x12
	MNKindMultiname   MultinameKind = 0x09
	MNKindMultinameA  MultinameKind = 0x0E
	MNKindMultinameL  MultinameKind = 0x1B
	MNKindMultinameLA MultinameKind = 0x1C
	MNKindTypeName    MultinameKind = 0x1D
)

type MultinameInfo struct {
	Kind        MultinameKind
	NSIndex     int   // QName/RTQName*: namespace constant index
	NameIndex   int   // name string constant index (0 for *-L forms, runtime)
	NSSetIndex  int   // Multiname*/RTQNameL*: namespace-set constant index
	QNameIndex  int   // TypeName: the generic base multiname index (e.g. Vector)
	TypeParams  []int // TypeName: type argument multiname indices
}

const (
	TraitSlot TraitKindByte = iota
	TraitMethod
	TraitGetter
	TraitSetter
	TraitClass
	TraitFunction
	TraitConst
)

type TraitKindByte byte

type TraitInfo struct {
	NameIndex int
	Kind      TraitKindByte
	IsFinal   bool
	IsOverride bool
	Metadata  []int

	// slot/const
	SlotID     int
	TypeIndex  int
	ValueIndex int
	ValueKind  byte

	// method/getter/setter/function
	MethodIndex int

	// class
	ClassIndex int
}

type MethodInfo struct {
	ParamTypes      []int
	ReturnType      int
	NameIndex       int
	NeedArguments   bool
	NeedActivation  bool
	NeedRest        bool
	SetsDXNS        bool
	HasOptional     bool
	HasParamNames   bool
	Optionals       []OptionDetail
	ParamNames      []int
}

type OptionDetail struct {
	ValueIndex int
	ValueKind  byte
}

type InstanceInfo struct {
	NameIndex      int
	SuperNameIndex int
	IsSealed       bool
	IsFinal        bool
	IsInterface    bool
	ProtectedNSIndex int
	Interfaces     []int
	IInitIndex     int
	Traits         []TraitInfo
}

type ClassInfo struct {
	CInitIndex int
	Traits     []TraitInfo
}

type ScriptInfo struct {
	InitIndex int
	Traits    []TraitInfo
}

type ExceptionInfo struct {
	From, To, Target int
	TypeIndex        int
	VarNameIndex     int
}

type MethodBodyInfo struct {
	MethodIndex       int
	MaxStack          int
	MaxLocals         int
	InitScopeDepth    int
	MaxScopeDepth     int
	Code              []byte
	Exceptions        []ExceptionInfo
	Traits            []TraitInfo
}

// File is one decoded translation unit.
type File struct {
	MinorVersion, MajorVersion uint16

	Ints       []int32
	UInts      []uint32
	Doubles    []float64
	Strings    []string
	Namespaces []NamespaceInfo
	NSSets     [][]int
	Multinames []MultinameInfo

	Methods      []MethodInfo
	Metadata     [][2][]int // unused detail, kept only for completeness
	Instances    []InstanceInfo
	Classes      []ClassInfo
	Scripts      []ScriptInfo
	MethodBodies []MethodBodyInfo
}

// String resolves a constant-pool string index (0 is the empty string).
func (f *File) String(i int) string {
	if i <= 0 || i >= len(f.Strings) {
		return ""
	}
	return f.Strings[i]
}
