// Package names implements AVM2 name resolution: namespaces, qualified
// names and multinames.
package names

import "sync/atomic"

// NamespaceKind discriminates how two namespaces with the same URI are
// allowed to compare equal.
type NamespaceKind uint8

const (
	KindPublic NamespaceKind = iota
	KindPrivate
	KindProtected
	KindPackageInternal
	KindExplicit
	KindStaticProtected
	KindAny
)

var namespaceKindNames = map[NamespaceKind]string{
	KindPublic:          "public",
	KindPrivate:         "private",
	KindProtected:       "protected",
	KindPackageInternal:  "packageInternal",
	KindExplicit:        "explicit",
	KindStaticProtected: "staticProtected",
	KindAny:             "any",
}

func (k NamespaceKind) String() string {
	if s, ok := namespaceKindNames[k]; ok {
		return s
	}
	return "unknown"
}

var namespaceIDs atomic.Uint64

// Namespace is one namespace value. Private, protected, static-protected
// and explicit namespaces are distinguished by identity (id), never by
// URI: two "private" namespaces with the same URI string are different
// namespaces. Public and package-internal namespaces compare by URI.
type Namespace struct {
	Kind       NamespaceKind
	URI        string
	APIVersion string
	id         uint64
}

// New creates a namespace of the given kind, stamped with a fresh
// identity. Call this for every distinct private/protected namespace a
// class introduces; do not share one Namespace value across classes.
func New(kind NamespaceKind, uri string) *Namespace {
	return &Namespace{Kind: kind, URI: uri, id: namespaceIDs.Add(1)}
}

// NewAPIVersioned creates a namespace carrying an API-version token, used
// by versioned playerglobals namespaces (e.g. flash.geom AS3 0.1 vs 0.2).
func NewAPIVersioned(kind NamespaceKind, uri, apiVersion string) *Namespace {
	ns := New(kind, uri)
	ns.APIVersion = apiVersion
	return ns
}

// AnyNamespace is the wildcard namespace used in a Multiname's namespace
// set to mean "match any namespace".
var AnyNamespace = &Namespace{Kind: KindAny}

// Equals reports whether two namespaces denote the same namespace value.
func (n *Namespace) Equals(other *Namespace) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n == other {
		return true
	}
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case KindPrivate, KindProtected, KindStaticProtected, KindExplicit:
		return n.id == other.id
	default:
		return n.URI == other.URI && n.APIVersion == other.APIVersion
	}
}

func (n *Namespace) String() string {
	if n.URI == "" {
		return n.Kind.String()
	}
	return n.Kind.String() + "::" + n.URI
}
