package metadata

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var primitiveDescriptors = map[byte]string{
	'Z': "boolean",
	'B': "byte",
	'C': "char",
	'S': "short",
	'I': "int",
	'J': "long",
	'F': "float",
	'D': "double",
	'V': "void",
}

// CanonicalTypeName converts a JVM type spelling to the source spelling used
// in metadata documents and NFC-normalizes it, so that equal types are
// byte-identical:
//
//	[I                    -> int[]
//	[[Ljava.lang.String;  -> java.lang.String[][]
//	Ljava/lang/Object;    -> java.lang.Object
//	java.lang.String      -> java.lang.String
//	C                     -> C
//
// A bare single letter is a class in the default package, not a primitive
// descriptor; primitive letters are decoded only as array elements.
func CanonicalTypeName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return name
	}

	dims := 0
	for dims < len(name) && name[dims] == '[' {
		dims++
	}
	elem := name[dims:]

	switch {
	case dims > 0 && len(elem) == 1 && primitiveDescriptors[elem[0]] != "":
		elem = primitiveDescriptors[elem[0]]
	case len(elem) > 2 && elem[0] == 'L' && elem[len(elem)-1] == ';':
		elem = elem[1 : len(elem)-1]
	case dims > 0:
		// not a descriptor; keep the brackets as written
		return name
	}

	elem = strings.ReplaceAll(elem, "/", ".")
	return elem + strings.Repeat("[]", dims)
}

// CanonicalizeTypeNames returns a copy of doc with every class, parameter and
// interface name passed through CanonicalTypeName. Records that become equal
// are merged. Resource documents are returned unchanged.
func CanonicalizeTypeNames(doc Document) (Document, error) {
	switch d := doc.(type) {
	case ClassConfig:
		classes := make([]ClassUsage, 0, len(d.classes))
		for _, c := range d.classes {
			n := c.Normalize()
			n.Name = CanonicalTypeName(n.Name)
			for i := range n.Methods {
				n.Methods[i].Name = norm.NFC.String(n.Methods[i].Name)
				for j, p := range n.Methods[i].ParameterTypes {
					n.Methods[i].ParameterTypes[j] = CanonicalTypeName(p)
				}
			}
			for i := range n.Fields {
				n.Fields[i].Name = norm.NFC.String(n.Fields[i].Name)
			}
			classes = append(classes, n)
		}
		return newClassConfig(d.Kind(), classes)
	case ProxyConfig:
		proxies := make([]ProxyUsage, len(d.proxies))
		for i, p := range d.proxies {
			names := make([]string, len(p.Interfaces))
			for j, name := range p.Interfaces {
				names[j] = CanonicalTypeName(name)
			}
			proxies[i] = ProxyUsage{Interfaces: names}
		}
		return NewProxyConfig(proxies...), nil
	default:
		return doc, nil
	}
}
