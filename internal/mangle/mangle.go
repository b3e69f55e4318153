// Package mangle implements the symbol-naming half of §6's object file
// output: `@no_mangle` and `@main` items export their raw name as
// written; every other item's emitted symbol is composed as
// `<module>.<item>` and run through a name mangler so that two modules
// declaring the same item name never collide in one object.
//
// §6 names the composition rule ("<module>.<item>") but leaves the
// mangled encoding itself unspecified (it only says the result "runs
// through a name mangler"). This implementation uses a length-prefixed
// path encoding — each dotted component written as its decimal byte
// length followed by the bytes themselves, the same shape the Itanium
// C++ ABI and Rust's legacy mangling both use to keep component
// boundaries unambiguous without an escape character. See DESIGN.md
// for the open-question note.
package mangle

import (
	"strconv"
	"strings"
)

// NameOf computes the symbol name for an item named itemName, declared
// in module modulePath, given its export attributes. noMangle and main
// both mean "export the raw name" (§6 groups `@no_mangle` and `@main`
// identically); everything else is mangled.
func NameOf(modulePath, itemName string, noMangle, main bool) string {
	if noMangle || main {
		return itemName
	}
	return Encode(append(splitPath(modulePath), itemName))
}

func splitPath(modulePath string) []string {
	if modulePath == "" {
		return nil
	}
	return strings.Split(modulePath, ".")
}

// Encode length-prefixes each path component and concatenates them
// behind a stable "_S" prefix, e.g. ["geo", "area"] -> "_S3geo4area".
func Encode(components []string) string {
	var b strings.Builder
	b.WriteString("_S")
	for _, c := range components {
		b.WriteString(strconv.Itoa(len(c)))
		b.WriteString(c)
	}
	return b.String()
}

// Decode reverses Encode, returning the original path components. It
// exists for diagnostics/debugging (turning a symbol back into a
// human-readable path) and for tests; the compiler itself never needs
// to decode a name it just produced.
func Decode(mangled string) ([]string, bool) {
	const prefix = "_S"
	if !strings.HasPrefix(mangled, prefix) {
		return nil, false
	}
	rest := mangled[len(prefix):]
	var components []string
	for len(rest) > 0 {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			return nil, false
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil || n < 0 || i+n > len(rest) {
			return nil, false
		}
		components = append(components, rest[i:i+n])
		rest = rest[i+n:]
	}
	return components, true
}
