package rewrite

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// identifier-bearing node types whose text is reserved against synthesized
// names, in addition to the declared top-level bindings.
var referenceNodeTypes = map[string]bool{
	"identifier":                            true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"type_identifier":                       true,
	"statement_identifier":                  true,
}

// nameResolver hands out local names that collide with nothing bound or
// referenced in the module, nor with each other.
type nameResolver struct {
	taken    map[string]bool
	declared map[string]bool // top-level bindings only
}

func newNameResolver(root *sitter.Node, src []byte) *nameResolver {
	r := &nameResolver{taken: make(map[string]bool), declared: make(map[string]bool)}
	for _, name := range topLevelBindings(root, src) {
		r.taken[name] = true
		r.declared[name] = true
	}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if referenceNodeTypes[n.Type()] {
			r.taken[n.Content(src)] = true
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	return r
}

// bound reports whether the module scope already declares name.
func (r *nameResolver) bound(name string) bool { return r.declared[name] }

// reserve marks name as unavailable without synthesizing anything.
func (r *nameResolver) reserve(name string) { r.taken[name] = true }

// unique returns "_name", then "_name2", "_name3", ... whichever is free
// first, and reserves it.
func (r *nameResolver) unique(name string) string {
	base := uidBase(name)
	candidate := base
	for i := 2; r.taken[candidate]; i++ {
		candidate = base + strconv.Itoa(i)
	}
	r.taken[candidate] = true
	return candidate
}
