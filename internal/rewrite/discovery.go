package rewrite

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// exportSite is a located export: the export statement and the node that
// carries the exported value.
type exportSite struct {
	Target    exportTarget
	Kind      string       // siteKind*
	Statement *sitter.Node // export_statement
	Value     *sitter.Node // nil when the binding has no initializer
	Specifier *sitter.Node // set for siteKindSpecifier
}

// locateExport walks the top-level statements of the module for the export
// named by target. Re-exports with a from clause never match.
func locateExport(root *sitter.Node, src []byte, target exportTarget) *exportSite {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" || stmt.ChildByFieldName("source") != nil {
			continue
		}
		if site := matchExport(stmt, src, target); site != nil {
			return site
		}
	}
	return nil
}

// reexports reports whether a top-level `export ... from` statement provides
// the export named by target, either through a specifier or as a namespace
// (`export * as name from`). A bare `export * from` names nothing.
func reexports(root *sitter.Node, src []byte, target exportTarget) bool {
	want := target.String()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" || stmt.ChildByFieldName("source") == nil {
			continue
		}
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			c := stmt.NamedChild(j)
			switch c.Type() {
			case "export_clause":
				for k := 0; k < int(c.NamedChildCount()); k++ {
					spec := c.NamedChild(k)
					if spec.Type() != "export_specifier" {
						continue
					}
					if _, exported := specifierNames(spec); exported != nil && moduleExportName(exported, src) == want {
						return true
					}
				}
			case "namespace_export":
				if n := c.NamedChildCount(); n > 0 && moduleExportName(c.NamedChild(int(n)-1), src) == want {
					return true
				}
			}
		}
	}
	return false
}

func matchExport(stmt *sitter.Node, src []byte, target exportTarget) *exportSite {
	isDefault := hasDefaultKeyword(stmt)
	if target.isDefault() {
		if isDefault {
			if decl := stmt.ChildByFieldName("declaration"); decl != nil {
				return &exportSite{Target: target, Kind: siteKindDeclaration, Statement: stmt, Value: decl}
			}
			if v := stmt.ChildByFieldName("value"); v != nil {
				return &exportSite{Target: target, Kind: siteKindValue, Statement: stmt, Value: v}
			}
			return nil
		}
		return matchSpecifier(stmt, src, target)
	}
	if isDefault {
		return nil
	}
	decl := stmt.ChildByFieldName("declaration")
	if decl == nil {
		return matchSpecifier(stmt, src, target)
	}
	switch decl.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := decl.ChildByFieldName("name"); name != nil && name.Content(src) == target.Name {
			return &exportSite{Target: target, Kind: siteKindDeclaration, Statement: stmt, Value: decl}
		}
	case "lexical_declaration", "variable_declaration":
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			d := decl.NamedChild(j)
			if d.Type() != "variable_declarator" {
				continue
			}
			name := d.ChildByFieldName("name")
			if name == nil || name.Type() != "identifier" || name.Content(src) != target.Name {
				continue
			}
			return &exportSite{Target: target, Kind: siteKindDeclarator, Statement: stmt, Value: d.ChildByFieldName("value")}
		}
	default:
		// class, enum and the like still occupy the name.
		if name := decl.ChildByFieldName("name"); name != nil && name.Content(src) == target.Name {
			return &exportSite{Target: target, Kind: siteKindDeclaration, Statement: stmt, Value: decl}
		}
	}
	return nil
}

// matchSpecifier finds `export { local as name }` inside an export clause.
func matchSpecifier(stmt *sitter.Node, src []byte, target exportTarget) *exportSite {
	want := target.Name
	if target.isDefault() {
		want = "default"
	}
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "export_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			spec := clause.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			local, exported := specifierNames(spec)
			if local == nil || exported == nil || moduleExportName(exported, src) != want {
				continue
			}
			return &exportSite{Target: target, Kind: siteKindSpecifier, Statement: stmt, Value: local, Specifier: spec}
		}
	}
	return nil
}

// specifierNames returns the local and exported name nodes of a specifier.
// Without an `as` clause both are the same node.
func specifierNames(spec *sitter.Node) (local, exported *sitter.Node) {
	local = spec.ChildByFieldName("name")
	exported = local
	for i := 0; i < int(spec.ChildCount())-1; i++ {
		if spec.Child(i).Type() == "as" {
			exported = spec.Child(i + 1)
			break
		}
	}
	return local, exported
}

func moduleExportName(n *sitter.Node, src []byte) string {
	text := n.Content(src)
	if n.Type() == "string" && len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

func hasDefaultKeyword(stmt *sitter.Node) bool {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if stmt.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

// topLevelBindings collects every name bound in the module scope by import,
// variable, function, class and type declarations.
func topLevelBindings(root *sitter.Node, src []byte) []string {
	var names []string
	add := func(n *sitter.Node) {
		if n != nil {
			names = append(names, n.Content(src))
		}
	}
	var declare func(n *sitter.Node)
	declare = func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				if c := n.NamedChild(i); c.Type() == "import_clause" {
					importClauseNames(c, add)
				}
			}
		case "export_statement":
			if decl := n.ChildByFieldName("declaration"); decl != nil {
				declare(decl)
			}
		case "lexical_declaration", "variable_declaration":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				if d := n.NamedChild(i); d.Type() == "variable_declarator" {
					if name := d.ChildByFieldName("name"); name != nil {
						patternNames(name, add)
					}
				}
			}
		case "import_alias":
			if n.NamedChildCount() > 0 {
				add(n.NamedChild(0))
			}
		default:
			add(n.ChildByFieldName("name"))
		}
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		declare(root.NamedChild(i))
	}
	return names
}

func importClauseNames(clause *sitter.Node, add func(*sitter.Node)) {
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		c := clause.NamedChild(i)
		switch c.Type() {
		case "identifier":
			add(c)
		case "namespace_import":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				if id := c.NamedChild(j); id.Type() == "identifier" {
					add(id)
				}
			}
		case "named_imports":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				spec := c.NamedChild(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					add(alias)
				} else {
					add(spec.ChildByFieldName("name"))
				}
			}
		}
	}
}

// patternNames adds the identifiers bound by a destructuring pattern.
func patternNames(n *sitter.Node, add func(*sitter.Node)) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		add(n)
		return
	case "pair_pattern":
		if v := n.ChildByFieldName("value"); v != nil {
			patternNames(v, add)
		}
		return
	case "assignment_pattern", "object_assignment_pattern":
		if l := n.ChildByFieldName("left"); l != nil {
			patternNames(l, add)
		}
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		patternNames(n.NamedChild(i), add)
	}
}
