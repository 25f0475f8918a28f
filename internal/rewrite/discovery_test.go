package rewrite

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"
)

func parseForTest(t *testing.T, src string) (*sitter.Node, []byte) {
	t.Helper()
	b := []byte(src)
	tree, err := parseModule(b, DialectJSX)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode(), b
}

func TestLocateExport(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		target exportTarget
		kind   string
		value  string
		shape  Shape
	}{
		{"default expression", "export default memo(App);", exportTarget{}, siteKindValue, "memo(App)", ShapeExpression},
		{"default arrow", "export default () => null;", exportTarget{}, siteKindValue, "() => null", ShapeExpression},
		{"default identifier", "const App = 1;\nexport default App;", exportTarget{}, siteKindValue, "App", ShapeIdentifier},
		{"default specifier", "const App = 1;\nexport { App as default };", exportTarget{}, siteKindSpecifier, "App", ShapeIdentifier},
		{"default class", "export default class App {}", exportTarget{}, "", "class App {}", ShapeUnsupported},
		{"links const", "export const a = 1, links = () => [];", exportTarget{Name: "links"}, siteKindDeclarator, "() => []", ShapeExpression},
		{"links var", "export var links = make();", exportTarget{Name: "links"}, siteKindDeclarator, "make()", ShapeExpression},
		{"links function", "export function links() {}", exportTarget{Name: "links"}, siteKindDeclaration, "function links() {}", ShapeFunctionDeclaration},
		{"links specifier", "const links = 1;\nexport { meta, links };", exportTarget{Name: "links"}, siteKindSpecifier, "links", ShapeIdentifier},
		{"links aliased specifier", "const l = 1;\nexport { l as links };", exportTarget{Name: "links"}, siteKindSpecifier, "l", ShapeIdentifier},
		{"links object", "export const links = [];", exportTarget{Name: "links"}, siteKindDeclarator, "[]", ShapeUnsupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, src := parseForTest(t, tc.src)
			site := locateExport(root, src, tc.target)
			require.NotNil(t, site)
			if tc.kind != "" {
				require.Equal(t, tc.kind, site.Kind)
			}
			require.Equal(t, tc.value, site.Value.Content(src))
			require.Equal(t, tc.shape, classify(site))
		})
	}
}

func TestLocateExportNotFound(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		target exportTarget
	}{
		{"no default", "export const a = 1;", exportTarget{}},
		{"default re-export", "export { default } from \"./app\";", exportTarget{}},
		{"links re-export", "export { links } from \"./shared\";", exportTarget{Name: "links"}},
		{"links star re-export", "export * from \"./shared\";", exportTarget{Name: "links"}},
		{"links not exported", "const links = () => [];", exportTarget{Name: "links"}},
		{"nested links", "function f() { const links = 1; return links; }", exportTarget{Name: "links"}},
		{"default is not links", "export default links;", exportTarget{Name: "links"}},
		{"other name", "export const meta = () => [];", exportTarget{Name: "links"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, src := parseForTest(t, tc.src)
			site := locateExport(root, src, tc.target)
			require.Nil(t, site)
			require.Equal(t, ShapeUnsupported, classify(site))
		})
	}
}

func TestTopLevelBindings(t *testing.T) {
	root, src := parseForTest(t, `import React, { useState as useS, useMemo } from "react";
import * as path from "path";
const { a, b: [c, d = 1], ...rest } = obj;
let e = 1, f;
function g() { const inner = 1; return inner; }
class H {}
export const i = 1;
export function j() {}
`)
	names := topLevelBindings(root, src)
	require.ElementsMatch(t, []string{"React", "useS", "useMemo", "path", "a", "c", "d", "rest", "e", "f", "g", "H", "i", "j"}, names)
}

func TestReexports(t *testing.T) {
	links := exportTarget{Name: "links"}
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{"specifier", "export { links } from \"./shared\";", true},
		{"aliased specifier", "export { l as links } from \"./shared\";", true},
		{"namespace", "export * as links from \"./shared\";", true},
		{"star", "export * from \"./shared\";", false},
		{"local export", "const links = 1;\nexport { links };", false},
		{"other name", "export { meta } from \"./shared\";", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, src := parseForTest(t, tc.src)
			require.Equal(t, tc.want, reexports(root, src, links))
		})
	}
}
