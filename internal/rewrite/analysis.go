package rewrite

import sitter "github.com/smacker/go-tree-sitter"

// node types classified as ShapeExpression. "function" is the name older
// grammars use for function expressions.
var expressionNodeTypes = map[string]bool{
	"function":            true,
	"function_expression": true,
	"generator_function":  true,
	"arrow_function":      true,
	"call_expression":     true,
}

var declarationNodeTypes = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
}

// classify decides the shape of a located export from the syntax at the
// export site alone. Call arguments are not inspected and identifiers are
// never resolved to their declarations.
func classify(site *exportSite) Shape {
	if site == nil || site.Value == nil {
		return ShapeUnsupported
	}
	switch site.Kind {
	case siteKindDeclaration:
		if declarationNodeTypes[site.Value.Type()] {
			return ShapeFunctionDeclaration
		}
		return ShapeUnsupported
	case siteKindSpecifier:
		if site.Value.Type() == "identifier" {
			return ShapeIdentifier
		}
		return ShapeUnsupported
	}
	v := unwrapParens(site.Value)
	switch {
	case expressionNodeTypes[v.Type()]:
		return ShapeExpression
	case v.Type() == "identifier":
		return ShapeIdentifier
	}
	return ShapeUnsupported
}

// unwrapParens strips redundant parentheses around an expression.
func unwrapParens(n *sitter.Node) *sitter.Node {
	for n.Type() == "parenthesized_expression" && n.NamedChildCount() == 1 {
		n = n.NamedChild(0)
	}
	return n
}
