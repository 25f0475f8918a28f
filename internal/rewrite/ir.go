package rewrite

// This file houses the intermediate representation shared across the rewrite
// phases (parse -> locate -> classify -> rewrite -> inject -> generate).

// runtime library names the instrumented module is wired against.
const (
	wrapperModule    = "remix-development-tools/client"
	stylesheetModule = "remix-development-tools/client.css?url"
	stylesheetIdent  = "rdtStylesheet"
	defaultWrapper   = "withViteDevTools"
	linksExportName  = "links"
	pluginsField     = "plugins"
)

// Shape classifies the syntax producing an export's value.
type Shape int

const (
	ShapeUnsupported Shape = iota
	ShapeExpression
	ShapeFunctionDeclaration
	ShapeIdentifier
)

func (s Shape) String() string {
	switch s {
	case ShapeExpression:
		return "expression"
	case ShapeFunctionDeclaration:
		return "function-declaration"
	case ShapeIdentifier:
		return "identifier"
	}
	return "unsupported"
}

// namedExport is one row of the named export allow-list.
type namedExport struct {
	Name    string // exported binding name
	Wrapper string // logical wrapper imported from wrapperModule
	Extra   string // identifier passed as the wrapper's second argument
}

// namedExportAllowlist lists the named exports eligible for rewriting.
var namedExportAllowlist = []namedExport{
	{Name: linksExportName, Wrapper: "withLinksDevTools", Extra: stylesheetIdent},
}

// exportTarget names the binding being looked up; "" is the default export.
type exportTarget struct {
	Name string
}

func (t exportTarget) isDefault() bool { return t.Name == "" }

func (t exportTarget) String() string {
	if t.isDefault() {
		return "default"
	}
	return t.Name
}

// siteKind distinguishes the statement forms an export can take.
const (
	siteKindValue       = "value"       // export default <expr>;
	siteKindDeclaration = "declaration" // export [default] function f() {}
	siteKindDeclarator  = "declarator"  // export const name = <expr>;
	siteKindSpecifier   = "specifier"   // export { local as name };
)

// expression node kinds for synthesized code.
const (
	exprKindIdent   = "ident"
	exprKindLiteral = "literal"
	exprKindObject  = "object"
	exprKindArray   = "array"
	exprKindCall    = "call"
	exprKindRaw     = "raw"
)

// exprNode is a synthesized JavaScript expression. Raw nodes carry verbatim
// source text taken from the module being rewritten.
type exprNode struct {
	Kind  string
	Text  string // identifier name, literal source, or raw source
	Props []propNode
	Elems []exprNode // array elements, or call arguments
}

// propNode is a single `key: value` pair of an object expression.
type propNode struct {
	Key   string
	Value exprNode
}

// edit replaces source[Start:End] with Text. Start == End is an insertion.
type edit struct {
	Start uint32
	End   uint32
	Text  string
	seq   int
}

func (e edit) isInsert() bool { return e.Start == e.End }

// wrapperRef pairs a logical wrapper name with its synthesized local name.
type wrapperRef struct {
	Name  string
	Local string
}

// importsModel is the template model for the injected import block.
type importsModel struct {
	Wrappers         []wrapperRef
	WrapperModule    string
	StylesheetIdent  string
	StylesheetModule string
}

// linksModel is the template model for the synthesized links export.
type linksModel struct {
	Name            string
	StylesheetIdent string
}

// specifierModel is the template model for the binding synthesized when an
// export clause exports a wrapped value.
type specifierModel struct {
	Local string
	Value string
}
