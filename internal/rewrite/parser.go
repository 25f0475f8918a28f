package rewrite

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect selects the grammar a module is parsed with.
type Dialect int

const (
	DialectJSX Dialect = iota // JavaScript, JSX included
	DialectTS
	DialectTSX
)

func (d Dialect) String() string {
	switch d {
	case DialectTS:
		return "ts"
	case DialectTSX:
		return "tsx"
	}
	return "jsx"
}

// DialectForPath picks a dialect from a file extension. Unknown extensions
// fall back to DialectJSX.
func DialectForPath(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return DialectTS
	case ".tsx":
		return DialectTSX
	}
	return DialectJSX
}

func (d Dialect) language() *sitter.Language {
	switch d {
	case DialectTS:
		return typescript.GetLanguage()
	case DialectTSX:
		return tsx.GetLanguage()
	}
	return javascript.GetLanguage()
}

func (d Dialect) loader() api.Loader {
	switch d {
	case DialectTS:
		return api.LoaderTS
	case DialectTSX:
		return api.LoaderTSX
	}
	return api.LoaderJSX
}

// parseModule parses src with a parser owned by this call. The caller must
// Close the returned tree.
func parseModule(src []byte, d Dialect) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(d.language())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		defer tree.Close()
		if bad := firstErrorNode(root); bad != nil {
			p := bad.StartPoint()
			return nil, fmt.Errorf("%w: unexpected %q at %d:%d", ErrParse, snippet(bad.Content(src)), p.Row+1, p.Column+1)
		}
		return nil, ErrParse
	}
	return tree, nil
}

// firstErrorNode finds the earliest ERROR or MISSING node in document order.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstErrorNode(child); bad != nil {
			return bad
		}
	}
	return nil
}

func snippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 24 {
		s = s[:24]
	}
	return s
}

// generate splices edits into src. Edits are applied in offset order;
// insertions at an offset precede a replacement starting there, and edits at
// the same position keep the order they were recorded in.
func generate(src []byte, edits []edit) (string, error) {
	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.isInsert() != b.isInsert() {
			return a.isInsert()
		}
		return a.seq < b.seq
	})

	var out strings.Builder
	out.Grow(len(src) + 256)
	var cursor uint32
	for _, e := range sorted {
		if e.Start < cursor || e.End < e.Start || int(e.End) > len(src) {
			return "", fmt.Errorf("overlapping edit at offset %d", e.Start)
		}
		out.Write(src[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(src[cursor:])
	return out.String(), nil
}
