package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameResolver(t *testing.T) {
	t.Run("free name takes the plain underscore form", func(t *testing.T) {
		root, src := parseForTest(t, "export default App;")
		r := newNameResolver(root, src)
		require.Equal(t, "_withViteDevTools", r.unique("withViteDevTools"))
	})

	t.Run("numeric suffix skips taken names", func(t *testing.T) {
		root, src := parseForTest(t, "const _withViteDevTools = 1;\nfunction f() { return _withViteDevTools2; }")
		r := newNameResolver(root, src)
		require.Equal(t, "_withViteDevTools3", r.unique("withViteDevTools"))
	})

	t.Run("synthesized names never repeat", func(t *testing.T) {
		root, src := parseForTest(t, "")
		r := newNameResolver(root, src)
		require.Equal(t, "_links", r.unique("links"))
		require.Equal(t, "_links2", r.unique("links"))
	})

	t.Run("reserved names are skipped", func(t *testing.T) {
		root, src := parseForTest(t, "")
		r := newNameResolver(root, src)
		r.reserve("_default")
		require.Equal(t, "_default2", r.unique("default"))
	})

	t.Run("jsx element names count as references", func(t *testing.T) {
		root, src := parseForTest(t, "const el = <_withViteDevTools />;")
		r := newNameResolver(root, src)
		require.Equal(t, "_withViteDevTools2", r.unique("withViteDevTools"))
	})
}

func TestIdentifiers(t *testing.T) {
	for _, s := range []string{"a", "$", "_x1", "tailwindPlugin", "ünïcode"} {
		require.True(t, isIdentifierReference(s), s)
	}
	for _, s := range []string{"", "1a", "a-b", "a b", "class", "default"} {
		require.False(t, isIdentifierReference(s), s)
	}
	require.Equal(t, "class", propertyKey("class"))
	require.Equal(t, `"my-key"`, propertyKey("my-key"))
	require.Equal(t, `"1"`, propertyKey("1"))
}
