package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeModule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRewriteCommand(t *testing.T) {
	dir := t.TempDir()
	root := writeModule(t, dir, "root.jsx", "export default App;\n")
	lib := writeModule(t, dir, "lib.js", "export const a = 1;\n")

	t.Run("single file is printed", func(t *testing.T) {
		out, err := execute(t, "rewrite", root)
		require.NoError(t, err)
		require.Contains(t, out, "export default _withViteDevTools(App, { config: {}, plugins: [] });")
		require.True(t, strings.HasPrefix(out, "import { withViteDevTools as _withViteDevTools }"))
	})

	t.Run("config and plugin imports come from flags", func(t *testing.T) {
		out, err := execute(t, "rewrite", "--config", `{"config": {"open": true}, "plugins": "[p]"}`, "--plugin-imports", `import { p } from "p";`, root)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "import { p } from \"p\";\n"))
		require.Contains(t, out, "{ config: { open: true }, plugins: [p] }")
	})

	t.Run("config comes from a settings file", func(t *testing.T) {
		settings := writeModule(t, dir, "routegraft.yaml", "config:\n  open: false\nplugins: [tw]\n")
		out, err := execute(t, "rewrite", "--settings", settings, root)
		require.NoError(t, err)
		require.Contains(t, out, "{ config: { open: false }, plugins: [tw] }")
	})

	t.Run("diff lists only changed files", func(t *testing.T) {
		out, err := execute(t, "rewrite", "--diff", root, lib)
		require.NoError(t, err)
		require.Contains(t, out, "--- "+root)
		require.Contains(t, out, "-export default App;")
		require.NotContains(t, out, lib)
	})

	t.Run("several files need write or diff", func(t *testing.T) {
		_, err := execute(t, "rewrite", root, lib)
		require.Error(t, err)
	})

	t.Run("config flags are exclusive", func(t *testing.T) {
		_, err := execute(t, "rewrite", "--config", "{}", "--config-file", "x.json", root)
		require.Error(t, err)
	})

	t.Run("invalid descriptor fails", func(t *testing.T) {
		_, err := execute(t, "rewrite", "--config", "{", root)
		require.ErrorContains(t, err, "invalid config descriptor")
	})

	t.Run("write rewrites in place", func(t *testing.T) {
		target := writeModule(t, dir, "page.jsx", "export default () => null;\n")
		out, err := execute(t, "rewrite", "--write", target, lib)
		require.NoError(t, err)
		require.Empty(t, out)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		require.Contains(t, string(data), "export default _withViteDevTools(() => null, { config: {}, plugins: [] });")
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out))
}

func TestBuildVersion(t *testing.T) {
	settings := func(kv ...string) []debug.BuildSetting {
		var out []debug.BuildSetting
		for i := 0; i+1 < len(kv); i += 2 {
			out = append(out, debug.BuildSetting{Key: kv[i], Value: kv[i+1]})
		}
		return out
	}
	cases := []struct {
		name string
		bi   debug.BuildInfo
		want string
	}{
		{"tagged module", debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}, Settings: settings("vcs.revision", "abcdef0123456789")}, "v1.2.3"},
		{"revision is shortened", debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: settings("vcs.revision", "abcdef0123456789")}, "abcdef012345"},
		{"short revision is kept", debug.BuildInfo{Settings: settings("vcs.revision", "abc")}, "abc"},
		{"modified tree is marked", debug.BuildInfo{Settings: settings("vcs.revision", "abcdef0123456789", "vcs.modified", "true")}, "abcdef012345-dirty"},
		{"no vcs data", debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "devel"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, buildVersion(&tc.bi))
		})
	}
}
