package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

// deriveVersion reports the version of the running binary.
func deriveVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	return buildVersion(bi)
}

// buildVersion picks a tagged module version when there is one, else the
// first 12 characters of the vcs revision, marked "-dirty" for builds from a
// modified tree, else "devel".
func buildVersion(bi *debug.BuildInfo) string {
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	vcs := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}
	rev := vcs["vcs.revision"]
	if rev == "" {
		return "devel"
	}
	rev = rev[:min(len(rev), 12)]
	if vcs["vcs.modified"] == "true" {
		rev += "-dirty"
	}
	return rev
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "routegraft: %v\n", err)
		os.Exit(1)
	}
}
