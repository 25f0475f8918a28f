// Package runner instruments batches of route modules on disk.
package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/calumari/routegraft/internal/rewrite"
)

// Result is the outcome for one file.
type Result struct {
	Path     string
	Original string
	Output   string
	Changed  bool
}

// Diff renders a unified diff from the original to the output. It is empty
// when the file is unchanged.
func (r Result) Diff() (string, error) {
	if !r.Changed {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Original),
		B:        difflib.SplitLines(r.Output),
		FromFile: r.Path,
		ToFile:   r.Path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", r.Path, err)
	}
	return text, nil
}

// Run transforms files concurrently and returns their results in input
// order. The dialect of each file follows its extension. The first failure
// cancels the remaining work; with s.Write set, files already rewritten stay
// rewritten.
func Run(ctx context.Context, s Settings, files []string) ([]Result, error) {
	desc, err := s.DescriptorJSON()
	if err != nil {
		return nil, err
	}
	log := s.logger()
	jobs := s.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runFile(s, log, desc, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runFile(s Settings, log *zap.Logger, desc, path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	dialect := rewrite.DialectForPath(path)
	tr := rewrite.New(
		rewrite.WithDialect(dialect),
		rewrite.WithLogger(log.With(zap.String("path", path))),
		rewrite.WithVerify(s.Verify),
	)
	out, err := tr.Transform(string(data), desc, s.PluginImports)
	if err != nil {
		return Result{}, err
	}
	res := Result{Path: path, Original: string(data), Output: out, Changed: out != string(data)}
	log.Debug("transformed file", zap.String("path", path), zap.Stringer("dialect", dialect), zap.Bool("changed", res.Changed))
	if s.Write && res.Changed {
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return Result{}, err
		}
		log.Info("rewrote file", zap.String("path", path))
	}
	return res, nil
}
