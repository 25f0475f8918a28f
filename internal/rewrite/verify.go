package rewrite

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// verifyOutput re-parses generated code with esbuild and reports the first
// syntax error.
func verifyOutput(code string, d Dialect) error {
	res := api.Transform(code, api.TransformOptions{
		Loader:   d.loader(),
		Format:   api.FormatESModule,
		LogLevel: api.LogLevelSilent,
	})
	if len(res.Errors) == 0 {
		return nil
	}
	msg := res.Errors[0]
	if loc := msg.Location; loc != nil {
		return fmt.Errorf("%w: %d:%d: %s", ErrVerify, loc.Line, loc.Column+1, msg.Text)
	}
	return fmt.Errorf("%w: %s", ErrVerify, msg.Text)
}
