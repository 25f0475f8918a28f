package rewrite

import "go.uber.org/zap"

// Options configures a Transformer.
type Options struct {
	// Dialect selects the grammar. Default: DialectJSX.
	Dialect Dialect
	// Logger receives per-export classification at debug level.
	// Default: zap.NewNop().
	Logger *zap.Logger
	// Verify re-parses non-trivial output and fails with ErrVerify when it
	// does not compile.
	Verify bool
}

// Option is a functional option for configuring a Transformer.
type Option func(*Options)

// WithDialect sets the grammar used to parse modules.
func WithDialect(d Dialect) Option {
	return func(o *Options) { o.Dialect = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithVerify enables output verification.
func WithVerify(verify bool) Option {
	return func(o *Options) { o.Verify = verify }
}
