package rewrite

import "errors"

var (
	// ErrParse reports module source that is not syntactically valid.
	ErrParse = errors.New("parse module")
	// ErrConfig reports a config descriptor that cannot be materialized.
	ErrConfig = errors.New("invalid config descriptor")
	// ErrVerify reports generated output that failed re-parsing.
	ErrVerify = errors.New("verify output")
	// ErrNameConflict reports a module that already binds a name the rewrite
	// must introduce verbatim.
	ErrNameConflict = errors.New("name already bound")
)
