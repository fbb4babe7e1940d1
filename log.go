package refframe

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// Logger is the structured logging interface this package accepts,
// aliasing go-kit's kitlog.Logger so callers can pass any go-kit logger
// (or wrap one with level filtering) without this package importing a
// concrete backend. Grounded on estimate.go's use of kitlog.Logger fields
// throughout the reference codebase's OD routines.
type Logger = kitlog.Logger

// NewLogfmtLogger returns a logfmt-formatted logger writing to os.Stderr
// with caller and timestamp context, matching estimate.go's own
// kitlog.NewLogfmtLogger(os.Stdout) construction (redirected to stderr here
// so a caller can still capture computed results on stdout).
func NewLogfmtLogger() Logger {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	return kitlog.With(base, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)
}

// NopLogger discards all log output, used as the default when a caller
// does not supply one.
func NopLogger() Logger { return kitlog.NewNopLogger() }
