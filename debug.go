package forcegraph

import (
	"fmt"
	"log"
	"os"
)

// Debug enables extra per-frame diagnostics on stderr.
var Debug bool

// warnf reports a fail-soft condition (missing registration, faulting
// callback). These paths return sentinel values instead of errors so the
// frame loop keeps running; the log line is their only side effect.
func warnf(format string, args ...any) {
	log.Printf("forcegraph: "+format, args...)
}

// debugf prints manager internals when Debug is set. Used by Tick for
// instance lifecycle tracing.
func debugf(format string, args ...any) {
	if !Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[forcegraph] "+format+"\n", args...)
}
