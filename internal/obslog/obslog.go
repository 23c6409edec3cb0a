// Package obslog provides the structured logging convention bitpart uses for
// the handful of build/query events worth instrumenting: a caller-supplied
// *slog.Logger, defaulting to a logger that discards everything. The package
// performs no I/O of its own — rotation, file destinations, and verbosity are
// the embedding application's concern, not a library's.
package obslog

import (
	"io"
	"log/slog"
)

// Discard is the default logger used when a caller does not supply one via
// Builder.Logger. Its handler uses slog's default Info level: Debug records
// are dropped by the level check before formatting, while Info and above are
// formatted and then written to io.Discard.
var Discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// OrDefault returns l if non-nil, otherwise Discard.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard
	}
	return l
}
