package log

import (
	"os"
	"strings"

	"log/slog"

	"github.com/dpotapov/slogpfx"
)

// Logger wraps an slog.Logger and tracks a stack of prefixes so that callers can
// scope log lines hierarchically (ex. [wallet][swap]).
type Logger struct {
	*slog.Logger

	rawLogLevel string
	prefixes    []string
}

// Default returns a logger at INFO level with no prefix.
func Default() *Logger {
	return NewLogger("info")
}

// NewLogger creates a logger at the given level with no prefix.
func NewLogger(rawLogLevel string) *Logger {
	return NewLoggerWithPrefixes(rawLogLevel, []string{})
}

// NewLoggerWithPrefixes creates a logger with an initial set of prefixes.
func NewLoggerWithPrefixes(rawLogLevel string, prefixes []string) *Logger {
	slogger := newSloggerAtLevel(rawLogLevel)
	return wrapSlogger(slogger, rawLogLevel, prefixes)
}

// ApplyPrefix returns a logger with an additional prefix appended.
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	return wrapSlogger(l.Logger, l.rawLogLevel, append(l.prefixes, prefix))
}

// With returns a logger that always logs the given key value pairs.
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return wrapSlogger(slogger, l.rawLogLevel, l.prefixes)
}

// prefixKey is the magic attribute key that the prefix handler folds into the message.
const prefixKey = "_prefixKey"

func wrapSlogger(slogger *slog.Logger, rawLogLevel string, prefixes []string) *Logger {
	prefix := strings.Join(prefixes, "")
	prefixedSlogger := slogger.With(prefixKey, prefix)

	return &Logger{
		Logger:      prefixedSlogger,
		rawLogLevel: rawLogLevel,
		prefixes:    prefixes,
	}
}

func newSloggerAtLevel(rawLogLevel string) *slog.Logger {
	loggingLevel := ParseLogLevel(rawLogLevel)
	lvl := new(slog.LevelVar)
	lvl.Set(loggingLevel)

	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})

	// slogpfx's default formatter writes a '>' after each prefix. Join prefixes
	// directly instead, skipping empties.
	prefixFormatter := func(prefixes []slog.Value) string {
		p := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			if prefix.Any() == nil || prefix.String() == "" {
				continue
			}
			p = append(p, prefix.String())
		}
		if len(p) == 0 {
			return ""
		}
		return strings.Join(p, "") + " "
	}

	prefixHandler := slogpfx.NewHandler(textHandler, &slogpfx.HandlerOptions{
		PrefixKeys:      []string{prefixKey},
		PrefixFormatter: prefixFormatter,
	})

	return slog.New(prefixHandler)
}
