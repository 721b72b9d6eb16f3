// Package report wraps Sentry error reporting. When no DSN is
// configured every call is a no-op, so the core packages can depend on
// it unconditionally.
package report

import (
	"log"
	"os"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Setup initializes Sentry from the SENTRY_DSN environment variable and
// tags the global scope with runtime and deployment information.
func Setup(env, version string) {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          version,
		TracesSampleRate: 0.2,
	}); err != nil {
		log.Printf("sentry.Init: %s", err)
		return
	}
	enabled = true

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("goarch", runtime.GOARCH)
		scope.SetContext("host_info", map[string]interface{}{
			"hostname": hostname(),
		})
	})
}

// Flush drains pending events; call it before process exit.
func Flush() {
	if enabled {
		sentry.Flush(2 * time.Second)
	}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// Error reports err at the given level, defaulting to error severity.
func Error(err error, levels ...sentry.Level) {
	if err == nil || !enabled {
		return
	}

	level := sentry.LevelError
	if len(levels) > 0 {
		level = levels[0]
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		sentry.CaptureException(err)
	})
}

// Options carries optional tags, context and severity for a report.
type Options struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
}

// ErrorWithOptions reports err with additional tags, context and level.
func ErrorWithOptions(err error, opts Options) {
	if err == nil || !enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if opts.ExtraContext != nil {
			scope.SetContext("extra", opts.ExtraContext)
		}
		for k, v := range opts.Tags {
			scope.SetTag(k, v)
		}
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}
		sentry.CaptureException(err)
	})
}
