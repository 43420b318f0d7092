package notchity

import "log/slog"

// Options configures a Facade.
type Options struct {
	// Logger receives binding and resolution logs.
	// Default: slog.Default().
	Logger *slog.Logger

	// VersionOverride replaces the version reported by the host.
	// Useful behind proxies that misreport the backend version.
	// Default: "" (use the host's version).
	VersionOverride string
}

// defaultOptions returns sensible defaults.
func defaultOptions() Options {
	return Options{
		Logger: slog.Default(),
	}
}

// Option configures a Facade.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithVersionOverride makes Bind use raw instead of the host's version.
func WithVersionOverride(raw string) Option {
	return func(o *Options) {
		o.VersionOverride = raw
	}
}
