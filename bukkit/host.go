// Package bukkit adapts notchity to Java-edition servers built on Bukkit
// (CraftBukkit, Spigot, Paper) from 1.5 through 1.20.6.
//
// The host is described by a Server, which reports the Bukkit version
// string, and a table of runtime symbols such as item constructors. Native
// entities and items are the host's own values; adapters reach into them
// reflectively using the member names each version family exposes.
//
//	reg := bukkit.NewRegistry()
//	facade := notchity.NewFacade()
//	err := facade.Bind(reg, bukkit.NewHost(srv, map[string]any{
//	    "ItemStack": craft.NewItemStack,
//	}))
package bukkit

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/oriumgames/notchity"
)

// Server is the part of the Bukkit server notchity needs.
type Server interface {
	// BukkitVersion returns e.g. "1.20.6-R0.1-SNAPSHOT".
	BukkitVersion() string
}

// Revisioned is implemented by servers that report their CraftBukkit
// revision (e.g. "v1_8_R3") directly.
type Revisioned interface {
	Revision() string
}

// Host is a notchity.Host backed by a Bukkit server.
type Host struct {
	server  Server
	symbols map[string]any
	logger  *slog.Logger
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger used for detection diagnostics.
func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHost creates a host for srv exporting symbols for reflective resolution.
func NewHost(srv Server, symbols map[string]any, opts ...HostOption) *Host {
	h := &Host{
		server:  srv,
		symbols: symbols,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Version returns the Bukkit version string. When the server reports none,
// the first release of its CraftBukkit revision is used instead.
func (h *Host) Version() string {
	var raw string
	if h.server != nil {
		raw = strings.TrimSpace(h.server.BukkitVersion())
	}

	rev, ok := h.Revision()
	if raw == "" {
		if !ok {
			return ""
		}
		v, known := rev.FirstRelease()
		if !known {
			h.logger.Warn("notchity: unknown craftbukkit revision", "revision", rev.String())
			return ""
		}
		h.logger.Debug("notchity: version taken from revision", "revision", rev.String(), "version", v.String())
		return v.String()
	}

	if ok {
		h.checkRevision(raw, rev)
	}
	return raw
}

// checkRevision logs when the version string and the revision disagree on
// the release line. It never changes the detected version.
func (h *Host) checkRevision(raw string, rev notchity.Revision) {
	v, err := notchity.Parse(raw)
	if err != nil {
		return
	}
	if v.Major() != rev.Major || v.Minor() != rev.Minor {
		h.logger.Warn("notchity: bukkit version and craftbukkit revision disagree",
			"version", raw,
			"revision", rev.String())
	}
}

// Revision returns the server's CraftBukkit revision. It is taken from
// Revisioned if implemented, otherwise from the last element of the server
// type's package path (.../craftbukkit/v1_8_R3).
func (h *Host) Revision() (notchity.Revision, bool) {
	if h.server == nil {
		return notchity.Revision{}, false
	}

	var raw string
	if r, ok := h.server.(Revisioned); ok {
		raw = r.Revision()
	} else {
		t := reflect.TypeOf(h.server)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		raw = lastPathElement(t.PkgPath())
	}

	rev, err := notchity.ParseRevision(raw)
	if err != nil {
		return notchity.Revision{}, false
	}
	return rev, true
}

// lastPathElement returns the part after the final '/' or '.'.
func lastPathElement(path string) string {
	if i := strings.LastIndexAny(path, "/."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Symbol returns the runtime symbol registered under name.
func (h *Host) Symbol(name string) (any, bool) {
	sym, ok := h.symbols[name]
	return sym, ok
}
