// Package dragonfly adapts notchity to Bedrock servers running Dragonfly in
// the same process.
//
// Dragonfly exposes its item and entity model as Go types, so the adapter
// reaches the host through Dragonfly's registries instead of host symbols.
// The server version is the Bedrock protocol version gophertunnel speaks.
//
//	reg := notchity.NewRegistry()
//	dragonfly.Register(reg)
//	facade := notchity.NewFacade()
//	if err := facade.Bind(reg, dragonfly.NewHost()); err != nil {
//	    panic(err)
//	}
package dragonfly

import (
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// Host is a notchity.Host for an in-process Dragonfly server.
type Host struct {
	version string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithVersion overrides the reported Bedrock version.
func WithVersion(raw string) HostOption {
	return func(h *Host) {
		h.version = raw
	}
}

// NewHost creates a host reporting protocol.CurrentVersion.
func NewHost(opts ...HostOption) *Host {
	h := &Host{version: protocol.CurrentVersion}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Version returns the Bedrock version, e.g. "1.21.50".
func (h *Host) Version() string {
	return h.version
}

// Symbol always reports false: Dragonfly types are reached through its
// registries.
func (h *Host) Symbol(string) (any, bool) {
	return nil, false
}
