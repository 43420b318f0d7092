// Package notchity provides a cross-version capability layer for Minecraft
// servers.
//
// Server internals change between releases: classes are renamed, methods
// move, fields disappear and item data switches from NBT tags to data
// components. notchity lets calling code address game concepts through one
// stable API while a version-specific adapter, chosen once at startup, deals
// with the layout of the running server:
//   - Version parses and orders the host's reported version
//   - Registry maps version ranges to adapter factories
//   - Facade binds exactly one adapter and forwards every capability call
//   - Cache memoizes reflective lookups performed by an adapter
//
// # Quick Start
//
// Platform packages register their adapters into a registry:
//
//	reg := notchity.NewRegistry()
//	bukkit.Register(reg)
//
//	facade := notchity.NewFacade(notchity.WithLogger(logger))
//	if err := facade.Bind(reg, bukkit.NewHost(srv, symbols)); err != nil {
//	    return err // unsupported or malformed version, nothing is bound
//	}
//
//	native, err := facade.Material(notchity.RedWool)
//	if errors.Is(err, notchity.ErrCapabilityUnavailable) {
//	    // feature absent on this server version, fall back
//	}
//
// Or with the builder:
//
//	facade := notchity.NewBuilder().
//	    Register(bukkit.Descriptors()...).
//	    Logger(logger).
//	    MustInit(host)
//
// # Errors
//
//	ErrMalformedVersion       host version string cannot be parsed (startup, fatal)
//	ErrUnsupportedVersion     no adapter covers the version (startup, fatal)
//	ErrDuplicateRegistration  the same range registered twice (setup, fatal)
//	ErrCapabilityUnavailable  operation absent on the bound version (per call)
//	ErrNotInitialized         facade used before Bind succeeded
package notchity

// LibraryVersion is the notchity release.
const LibraryVersion = "0.2.0"
