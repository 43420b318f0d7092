package notchity

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedVersion is returned when a version or revision string
	// does not have the expected shape.
	ErrMalformedVersion = errors.New("notchity: malformed version")

	// ErrUnsupportedVersion is returned when no registered range contains
	// the detected version.
	ErrUnsupportedVersion = errors.New("notchity: unsupported version")

	// ErrDuplicateRegistration is returned when an identical range is
	// registered twice.
	ErrDuplicateRegistration = errors.New("notchity: duplicate registration")

	// ErrCapabilityUnavailable is returned when the bound adapter cannot
	// perform an operation on the running server version.
	ErrCapabilityUnavailable = errors.New("notchity: capability unavailable")

	// ErrNotInitialized is returned by the facade before binding completes.
	ErrNotInitialized = errors.New("notchity: facade not initialized")

	// ErrAlreadyBound is returned when Bind is called on a bound facade.
	ErrAlreadyBound = errors.New("notchity: facade already bound")

	// ErrInvalidRange is returned for empty or inverted ranges.
	ErrInvalidRange = errors.New("notchity: invalid version range")

	// ErrInvalidDescriptor is returned for descriptors without a factory.
	ErrInvalidDescriptor = errors.New("notchity: invalid adapter descriptor")

	// ErrUnknownMaterial is returned for materials missing from the table.
	ErrUnknownMaterial = errors.New("notchity: unknown material")

	// ErrMemberNotFound is returned when reflective resolution finds no
	// matching method, field or symbol.
	ErrMemberNotFound = errors.New("notchity: member not found")
)

// VersionError reports a startup failure tied to a specific version.
type VersionError struct {
	Version Version
	Raw     string
	Err     error
}

func (e *VersionError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Raw)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Version)
}

func (e *VersionError) Unwrap() error {
	return e.Err
}

// CapabilityError reports an operation the bound adapter cannot perform.
// It always matches ErrCapabilityUnavailable.
type CapabilityError struct {
	// Capability names the operation, e.g. "title".
	Capability string

	// Version is the version the adapter is bound to.
	Version Version

	// Cause is the underlying reason, if any (e.g. a missing member).
	Cause error
}

func (e *CapabilityError) Error() string {
	msg := fmt.Sprintf("%v: %s on %s", ErrCapabilityUnavailable, e.Capability, e.Version)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is ErrCapabilityUnavailable.
func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityUnavailable
}

func (e *CapabilityError) Unwrap() error {
	return e.Cause
}

// Unavailable builds a CapabilityError for capability on v.
func Unavailable(capability string, v Version, cause error) error {
	return &CapabilityError{Capability: capability, Version: v, Cause: cause}
}

// RequireSince returns a CapabilityError when v is older than since.
func RequireSince(capability string, v, since Version) error {
	if v.Less(since) {
		return Unavailable(capability, v, fmt.Errorf("requires %s", since.Core()))
	}
	return nil
}
