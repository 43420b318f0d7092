package notchity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityError(t *testing.T) {
	cause := errors.New("no such method")
	err := Unavailable(CapTitle, MustParse("1.7.10"), cause)

	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "notchity: capability unavailable: title on 1.7.10: no such method")

	var cerr *CapabilityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, CapTitle, cerr.Capability)

	assert.EqualError(t, Unavailable(CapHexColor, MustParse("1.8"), nil),
		"notchity: capability unavailable: hex_color on 1.8.0")
}

func TestRequireSince(t *testing.T) {
	since := MustParse("1.16")

	assert.NoError(t, RequireSince(CapHexColor, MustParse("1.16"), since))
	assert.NoError(t, RequireSince(CapHexColor, MustParse("1.20.6"), since))

	err := RequireSince(CapHexColor, MustParse("1.12.2"), since)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	assert.Contains(t, err.Error(), "requires 1.16.0")
}

func TestVersionErrorMessage(t *testing.T) {
	_, err := Parse("x.y")
	assert.Contains(t, err.Error(), `"x.y"`)

	err = &VersionError{Version: MustParse("1.4.7"), Err: ErrUnsupportedVersion}
	assert.EqualError(t, err, "notchity: unsupported version: 1.4.7")
}
