package notchity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRevision(t *testing.T) {
	tests := []struct {
		raw  string
		want Revision
	}{
		{"v1_8_R3", Revision{1, 8, 3}},
		{"1_12_R1", Revision{1, 12, 1}},
		{"V1_20_R4", Revision{1, 20, 4}},
		{" v1_16_r3 ", Revision{1, 16, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rev, err := ParseRevision(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rev)
		})
	}
}

func TestParseRevisionRejects(t *testing.T) {
	for _, raw := range []string{"", "v1_8", "v1_8_3", "v1_8_Rx", "v1_8_R3_1", "craftbukkit"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseRevision(raw)
			assert.ErrorIs(t, err, ErrMalformedVersion)
		})
	}
}

func TestRevisionString(t *testing.T) {
	assert.Equal(t, "v1_8_R3", Revision{1, 8, 3}.String())

	rev, err := ParseRevision(Revision{1, 20, 4}.String())
	require.NoError(t, err)
	assert.Equal(t, Revision{1, 20, 4}, rev)
}

func TestRevisionCompare(t *testing.T) {
	assert.Equal(t, -1, Revision{1, 8, 1}.Compare(Revision{1, 8, 3}))
	assert.Equal(t, -1, Revision{1, 8, 3}.Compare(Revision{1, 9, 1}))
	assert.Equal(t, 1, Revision{2, 0, 1}.Compare(Revision{1, 20, 4}))
	assert.Equal(t, 0, Revision{1, 12, 1}.Compare(Revision{1, 12, 1}))
}

func TestRevisionFirstRelease(t *testing.T) {
	v, ok := Revision{1, 8, 3}.FirstRelease()
	require.True(t, ok)
	assert.Equal(t, "1.8.4", v.String())

	v, ok = Revision{1, 20, 4}.FirstRelease()
	require.True(t, ok)
	assert.Equal(t, "1.20.5", v.String())

	_, ok = Revision{1, 4, 1}.FirstRelease()
	assert.False(t, ok)
}

func TestRevisionReleasesAreOrdered(t *testing.T) {
	for rev, v := range revisionReleases {
		for other, w := range revisionReleases {
			if rev.Compare(other) < 0 {
				assert.True(t, v.Less(w), "%s (%s) should precede %s (%s)", rev, v, other, w)
			}
		}
	}
}
