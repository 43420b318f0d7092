package notchity

import (
	"fmt"
	"strings"
)

// Revision identifies a CraftBukkit implementation revision such as v1_8_R3.
// Implementation packages are named after it (org.bukkit.craftbukkit.v1_8_R3),
// and one revision usually spans several Minecraft releases.
type Revision struct {
	Major   int
	Minor   int
	Release int
}

// ParseRevision parses "v1_8_R3". The leading 'v' is optional and the
// input is case-insensitive.
func ParseRevision(raw string) (Revision, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, "_")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "r") {
		return Revision{}, malformed(raw, "expected revision of the form v1_8_R3")
	}
	parts[2] = parts[2][1:]

	var nums [3]int
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Revision{}, malformed(raw, err.Error())
		}
		nums[i] = n
	}
	return Revision{Major: nums[0], Minor: nums[1], Release: nums[2]}, nil
}

// Compare orders revisions by major, minor and release.
func (r Revision) Compare(other Revision) int {
	for _, d := range [3]int{r.Major - other.Major, r.Minor - other.Minor, r.Release - other.Release} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// FirstRelease returns the first Minecraft release built on r.
// It reports false for revisions this library does not know about.
func (r Revision) FirstRelease() (Version, bool) {
	v, ok := revisionReleases[r]
	return v, ok
}

// String formats r as v1_8_R3.
func (r Revision) String() string {
	return fmt.Sprintf("v%d_%d_R%d", r.Major, r.Minor, r.Release)
}

// revisionReleases covers v1_5_R1 through v1_20_R4.
var revisionReleases = map[Revision]Version{
	{1, 5, 1}:  NewVersion(1, 5, 0),
	{1, 5, 2}:  NewVersion(1, 5, 1),
	{1, 5, 3}:  NewVersion(1, 5, 2),
	{1, 6, 1}:  NewVersion(1, 6, 1),
	{1, 6, 2}:  NewVersion(1, 6, 2),
	{1, 6, 3}:  NewVersion(1, 6, 4),
	{1, 7, 1}:  NewVersion(1, 7, 2),
	{1, 7, 2}:  NewVersion(1, 7, 5),
	{1, 7, 3}:  NewVersion(1, 7, 8),
	{1, 7, 4}:  NewVersion(1, 7, 10),
	{1, 8, 1}:  NewVersion(1, 8, 0),
	{1, 8, 2}:  NewVersion(1, 8, 3),
	{1, 8, 3}:  NewVersion(1, 8, 4),
	{1, 9, 1}:  NewVersion(1, 9, 0),
	{1, 9, 2}:  NewVersion(1, 9, 4),
	{1, 10, 1}: NewVersion(1, 10, 0),
	{1, 11, 1}: NewVersion(1, 11, 0),
	{1, 12, 1}: NewVersion(1, 12, 0),
	{1, 13, 1}: NewVersion(1, 13, 0),
	{1, 13, 2}: NewVersion(1, 13, 1),
	{1, 14, 1}: NewVersion(1, 14, 0),
	{1, 15, 1}: NewVersion(1, 15, 0),
	{1, 16, 1}: NewVersion(1, 16, 1),
	{1, 16, 2}: NewVersion(1, 16, 2),
	{1, 16, 3}: NewVersion(1, 16, 4),
	{1, 17, 1}: NewVersion(1, 17, 0),
	{1, 18, 1}: NewVersion(1, 18, 0),
	{1, 18, 2}: NewVersion(1, 18, 2),
	{1, 19, 1}: NewVersion(1, 19, 0),
	{1, 19, 2}: NewVersion(1, 19, 3),
	{1, 19, 3}: NewVersion(1, 19, 4),
	{1, 20, 1}: NewVersion(1, 20, 0),
	{1, 20, 2}: NewVersion(1, 20, 2),
	{1, 20, 3}: NewVersion(1, 20, 3),
	{1, 20, 4}: NewVersion(1, 20, 5),
}
