package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidVersion = errors.New("invalid version")

// Release is a game version without a phase, e.g. 4.4.
type Release struct {
	Major int
	Minor int
}

func (r Release) String() string { return fmt.Sprintf("%d.%d", r.Major, r.Minor) }

// AtLeast reports whether r is the same as or newer than major.minor.
func (r Release) AtLeast(major, minor int) bool {
	if r.Major != major {
		return r.Major > major
	}
	return r.Minor >= minor
}

// Version is a banner phase inside a release, e.g. 4.4 phase 1.
type Version struct {
	Major int
	Minor int
	Phase int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Phase) }

func (v Version) Release() Release { return Release{Major: v.Major, Minor: v.Minor} }

// Parse reads "major.minor.phase". A missing phase becomes the latest phase when
// major.minor is the latest release, else phase 1. A missing minor becomes the
// latest minor.
func Parse(s string) (Version, error) {
	nums, err := splitInts(s, 3)
	if err != nil {
		return Version{}, err
	}
	latest := Latest()
	v := Version{Major: nums[0], Minor: latest.Minor, Phase: 1}
	switch len(nums) {
	case 3:
		v.Minor, v.Phase = nums[1], nums[2]
	case 2:
		v.Minor = nums[1]
		if v.Release() == latest.Release() {
			v.Phase = latest.Phase
		}
	case 1:
		if v.Major == latest.Major {
			v.Phase = latest.Phase
		}
	}
	if err := Check(v); err != nil {
		return Version{}, err
	}
	return v, nil
}

// ParseRelease reads "major.minor"; a bare major means major.0.
func ParseRelease(s string) (Release, error) {
	nums, err := splitInts(s, 2)
	if err != nil {
		return Release{}, err
	}
	r := Release{Major: nums[0]}
	if len(nums) == 2 {
		r.Minor = nums[1]
	}
	if _, ok := lineFor(r); !ok {
		return Release{}, fmt.Errorf("%w: no release %s", ErrInvalidVersion, r)
	}
	return r, nil
}

func splitInts(s string, max int) ([]int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	parts := strings.Split(s, ".")
	if len(parts) > max {
		return nil, fmt.Errorf("%w: %q has too many parts", ErrInvalidVersion, s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidVersion, s)
		}
		nums[i] = n
	}
	return nums, nil
}
