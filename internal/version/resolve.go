package version

import "fmt"

// line is one major version of the game and the linear position of its x.0
// release. Offsets skip the hex-style gaps between, say, 1.6 and 2.0.
type line struct {
	Major  int
	Minors int
	Offset int
}

// lines must stay sorted; a new major version is one appended row.
var lines = []line{
	{Major: 1, Minors: 7, Offset: 0},
	{Major: 2, Minors: 9, Offset: 7},
	{Major: 3, Minors: 9, Offset: 16},
	{Major: 4, Minors: 9, Offset: 25},
	{Major: 5, Minors: 1, Offset: 34},
}

// phaseOffset shifts every banner row from From onward by Rows. It accounts
// for releases that ran more than the usual two phases.
type phaseOffset struct {
	From Release
	Rows int
}

var phaseOffsets = []phaseOffset{
	{From: Release{Major: 1, Minor: 4}, Rows: 2}, // 1.3 ran four phases
}

// phaseLimit overrides the default of two phases for one release.
type phaseLimit struct {
	At     Release
	Phases int
}

const defaultPhases = 2

var phaseLimits = []phaseLimit{
	{At: Release{Major: 1, Minor: 3}, Phases: 4},
}

// Index locates one banner phase in the reward tables.
type Index struct {
	Version Version
	Banner  int // row in the per-banner rate-up tables
	Pool    int // row in the standard pool size tables; 0 is the Beginners' Wish
}

// Latest is the newest banner phase the tables cover.
func Latest() Version {
	last := lines[len(lines)-1]
	r := Release{Major: last.Major, Minor: last.Minors - 1}
	return Version{Major: r.Major, Minor: r.Minor, Phase: phasesIn(r)}
}

// MaxBanner is the largest banner row Resolve can return.
func MaxBanner() int { return bannerRow(Latest()) }

// MaxPool is the largest standard pool row Resolve can return.
func MaxPool() int { return poolRow(Latest().Release()) }

// Check validates that v names a banner phase that ran.
func Check(v Version) error {
	r := v.Release()
	if _, ok := lineFor(r); !ok {
		return fmt.Errorf("%w: no release %s", ErrInvalidVersion, r)
	}
	if n := phasesIn(r); v.Phase < 1 || v.Phase > n {
		return fmt.Errorf("%w: phase %d of %s (only 1-%d accepted)", ErrInvalidVersion, v.Phase, r, n)
	}
	return nil
}

// Resolve converts a banner phase into table rows. pool, when not nil, picks
// the standard pool from another release; otherwise the banner's own release
// is used. The Beginners' Wish always uses pool row 0.
func Resolve(v Version, pool *Release, novice bool) (Index, error) {
	if err := Check(v); err != nil {
		return Index{}, err
	}
	idx := Index{Version: v, Banner: bannerRow(v)}
	switch {
	case novice:
		idx.Pool = 0
	case pool != nil:
		if _, ok := lineFor(*pool); !ok {
			return Index{}, fmt.Errorf("%w: no standard pool for %s", ErrInvalidVersion, *pool)
		}
		idx.Pool = poolRow(*pool)
	default:
		idx.Pool = poolRow(v.Release())
	}
	return idx, nil
}

func lineFor(r Release) (line, bool) {
	for _, l := range lines {
		if l.Major == r.Major {
			if r.Minor < 0 || r.Minor >= l.Minors {
				return line{}, false
			}
			return l, true
		}
	}
	return line{}, false
}

func phasesIn(r Release) int {
	for _, p := range phaseLimits {
		if p.At == r {
			return p.Phases
		}
	}
	return defaultPhases
}

func linear(r Release) int {
	l, _ := lineFor(r)
	return l.Offset + r.Minor
}

func bannerRow(v Version) int {
	row := linear(v.Release())*defaultPhases + v.Phase - 1
	for _, o := range phaseOffsets {
		if v.Release().AtLeast(o.From.Major, o.From.Minor) {
			row += o.Rows
		}
	}
	return row
}

func poolRow(r Release) int {
	return linear(r) + 1
}
