package shotmap

import (
	"fmt"
	"math"

	"github.com/ansel1/merry/v2"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/reelkit/media-assembly/common"
)

var ErrShotMapping = merry.Sentinel("shot mapping failed")

// boundaryEpsilon absorbs float rounding on authored shot boundaries.
const boundaryEpsilon = 0.001

// ValidateShotlist checks the structural contract on an authored shotlist:
// shots are ordered, contiguous over [0, TotalDuration], free of gaps and
// overlaps, and carry unique shot numbers.
func ValidateShotlist(list common.Shotlist) error {
	if len(list.Shots) == 0 {
		return merry.Wrap(ErrShotMapping, merry.AppendMessage("shotlist is empty"))
	}
	if list.TotalDuration <= 0 {
		return merry.Wrap(ErrShotMapping, merry.AppendMessage("shotlist totalDuration must be positive"))
	}

	numbers := mapset.NewSet[int]()
	for _, s := range list.Shots {
		if s.EndSeconds <= s.StartSeconds {
			return merry.Wrap(ErrShotMapping, merry.AppendMessage(fmt.Sprintf("shot %d has non-positive duration", s.ShotNumber)))
		}
		if !numbers.Add(s.ShotNumber) {
			return merry.Wrap(ErrShotMapping, merry.AppendMessage(fmt.Sprintf("duplicate shot number %d", s.ShotNumber)))
		}
	}

	if math.Abs(list.Shots[0].StartSeconds) > boundaryEpsilon {
		return merry.Wrap(ErrShotMapping, merry.AppendMessage(fmt.Sprintf("first shot starts at %.3f, not 0", list.Shots[0].StartSeconds)))
	}
	for i := 1; i < len(list.Shots); i++ {
		prev := list.Shots[i-1]
		cur := list.Shots[i]
		diff := cur.StartSeconds - prev.EndSeconds
		if diff > boundaryEpsilon {
			return merry.Wrap(ErrShotMapping, merry.AppendMessage(fmt.Sprintf("gap of %.3fs between shot %d and shot %d", diff, prev.ShotNumber, cur.ShotNumber)))
		}
		if diff < -boundaryEpsilon {
			return merry.Wrap(ErrShotMapping, merry.AppendMessage(fmt.Sprintf("shot %d overlaps shot %d by %.3fs", cur.ShotNumber, prev.ShotNumber, -diff)))
		}
	}
	last := list.Shots[len(list.Shots)-1]
	if math.Abs(last.EndSeconds-list.TotalDuration) > boundaryEpsilon {
		return merry.Wrap(ErrShotMapping, merry.AppendMessage(fmt.Sprintf("last shot ends at %.3f, shotlist covers %.3f", last.EndSeconds, list.TotalDuration)))
	}

	return nil
}

// Map assigns every caption segment to exactly one shot. The shot containing
// the segment midpoint wins; when boundary rounding leaves the midpoint in no
// shot, the shot with the largest temporal overlap against the segment takes
// it, ties going to the lowest shot number. A segment overlapping no shot at
// all (narration running past the shotlist) maps to the shot nearest its
// midpoint.
func Map(segments []common.CaptionSegment, list common.Shotlist) ([]common.ShotMapping, error) {
	if err := ValidateShotlist(list); err != nil {
		return nil, err
	}

	mappings := make([]common.ShotMapping, len(segments))
	for i, seg := range segments {
		mappings[i] = common.ShotMapping{
			CaptionSegmentIndex: seg.Index,
			ShotNumber:          resolveShot(seg, list.Shots),
		}
	}
	return mappings, nil
}

func resolveShot(seg common.CaptionSegment, shots []common.Shot) int {
	midpoint := (seg.StartSeconds + seg.EndSeconds) / 2

	for _, s := range shots {
		if s.Contains(midpoint) {
			return s.ShotNumber
		}
	}

	best := shots[0]
	bestOverlap := -1.0
	for _, s := range shots {
		o := overlap(seg, s)
		if o > bestOverlap || (o == bestOverlap && s.ShotNumber < best.ShotNumber) {
			best = s
			bestOverlap = o
		}
	}
	if bestOverlap > 0 {
		return best.ShotNumber
	}

	// no overlap anywhere, the segment sits outside the shotlist entirely
	nearest := shots[0]
	bestDistance := math.Inf(1)
	for _, s := range shots {
		d := distanceToShot(midpoint, s)
		if d < bestDistance || (d == bestDistance && s.ShotNumber < nearest.ShotNumber) {
			nearest = s
			bestDistance = d
		}
	}
	return nearest.ShotNumber
}

func distanceToShot(t float64, s common.Shot) float64 {
	if t < s.StartSeconds {
		return s.StartSeconds - t
	}
	if t > s.EndSeconds {
		return t - s.EndSeconds
	}
	return 0
}

func overlap(seg common.CaptionSegment, s common.Shot) float64 {
	start := math.Max(seg.StartSeconds, s.StartSeconds)
	end := math.Min(seg.EndSeconds, s.EndSeconds)
	if end < start {
		return 0
	}
	return end - start
}
