package track

import (
	"slices"

	"github.com/arloliu/keyframe/format"
)

// Verdict is the outcome of MostVisible.
type Verdict uint8

const (
	// VerdictSecond selects the second track. It is also the result when no keyframe gives evidence.
	VerdictSecond Verdict = iota
	// VerdictFirst selects the first track.
	VerdictFirst
	// VerdictAmbiguous reports conflicting evidence; the caller must decide or keep both tracks.
	VerdictAmbiguous
)

func (v Verdict) String() string {
	switch v {
	case VerdictSecond:
		return "Second"
	case VerdictFirst:
		return "First"
	case VerdictAmbiguous:
		return "Ambiguous"
	default:
		return "Unknown"
	}
}

// Pick returns the track selected by the verdict, or nil when it is ambiguous.
func (v Verdict) Pick(a, b *Track) *Track {
	switch v {
	case VerdictFirst:
		return a
	case VerdictSecond:
		return b
	default:
		return nil
	}
}

// MostVisible decides which of two scalar visibility tracks should survive when
// two animated objects are folded into one.
//
// Every keyframe time of either track is examined from latest to earliest:
//   - a time keyed in both tracks votes for the track with the strictly greater value
//   - a time keyed in only one track with a value below 1 votes for the other track
//
// Votes for both tracks yield VerdictAmbiguous. Without any vote the second track wins.
// A missing track gives no decision: VerdictAmbiguous.
//
// It panics with a *KindMismatchError if either track is not scalar.
func MostVisible(a, b *Track) Verdict {
	if a == nil || b == nil {
		return VerdictAmbiguous
	}

	for _, t := range []*Track{a, b} {
		if t.kind != format.KindScalar {
			panic(&KindMismatchError{Track: t.title, Want: format.KindScalar, Got: t.kind})
		}
	}

	av, bv := firstValues(a), firstValues(b)

	times := make([]int, 0, len(av)+len(bv))
	for time := range av {
		times = append(times, time)
	}
	for time := range bv {
		if _, ok := av[time]; !ok {
			times = append(times, time)
		}
	}
	slices.Sort(times)

	var first, second bool
	for i := len(times) - 1; i >= 0; i-- {
		va, inA := av[times[i]]
		vb, inB := bv[times[i]]

		switch {
		case inA && inB:
			if va > vb {
				first = true
			} else if vb > va {
				second = true
			}
		case inA && va < 1:
			second = true
		case inB && vb < 1:
			first = true
		}

		if first && second {
			return VerdictAmbiguous
		}
	}

	if first {
		return VerdictFirst
	}

	return VerdictSecond
}

// firstValues maps every keyframe time to the value of its first occurrence.
func firstValues(t *Track) map[int]float64 {
	m := make(map[int]float64, len(t.times))
	for i, time := range t.times {
		if _, ok := m[time]; !ok {
			m[time] = t.values[i].scalar
		}
	}

	return m
}
