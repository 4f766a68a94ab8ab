package track

import "sort"

// FloorIndex returns the greatest index whose time is <= time.
//
// A query before the first keyframe clamps to 0 rather than reporting "not found".
// Returns -1 only for an empty track. The track must be sorted.
func (t *Track) FloorIndex(time int) int {
	n := len(t.times)
	if n == 0 {
		return -1
	}

	// first index strictly after the query
	after := sort.Search(n, func(i int) bool { return t.times[i] > time })
	if after == 0 {
		return 0
	}

	return after - 1
}

// CeilIndex returns the smallest index whose time is >= time.
//
// A query after the last keyframe clamps to the last index rather than reporting
// "not found". Returns -1 only for an empty track. The track must be sorted.
func (t *Track) CeilIndex(time int) int {
	n := len(t.times)
	if n == 0 {
		return -1
	}

	idx := sort.Search(n, func(i int) bool { return t.times[i] >= time })
	if idx == n {
		return n - 1
	}

	return idx
}
