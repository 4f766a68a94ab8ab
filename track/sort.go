package track

// Sort restores ascending time order in place. Tangents move with their keyframes.
//
// Algebra operations that depend on ordering call Sort themselves; callers that
// append with AddEntry must call it before FloorIndex, CeilIndex or Evaluate.
func (t *Track) Sort() {
	if len(t.times) > 1 {
		t.quicksort(0, len(t.times)-1)
	}
}

// quicksort partitions around the middle element by index.
func (t *Track) quicksort(low, high int) {
	i, j := low, high
	pivot := t.times[low+(high-low)/2]

	for i <= j {
		for t.times[i] < pivot {
			i++
		}
		for t.times[j] > pivot {
			j--
		}
		if i <= j {
			t.exchange(i, j)
			i++
			j--
		}
	}

	if low < j {
		t.quicksort(low, j)
	}
	if i < high {
		t.quicksort(i, high)
	}
}

func (t *Track) exchange(i, j int) {
	t.times[i], t.times[j] = t.times[j], t.times[i]
	t.values[i], t.values[j] = t.values[j], t.values[i]

	if len(t.inTans) > 0 {
		t.inTans[i], t.inTans[j] = t.inTans[j], t.inTans[i]
		t.outTans[i], t.outTans[j] = t.outTans[j], t.outTans[i]
	}
}
