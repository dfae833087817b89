package usecase

// Scorer computes a normalized similarity in [0,1] between two texts.
// Order and character-level overlap matter; 1 means identical.
// The comparison policy injects it so the algorithm stays swappable.
type Scorer func(a, b string) float64

// SequenceRatio is the default scorer: a Ratcliff/Obershelp ratio over runes.
// It finds the longest matching block, recurses on the pieces to the left and
// right, and returns 2*M/T where M is the total matched length and T the
// combined length of both inputs.
func SequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchingBlocks(ra, rb)
	return 2.0 * float64(matched) / float64(total)
}

func matchingBlocks(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingBlocks(a[:ai], b[:bi]) +
		matchingBlocks(a[ai+size:], b[bi+size:])
}

// longestMatch returns the earliest longest common substring of a and b.
// b's rune positions are indexed once; each position in a is then extended
// against that index, keeping per-offset running lengths.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	positions := make(map[rune][]int, len(b))
	for i, r := range b {
		positions[r] = append(positions[r], i)
	}

	// lengths[j] is the length of the common suffix ending at a[i-1], b[j-1].
	lengths := make(map[int]int)
	for i, r := range a {
		next := make(map[int]int, len(lengths))
		for _, j := range positions[r] {
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		lengths = next
	}
	return bestA, bestB, bestSize
}
