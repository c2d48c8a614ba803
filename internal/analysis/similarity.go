package analysis

// Jaccard computes the Jaccard index |A∩B| / |A∪B| of two term sets.
// It is defined as 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for term := range a {
		if _, ok := b[term]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// overallSimilarity computes the arithmetic mean of the pairwise Jaccard
// indices over all term sets. With exactly two sets this is a single
// pairwise value. The result is always within [0, 1].
func overallSimilarity(sets []map[string]struct{}) float64 {
	if len(sets) < 2 {
		return 0
	}

	var sum float64
	pairs := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			sum += Jaccard(sets[i], sets[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}
