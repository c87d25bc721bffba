package slides

// Wrap maps v into [min, max) with Euclidean modulo, so negative values wrap
// from the top of the range. An empty range (max <= min) yields min.
func Wrap(min, max, v int) int {
	span := max - min
	if span <= 0 {
		return min
	}
	return min + ((v-min)%span+span)%span
}
