package reduce

// SequentialSum returns the sum of seq computed left to right on the calling
// goroutine. Integer overflow wraps.
func SequentialSum(seq []int) int {
	sum := 0
	for _, v := range seq {
		sum += v
	}
	return sum
}

// SequentialSearch reports whether key occurs in seq, returning at the first
// match.
func SequentialSearch(seq []int, key int) bool {
	for _, v := range seq {
		if v == key {
			return true
		}
	}
	return false
}
