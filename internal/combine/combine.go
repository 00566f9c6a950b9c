package combine

// Product returns the cartesian product of dims. The first dimension varies
// slowest and the last fastest. A zero-length dimension, or no dimensions at
// all, yields an empty result.
func Product[T any](dims ...[]T) [][]T {
	total := Count(dims...)
	if total == 0 {
		return nil
	}

	result := make([][]T, 0, total)
	indices := make([]int, len(dims))

	for {
		tuple := make([]T, len(dims))
		for i, dim := range dims {
			tuple[i] = dim[indices[i]]
		}
		result = append(result, tuple)

		// Odometer increment from the last dimension.
		pos := len(dims) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(dims[pos]) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return result
		}
	}
}

// Count returns the number of tuples Product would produce.
func Count[T any](dims ...[]T) int {
	if len(dims) == 0 {
		return 0
	}

	total := 1
	for _, dim := range dims {
		total *= len(dim)
	}
	return total
}
