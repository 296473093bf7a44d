package fp

// Integer is the set of types the summation helpers accept.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Fold reduces items left to right starting from init.
func Fold[T, A any](items []T, init A, fn func(A, T) A) A {
	acc := init
	for _, item := range items {
		acc = fn(acc, item)
	}
	return acc
}

// SumRecursive adds values by structural recursion over halves of the slice.
// Splitting in halves keeps the recursion depth logarithmic in len(values),
// so arbitrarily long inputs cannot exhaust the stack. It always equals a linear fold.
func SumRecursive[N Integer](values []N) N {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	mid := len(values) / 2
	return SumRecursive(values[:mid]) + SumRecursive(values[mid:])
}

// Abs returns the absolute value of n.
func Abs[N Integer](n N) N {
	if n < 0 {
		return -n
	}
	return n
}
