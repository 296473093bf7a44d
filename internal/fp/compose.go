package fp

// Compose returns fns applied right to left: Compose(f, g)(x) == f(g(x)).
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(x T) T {
		for i := len(fns) - 1; i >= 0; i-- {
			x = fns[i](x)
		}
		return x
	}
}

// Pipe threads x through fns left to right.
func Pipe[T any](x T, fns ...func(T) T) T {
	for _, fn := range fns {
		x = fn(x)
	}
	return x
}

// Filter returns a new slice holding the elements that satisfy pred, in order.
// The result is never nil so callers can distinguish it from the input.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// MapSlice applies fn to every element, producing a new slice.
func MapSlice[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
