package fp

// Either holds exactly one of an error value (Left) or a success value (Right).
// The error value is a plain structured value, not a panic.
type Either[E, T any] struct {
	left    E
	right   T
	isRight bool
}

// Right wraps a success value.
func Right[E, T any](v T) Either[E, T] {
	return Either[E, T]{right: v, isRight: true}
}

// Left wraps an error value.
func Left[E, T any](e E) Either[E, T] {
	return Either[E, T]{left: e}
}

// IsRight reports whether the value is a success.
func (e Either[E, T]) IsRight() bool {
	return e.isRight
}

// IsLeft reports whether the value is an error.
func (e Either[E, T]) IsLeft() bool {
	return !e.isRight
}

// Right returns the success value and whether it is present.
func (e Either[E, T]) Right() (T, bool) {
	return e.right, e.isRight
}

// Left returns the error value and whether it is present.
func (e Either[E, T]) Left() (E, bool) {
	return e.left, !e.isRight
}

// Map transforms the success branch and passes errors through unchanged.
func (e Either[E, T]) Map(fn func(T) T) Either[E, T] {
	return MapEither(e, fn)
}

// Bind chains a fallible operation on the success branch.
func (e Either[E, T]) Bind(fn func(T) Either[E, T]) Either[E, T] {
	return BindEither(e, fn)
}

// GetOrElse unwraps success or substitutes def.
func (e Either[E, T]) GetOrElse(def T) T {
	if !e.isRight {
		return def
	}
	return e.right
}

// Fold collapses both branches into a single value.
func (e Either[E, T]) Fold(onLeft func(E) T) T {
	if !e.isRight {
		return onLeft(e.left)
	}
	return e.right
}

// MapEither is Map for functions that change the success type.
func MapEither[E, T, U any](e Either[E, T], fn func(T) U) Either[E, U] {
	if !e.isRight {
		return Left[E, U](e.left)
	}
	return Right[E](fn(e.right))
}

// BindEither is Bind for functions that change the success type.
func BindEither[E, T, U any](e Either[E, T], fn func(T) Either[E, U]) Either[E, U] {
	if !e.isRight {
		return Left[E, U](e.left)
	}
	return fn(e.right)
}

// ToMaybe drops the error branch.
func ToMaybe[E, T any](e Either[E, T]) Maybe[T] {
	if !e.isRight {
		return None[T]()
	}
	return Some(e.right)
}
