// Package fp provides the small functional toolkit the ledger is built on:
// optional values, result-or-error values, composition and folds.
package fp

// Maybe holds either a present value or nothing. The zero value is None.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPtr converts a possibly-nil pointer into a Maybe.
func FromPtr[T any](p *T) Maybe[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.ok
}

// Get returns the value and whether it was present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// Map transforms a present value. Absence propagates.
func (m Maybe[T]) Map(fn func(T) T) Maybe[T] {
	return MapMaybe(m, fn)
}

// Bind chains an operation that may itself produce nothing. fn is never called on absence.
func (m Maybe[T]) Bind(fn func(T) Maybe[T]) Maybe[T] {
	return BindMaybe(m, fn)
}

// GetOrElse unwraps the value or substitutes def.
func (m Maybe[T]) GetOrElse(def T) T {
	if !m.ok {
		return def
	}
	return m.value
}

// MapMaybe is Map for functions that change the value type.
func MapMaybe[T, U any](m Maybe[T], fn func(T) U) Maybe[U] {
	if !m.ok {
		return None[U]()
	}
	return Some(fn(m.value))
}

// BindMaybe is Bind for functions that change the value type.
func BindMaybe[T, U any](m Maybe[T], fn func(T) Maybe[U]) Maybe[U] {
	if !m.ok {
		return None[U]()
	}
	return fn(m.value)
}

// Find returns the first element matching pred.
func Find[T any](items []T, pred func(T) bool) Maybe[T] {
	for _, item := range items {
		if pred(item) {
			return Some(item)
		}
	}
	return None[T]()
}
