// Package insight enriches journal entries and drawings with generated
// analysis. Enrichment is best effort: callers get an explicit empty result
// when it is disabled or fails, and persist the entity regardless.
package insight

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.ok
}

// OrElse returns the value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}
