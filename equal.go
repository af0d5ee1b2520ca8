package vec

// Equal reports whether a and b have the same length and pairwise equal elements.
func Equal[T comparable](a, b *Vec[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like [Equal] but compares elements with eq.
func EqualFunc[T, U any](a *Vec[T], b *Vec[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, x := range a.All() {
		if !eq(x, b.At(i)) {
			return false
		}
	}
	return true
}
