package raw

// SetCap overwrites the recorded capacity without touching the block.
func SetCap[T any](b *Buffer[T], cap int) {
	b.cap = cap
}

func Doubled[T any](b *Buffer[T]) int {
	return b.doubled()
}
