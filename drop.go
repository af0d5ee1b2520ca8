package vec

// Dropper is implemented by elements that hold resources of their own.
//
// Containers and iterators call Drop exactly once for every element they discard without
// handing it to the caller: on Close, on Clear, and for elements an iterator never yielded.
// Elements returned by Pop, Remove or an iterator belong to the caller and are not dropped.
type Dropper interface {
	Drop()
}

func drop[T any](value T) {
	if d, ok := any(value).(Dropper); ok {
		d.Drop()
	}
}
