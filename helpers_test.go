package vec_test

import (
	"testing"

	"github.com/teenjuna/vec"
)

// tracked counts how many times elements are dropped.
type tracked struct {
	id    int
	drops *int
}

func (t tracked) Drop() {
	*t.drops++
}

var _ vec.Dropper = tracked{}

func trackedVec(n int) (*vec.Vec[tracked], *int) {
	drops := new(int)
	v := vec.New[tracked]()
	for i := range n {
		v.Push(tracked{id: i, drops: drops})
	}
	return v, drops
}

func ids(items []tracked) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.id
	}
	return out
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f()
}
