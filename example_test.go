package vec_test

import (
	"context"
	"fmt"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/snapshot"
)

func Example() {
	v := vec.New[int]()
	defer v.Close()

	for i := 10; i < 15; i++ {
		v.Push(i)
	}
	fmt.Println("vec:", v)
	fmt.Printf("len: %d, cap: %d\n", v.Len(), v.Cap())

	last, _ := v.Pop()
	fmt.Println("popped:", last)

	v.Insert(1, 99)
	fmt.Println("after insert:", v)

	fmt.Println("removed:", v.Remove(0))
	fmt.Println("slice:", v.Slice())
	// Output:
	// vec: [10, 11, 12, 13, 14]
	// len: 5, cap: 8
	// popped: 14
	// after insert: [10, 99, 11, 12, 13]
	// removed: 10
	// slice: [99 11 12 13]
}

func ExampleVec_IntoIter() {
	it := vec.Of("a", "b", "c", "d").IntoIter()
	defer it.Close()

	first, _ := it.Next()
	last, _ := it.NextBack()
	fmt.Println(first, last, it.Len())

	for s := range it.All() {
		fmt.Println(s)
	}
	// Output:
	// a d 2
	// b
	// c
}

func ExampleVec_Drain() {
	v := vec.Of(1, 2, 3)
	defer v.Close()

	for x := range v.Drain().Backward() {
		fmt.Println(x)
	}
	fmt.Printf("len: %d, cap: %d\n", v.Len(), v.Cap())
	// Output:
	// 3
	// 2
	// 1
	// len: 0, cap: 4
}

func ExampleEqual() {
	a := vec.Of(1, 2, 3)
	b := vec.Of(1, 2, 3)
	defer a.Close()
	defer b.Close()

	fmt.Println(vec.Equal(a, b))
	b.Set(2, 4)
	fmt.Println(vec.Equal(a, b))
	// Output:
	// true
	// false
}

func Example_snapshot() {
	store, err := snapshot.New[string]()
	if err != nil {
		panic(err)
	}
	defer store.Close()

	ctx := context.Background()

	v := vec.Of("x", "y", "z")
	defer v.Close()

	id, err := store.SaveDrain(ctx, v)
	if err != nil {
		panic(err)
	}
	fmt.Println("after save:", v.Len())

	loaded, err := store.Load(ctx, id)
	if err != nil {
		panic(err)
	}
	defer loaded.Close()
	fmt.Println("loaded:", loaded)
	// Output:
	// after save: 0
	// loaded: [x, y, z]
}
