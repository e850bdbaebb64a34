package producer

import (
	"cmp"
	"slices"
)

type sliceMachine[T any] struct {
	slice []T
}

func (s sliceMachine[T]) Step(pc int) (Transition[T], error) {
	if pc >= len(s.slice) {
		return End[T](), nil
	}
	return Suspend(pc+1, s.slice[pc]), nil
}

// FromSlice returns a producer yielding the elements of slice in order.
func FromSlice[T any](slice []T) *Producer[T] {
	return New[T](sliceMachine[T]{slice: slice})
}

// Pair is a key and its value.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// FromMap returns a producer yielding the entries of m in ascending key
// order. The keys are collected when FromMap is called.
func FromMap[K cmp.Ordered, V any](m map[K]V) *Producer[Pair[K, V]] {
	items := make([]Pair[K, V], 0, len(m))
	for key, value := range m {
		items = append(items, Pair[K, V]{Key: key, Value: value})
	}
	slices.SortFunc(items, func(a, b Pair[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return FromSlice(items)
}
