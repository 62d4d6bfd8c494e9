package query

import "iter"

// Grouping is one group produced by GroupBy: the shared key and the members
// in source order.
type Grouping[K comparable, T any] struct {
	Key   K
	Items []T
}

func (g Grouping[K, T]) Len() int { return len(g.Items) }

// Values returns the members as a restartable sequence.
func (g Grouping[K, T]) Values() iter.Seq[T] { return From(g.Items) }

// GroupBy partitions seq by key. Groups come out in the order their key was
// first seen and keys are compared with ==, so composite keys must be
// comparable structs holding plain values.
func GroupBy[T any, K comparable](seq iter.Seq[T], key func(T) K) iter.Seq[Grouping[K, T]] {
	return func(yield func(Grouping[K, T]) bool) {
		index := make(map[K]int)
		var groups []Grouping[K, T]
		for v := range seq {
			k := key(v)
			i, ok := index[k]
			if !ok {
				i = len(groups)
				index[k] = i
				groups = append(groups, Grouping[K, T]{Key: k})
			}
			groups[i].Items = append(groups[i].Items, v)
		}
		for _, g := range groups {
			if !yield(g) {
				return
			}
		}
	}
}
