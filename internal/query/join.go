package query

import (
	"iter"
	"slices"
)

// Joined pairs an outer element with every inner element sharing its key.
type Joined[O, I any] struct {
	Outer   O
	Matches []I
}

// Pair is one row of an equi-join.
type Pair[O, I any] struct {
	Outer O
	Inner I
}

// lookup builds the key -> members table for the inner side, keeping inner
// order inside each bucket.
func lookup[I any, K comparable](inner iter.Seq[I], key func(I) K) map[K][]I {
	table := make(map[K][]I)
	for v := range inner {
		k := key(v)
		table[k] = append(table[k], v)
	}
	return table
}

// GroupJoin yields exactly one Joined per outer element, in outer order.
// Outer elements without matches are kept with empty Matches.
func GroupJoin[O, I any, K comparable](outer iter.Seq[O], inner iter.Seq[I], outerKey func(O) K, innerKey func(I) K) iter.Seq[Joined[O, I]] {
	return func(yield func(Joined[O, I]) bool) {
		table := lookup(inner, innerKey)
		for o := range outer {
			if !yield(Joined[O, I]{Outer: o, Matches: slices.Clone(table[outerKey(o)])}) {
				return
			}
		}
	}
}

// Join is the equi-join counterpart of GroupJoin: one Pair per matching
// (outer, inner) combination, outer elements without matches are dropped.
func Join[O, I any, K comparable](outer iter.Seq[O], inner iter.Seq[I], outerKey func(O) K, innerKey func(I) K) iter.Seq[Pair[O, I]] {
	return func(yield func(Pair[O, I]) bool) {
		table := lookup(inner, innerKey)
		for o := range outer {
			for _, i := range table[outerKey(o)] {
				if !yield(Pair[O, I]{Outer: o, Inner: i}) {
					return
				}
			}
		}
	}
}
