package query

import (
	"cmp"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortKey is one ordering criterion. Keys passed to SortBy are applied left
// to right; later keys only break ties left by earlier ones.
type SortKey[T any] struct {
	compare   func(a, b T) int
	direction Direction
}

// KeyFunc builds a SortKey from an extractor and a three-way comparison.
func KeyFunc[T, K any](key func(T) K, compare func(a, b K) int, dir Direction) SortKey[T] {
	return SortKey[T]{
		compare:   func(a, b T) int { return compare(key(a), key(b)) },
		direction: dir,
	}
}

func Asc[T any, K cmp.Ordered](key func(T) K) SortKey[T] {
	return KeyFunc(key, cmp.Compare[K], Ascending)
}

func Desc[T any, K cmp.Ordered](key func(T) K) SortKey[T] {
	return KeyFunc(key, cmp.Compare[K], Descending)
}

func AscDecimal[T any](key func(T) decimal.Decimal) SortKey[T] {
	return KeyFunc(key, decimal.Decimal.Cmp, Ascending)
}

func DescDecimal[T any](key func(T) decimal.Decimal) SortKey[T] {
	return KeyFunc(key, decimal.Decimal.Cmp, Descending)
}

// SortBy returns the elements of seq in the order given by keys. The sort
// is stable: elements equal under every key keep their source order.
// With no keys the source order is kept.
func SortBy[T any](seq iter.Seq[T], keys ...SortKey[T]) iter.Seq[T] {
	compare := func(a, b T) int {
		for _, k := range keys {
			c := k.compare(a, b)
			if k.direction == Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}
	return func(yield func(T) bool) {
		items := slices.Collect(seq)
		slices.SortStableFunc(items, compare)
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}
