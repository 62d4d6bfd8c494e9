package query

import (
	"iter"
	"slices"
)

// From returns a restartable sequence over items. The slice is not copied,
// so callers must not modify it while a query over it is live.
func From[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

func Empty[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

// ToSlice enumerates seq once. The result is never nil.
func ToSlice[T any](seq iter.Seq[T]) []T {
	out := slices.Collect(seq)
	if out == nil {
		out = []T{}
	}
	return out
}

// Filter keeps the elements for which pred holds, in source order.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// Project maps every element through fn, in source order.
func Project[T, R any](seq iter.Seq[T], fn func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// FlatMap concatenates the sequences fn returns for each element.
func FlatMap[T, R any](seq iter.Seq[T], fn func(T) iter.Seq[R]) iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range seq {
			for r := range fn(v) {
				if !yield(r) {
					return
				}
			}
		}
	}
}
