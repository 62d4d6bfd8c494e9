package query

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/phenrril/linqsamples/internal/domain"
)

// AveragePrecision is the number of fractional digits AverageDecimal rounds
// to. Rounding is half away from zero.
const AveragePrecision int32 = 2

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func Count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// Any reports whether seq has at least one element. It stops at the first.
func Any[T any](seq iter.Seq[T]) bool {
	for range seq {
		return true
	}
	return false
}

// AnyMatch reports whether pred holds for some element, stopping at the
// first match.
func AnyMatch[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for v := range seq {
		if pred(v) {
			return true
		}
	}
	return false
}

// First returns the first element or an error marked
// domain.ErrEmptySequence.
func First[T any](seq iter.Seq[T]) (T, error) {
	for v := range seq {
		return v, nil
	}
	var zero T
	return zero, errors.Wrap(domain.ErrEmptySequence, "first")
}

func FirstOr[T any](seq iter.Seq[T], fallback T) T {
	for v := range seq {
		return v
	}
	return fallback
}

func Sum[T any, N Number](seq iter.Seq[T], fn func(T) N) N {
	var total N
	for v := range seq {
		total += fn(v)
	}
	return total
}

func SumDecimal[T any](seq iter.Seq[T], fn func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for v := range seq {
		total = total.Add(fn(v))
	}
	return total
}

// Average returns the arithmetic mean of fn over seq as a float64.
func Average[T any, N Number](seq iter.Seq[T], fn func(T) N) (float64, error) {
	var total float64
	n := 0
	for v := range seq {
		total += float64(fn(v))
		n++
	}
	if n == 0 {
		return 0, errors.Wrap(domain.ErrEmptySequence, "average")
	}
	return total / float64(n), nil
}

// AverageDecimal sums exactly and divides once, rounding the quotient to
// AveragePrecision digits.
func AverageDecimal[T any](seq iter.Seq[T], fn func(T) decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	n := int64(0)
	for v := range seq {
		total = total.Add(fn(v))
		n++
	}
	if n == 0 {
		return decimal.Zero, errors.Wrap(domain.ErrEmptySequence, "average")
	}
	return total.DivRound(decimal.NewFromInt(n), AveragePrecision), nil
}
