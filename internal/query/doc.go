// Package query implements the composable primitives the exercises are built
// from: filtering, projection, stable multi-key sorting, grouping, group
// joins and aggregates over iter.Seq values.
//
// Every primitive that returns a sequence is lazy. Building a pipeline only
// records the steps; the source is read when the result is ranged over, and
// each new range re-runs the whole pipeline. Predicates and selectors that
// close over variables therefore observe the values those variables hold at
// enumeration time:
//
//	x := decimal.NewFromInt(100)
//	over := query.Filter(totals, func(t Total) bool { return t.Sum.GreaterThan(x) })
//	a := query.ToSlice(over) // uses 100
//	x = decimal.NewFromInt(1500)
//	b := query.ToSlice(over) // uses 1500, without rebuilding over
//
// Blocking steps (SortBy, GroupBy, GroupJoin) materialize their input on
// each enumeration and never retain it between runs.
package query
