package domain

import "github.com/cockroachdb/errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrDataLoad marks every failure to build a dataset from its source.
	ErrDataLoad = errors.New("data load failed")

	// ErrEmptySequence is returned by aggregates that have no value for an
	// empty input, such as First and Average.
	ErrEmptySequence = errors.New("sequence contains no elements")
)
