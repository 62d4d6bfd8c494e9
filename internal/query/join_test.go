package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	city, country string
}

type person struct {
	name string
	at   place
}

type vendor struct {
	name string
	at   place
}

var (
	people = []person{
		{"ann", place{"Berlin", "Germany"}},
		{"bob", place{"Paris", "France"}},
		{"cid", place{"London", "UK"}},
	}
	vendors = []vendor{
		{"v1", place{"Paris", "France"}},
		{"v2", place{"Berlin", "Germany"}},
		{"v3", place{"Paris", "France"}},
		{"v4", place{"Paris", "Texas"}},
	}
)

func TestGroupJoinKeepsEveryOuter(t *testing.T) {
	joined := ToSlice(GroupJoin(From(people), From(vendors),
		func(p person) place { return p.at },
		func(v vendor) place { return v.at }))

	require.Len(t, joined, len(people))
	assert.Equal(t, "ann", joined[0].Outer.name)
	assert.Equal(t, []vendor{vendors[1]}, joined[0].Matches)
	assert.Equal(t, []vendor{vendors[0], vendors[2]}, joined[1].Matches)
	assert.Empty(t, joined[2].Matches)
}

func TestGroupJoinTotality(t *testing.T) {
	cases := []struct {
		outer []person
		inner []vendor
	}{
		{nil, vendors},
		{people, nil},
		{people, vendors},
		{append(people, people...), vendors[:1]},
	}
	for _, tc := range cases {
		q := GroupJoin(From(tc.outer), From(tc.inner),
			func(p person) place { return p.at },
			func(v vendor) place { return v.at })
		assert.Equal(t, len(tc.outer), Count(q))
	}
}

func TestGroupJoinMatchesAreIndependent(t *testing.T) {
	twins := []person{people[1], people[1]}
	joined := ToSlice(GroupJoin(From(twins), From(vendors),
		func(p person) place { return p.at },
		func(v vendor) place { return v.at }))
	joined[0].Matches[0].name = "changed"
	assert.Equal(t, "v1", joined[1].Matches[0].name)
}

func TestJoinDropsUnmatched(t *testing.T) {
	pairs := ToSlice(Join(From(people), From(vendors),
		func(p person) place { return p.at },
		func(v vendor) place { return v.at }))

	require.Len(t, pairs, 3)
	names := make([]string, 0, len(pairs))
	for _, p := range pairs {
		names = append(names, p.Outer.name+":"+p.Inner.name)
	}
	assert.Equal(t, []string{"ann:v2", "bob:v1", "bob:v3"}, names)
}
