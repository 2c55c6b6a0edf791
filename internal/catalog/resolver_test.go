package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	inner Lookup
	calls int
}

func (l *countingLookup) Find(id string) (Property, bool) {
	l.calls++
	return l.inner.Find(id)
}

func TestResolveCarriedTakesPrecedence(t *testing.T) {
	c := seedCatalog(t)
	carried := Property{ID: "77", Title: "Handed Over", FundedPercentage: 12}
	lookup := &countingLookup{inner: c}

	for _, id := range []string{"77", "1", "9", ""} {
		res := Resolve(id, &carried, lookup)
		require.Equal(t, StateFound, res.State())
		require.Equal(t, SourceCarried, res.Source())
		got, ok := res.Property()
		require.True(t, ok)
		require.Equal(t, carried, got)
	}
	require.Zero(t, lookup.calls, "catalog must not be consulted when a record is carried")
}

func TestResolveFallsBackToCatalog(t *testing.T) {
	c := seedCatalog(t)

	res := Resolve("1", nil, c)
	require.True(t, res.Found())
	require.Equal(t, SourceCatalog, res.Source())
	p, _ := res.Property()
	require.Equal(t, "Modern Apartment", p.Title)

	res = Resolve("9", nil, c)
	require.Equal(t, StateNotFound, res.State())
	_, ok := res.Property()
	require.False(t, ok)
}

func TestResolveWithoutLookupIsNotFound(t *testing.T) {
	require.Equal(t, StateNotFound, Resolve("1", nil, nil).State())
}

func TestResolveIsIdempotent(t *testing.T) {
	c := seedCatalog(t)
	first := Resolve("2", nil, c)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Resolve("2", nil, c))
	}
}

func TestResolverPinsResolution(t *testing.T) {
	r := NewResolver("2", nil, seedCatalog(t), nil)
	require.Equal(t, "2", r.RequestedID())
	p, ok := r.Resolution().Property()
	require.True(t, ok)
	require.Equal(t, "Cozy Suburban House", p.Title)
	require.Equal(t, r.Resolution(), r.Resolution())
}

func TestZeroResolutionIsPending(t *testing.T) {
	var res Resolution
	require.Equal(t, StatePending, res.State())
	require.Equal(t, "pending", res.State().String())
}
