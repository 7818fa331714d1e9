package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func books(ids ...int64) []*Book {
	out := make([]*Book, 0, len(ids))
	for _, id := range ids {
		out = append(out, &Book{ID: ID(id)})
	}
	return out
}

func bookIDs(t *testing.T, list []*Book) []int64 {
	t.Helper()
	out := make([]int64, 0, len(list))
	for _, b := range list {
		require.NotNil(t, b.ID)
		out = append(out, *b.ID)
	}
	return out
}

func TestAddToCollectionIfMissing_AddsNewCandidateFirst(t *testing.T) {
	result := AddBookToCollectionIfMissing(books(456), &Book{ID: ID(123)})
	assert.Equal(t, []int64{123, 456}, bookIDs(t, result))
}

func TestAddToCollectionIfMissing_DuplicateCandidatesCollapse(t *testing.T) {
	result := AddBookToCollectionIfMissing(nil, &Book{ID: ID(123)}, &Book{ID: ID(123)})
	assert.Equal(t, []int64{123}, bookIDs(t, result))
}

func TestAddToCollectionIfMissing_KeepsExistingCopy(t *testing.T) {
	existing := &Book{ID: ID(123), Title: "kept"}
	result := AddBookToCollectionIfMissing([]*Book{existing}, &Book{ID: ID(123), Title: "dropped"})
	require.Len(t, result, 1)
	assert.Same(t, existing, result[0])
}

func TestAddToCollectionIfMissing_NoCandidatesReturnsCollection(t *testing.T) {
	base := books(1, 2, 3)

	assert.Equal(t, []int64{1, 2, 3}, bookIDs(t, AddBookToCollectionIfMissing(base)))
	assert.Equal(t, []int64{1, 2, 3}, bookIDs(t, AddBookToCollectionIfMissing(base, nil, nil)))

	same := AddBookToCollectionIfMissing(base, nil)
	assert.Same(t, &base[0], &same[0], "expected the original slice to be returned")
}

func TestAddToCollectionIfMissing_EmptyInputs(t *testing.T) {
	assert.Empty(t, AddBookToCollectionIfMissing(nil))
	assert.Empty(t, AddBookToCollectionIfMissing([]*Book{}))
}

func TestAddToCollectionIfMissing_DropsTransientCandidates(t *testing.T) {
	result := AddBookToCollectionIfMissing(books(1), &Book{Title: "no id"})
	assert.Equal(t, []int64{1}, bookIDs(t, result))
}

func TestAddToCollectionIfMissing_DoesNotModifyInput(t *testing.T) {
	base := books(1, 2)
	_ = AddBookToCollectionIfMissing(base, &Book{ID: ID(3)})
	assert.Equal(t, []int64{1, 2}, bookIDs(t, base))
}

func TestAddToCollectionIfMissing_Property(t *testing.T) {
	cases := []struct {
		name       string
		base       []int64
		candidates []*Book
		want       []int64
	}{
		{"all new", []int64{1, 2}, books(3, 4), []int64{3, 4, 1, 2}},
		{"some present", []int64{1, 2}, books(2, 5), []int64{5, 1, 2}},
		{"all present", []int64{1, 2}, books(2, 1), []int64{1, 2}},
		{"mixed nils", []int64{7}, []*Book{nil, {ID: ID(8)}, nil, {ID: ID(8)}}, []int64{8, 7}},
		{"empty base", nil, books(9, 10, 9), []int64{9, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := AddBookToCollectionIfMissing(books(tc.base...), tc.candidates...)
			assert.Equal(t, tc.want, bookIDs(t, result))
		})
	}
}

func TestAddPatronToCollectionIfMissing(t *testing.T) {
	result := AddPatronToCollectionIfMissing([]*Patron{{ID: ID(2)}}, &Patron{ID: ID(86367)})
	require.Len(t, result, 2)
	assert.Equal(t, int64(86367), *result[0].ID)
}

func TestAddInventoryAndRentalToCollectionIfMissing(t *testing.T) {
	inv := AddInventoryToCollectionIfMissing(nil, &Inventory{ID: ID(1)}, (*Inventory)(nil))
	assert.Len(t, inv, 1)

	rentals := AddRentalToCollectionIfMissing([]*Rental{{ID: ID(1)}}, &Rental{ID: ID(1)}, &Rental{ID: ID(2)})
	require.Len(t, rentals, 2)
	assert.Equal(t, int64(2), *rentals[0].ID)
}

func TestSameIdentity(t *testing.T) {
	assert.True(t, SameIdentity(&Book{ID: ID(1)}, &Book{ID: ID(1), Title: "other"}))
	assert.False(t, SameIdentity(&Book{ID: ID(1)}, &Book{ID: ID(2)}))
	assert.False(t, SameIdentity(&Book{}, &Book{}))
	assert.False(t, SameIdentity((*Book)(nil), &Book{ID: ID(1)}))
	assert.False(t, SameIdentity(nil, nil))
}
