package catalog

import (
	"testing"

	"github.com/decorvista/ar-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(DefaultSeed(), zap.NewNop())
}

func TestGet(t *testing.T) {
	cat := newTestCatalog(t)

	entry, err := cat.Get("floor_lamp_01")
	require.NoError(t, err)
	assert.Equal(t, "Floor Lamp", entry.Name)
	assert.Equal(t, "lighting", entry.Category)
	assert.Equal(t, 1.7, entry.Dimensions.Height)

	_, err = cat.Get("no_such_model")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	cat := newTestCatalog(t)

	entry, err := cat.Get("modern_sofa_01")
	require.NoError(t, err)
	entry.Name = "mutated"

	again, err := cat.Get("modern_sofa_01")
	require.NoError(t, err)
	assert.Equal(t, "Modern Sofa", again.Name)
}

func TestListPreservesSeedOrder(t *testing.T) {
	cat := newTestCatalog(t)

	all := cat.List("")
	require.Len(t, all, len(DefaultSeed()))
	assert.Equal(t, "modern_sofa_01", all[0].ModelID)
	assert.Equal(t, "accent_chair_01", all[1].ModelID)
}

func TestListFiltersByCategory(t *testing.T) {
	cat := newTestCatalog(t)

	seating := cat.List("seating")
	require.Len(t, seating, 2)
	for _, e := range seating {
		assert.Equal(t, "seating", e.Category)
	}

	assert.Empty(t, cat.List("spaceships"))
}

func TestSearch(t *testing.T) {
	cat := newTestCatalog(t)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{
			name:    "matches name case-insensitively",
			query:   "SOFA",
			wantIDs: []string{"modern_sofa_01"},
		},
		{
			name:    "matches category",
			query:   "seating",
			wantIDs: []string{"modern_sofa_01", "accent_chair_01"},
		},
		{
			name:    "matches description",
			query:   "reading nooks",
			wantIDs: []string{"accent_chair_01"},
		},
		{
			name:    "no matches yields empty slice",
			query:   "submarine",
			wantIDs: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cat.Search(tt.query)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ModelID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	cat := newTestCatalog(t)

	_, err := cat.Search("")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = cat.Search("   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestIncrementUsage(t *testing.T) {
	cat := newTestCatalog(t)

	cat.IncrementUsage("coffee_table_01")
	cat.IncrementUsage("coffee_table_01")

	entry, err := cat.Get("coffee_table_01")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.UsageCount)
}

func TestIncrementUsageUnknownIsNoOp(t *testing.T) {
	cat := newTestCatalog(t)

	// Advisory counter: unknown ids are silently ignored.
	cat.IncrementUsage("no_such_model")
	assert.Equal(t, len(DefaultSeed()), cat.Len())
}

func TestNewDeduplicatesSeed(t *testing.T) {
	seed := []models.CatalogEntry{
		{ModelID: "dup_01", Name: "First"},
		{ModelID: "dup_01", Name: "Second"},
	}
	cat := New(seed, zap.NewNop())

	require.Equal(t, 1, cat.Len())
	entry, err := cat.Get("dup_01")
	require.NoError(t, err)
	assert.Equal(t, "Second", entry.Name)
}
