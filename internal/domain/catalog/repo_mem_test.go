package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medscience/medscience/internal/platform/store"
)

func strPtr(s string) *string { return &s }

func TestDiseaseRepoMem_IDsIncreaseAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDiseaseRepoMem()

	var last int64
	for i, name := range []string{"Asthma", "Hypertension", "Migraine", "Eczema"} {
		d := &Disease{Name: name, BodySystemID: int64(i + 1), Description: name + " description"}
		require.NoError(t, repo.Create(ctx, d))
		assert.Greater(t, d.ID, last)
		last = d.ID

		got, err := repo.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, *d, *got)
	}
}

func TestDiseaseRepoMem_GetByID_NotFound(t *testing.T) {
	_, err := NewDiseaseRepoMem().GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDiseaseRepoMem_ConcurrentCreateUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewDiseaseRepoMem()

	const n = 100
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := &Disease{Name: "d", Description: "x"}
			_ = repo.Create(ctx, d)
			ids <- d.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func seedDiseases(t *testing.T, repo DiseaseRepository) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []*Disease{
		{Name: "Diabetes Mellitus", BodySystemID: 1, Description: "A metabolic disorder", Symptoms: strPtr("thirst")},
		{Name: "Condition B", BodySystemID: 1, Description: "Linked to DIABETES risk", Symptoms: strPtr("fatigue")},
		{Name: "Condition C", BodySystemID: 2, Description: "Unrelated", Symptoms: strPtr("signs similar to Diabetes")},
		{Name: "Fracture", BodySystemID: 2, Description: "Broken bone", Symptoms: nil},
	} {
		require.NoError(t, repo.Create(ctx, d))
	}
}

func TestDiseaseRepoMem_SearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewDiseaseRepoMem()
	seedDiseases(t, repo)

	upper, err := repo.Search(ctx, "DIABETES")
	require.NoError(t, err)
	lower, err := repo.Search(ctx, "diabetes")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
}

func TestDiseaseRepoMem_SearchMatchesEachField(t *testing.T) {
	repo := NewDiseaseRepoMem()
	seedDiseases(t, repo)

	got, err := repo.Search(context.Background(), "diabetes")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, d := range got {
		names = append(names, d.Name)
	}
	// One match via name, one via description, one via symptoms.
	assert.Equal(t, []string{"Diabetes Mellitus", "Condition B", "Condition C"}, names)
}

func TestDiseaseRepoMem_ListByBodySystem(t *testing.T) {
	ctx := context.Background()
	repo := NewDiseaseRepoMem()
	seedDiseases(t, repo)

	got, err := repo.ListByBodySystem(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Condition C", got[0].Name)
	assert.Equal(t, "Fracture", got[1].Name)

	none, err := repo.ListByBodySystem(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBodySystemRepoMem_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewBodySystemRepoMem()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for _, name := range []string{"Cardiovascular", "Respiratory"} {
		require.NoError(t, repo.Create(ctx, &BodySystem{Name: name, Description: name}))
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Cardiovascular", items[0].Name)
	assert.Equal(t, int64(1), items[0].ID)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBodySystemRepoMem_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewBodySystemRepoMem()
	b := &BodySystem{Name: "Nervous", Description: "Brain"}
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	got.Name = "mutated"
	b.Name = "also mutated"

	again, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nervous", again.Name)
}

func TestSymptomRepoMem(t *testing.T) {
	ctx := context.Background()
	repo := NewSymptomRepoMem()
	sys := int64(3)
	require.NoError(t, repo.Create(ctx, &Symptom{Name: "Fever"}))
	require.NoError(t, repo.Create(ctx, &Symptom{Name: "Cough", BodySystemID: &sys}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].BodySystemID)
	assert.Equal(t, sys, *items[1].BodySystemID)

	s, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cough", s.Name)

	_, err = repo.GetByID(ctx, 3)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
