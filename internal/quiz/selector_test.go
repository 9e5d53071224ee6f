package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/apperr"
	"github.com/gokatarajesh/trivia-api/internal/db/dbtest"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

func newTestSelector(store *dbtest.MemStore, intn func(int) int) *Selector {
	return NewSelector(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		Options{Intn: intn},
	)
}

// seedTwoCategories stores three Science and two Art questions.
func seedTwoCategories() (*dbtest.MemStore, int32, int32) {
	store := dbtest.NewMemStore()
	science := store.AddCategory("Science")
	art := store.AddCategory("Art")
	store.AddQuestion("S1", "A", science, 1)
	store.AddQuestion("S2", "A", science, 2)
	store.AddQuestion("A1", "A", art, 1)
	store.AddQuestion("S3", "A", science, 3)
	store.AddQuestion("A2", "A", art, 2)
	return store, science, art
}

func TestNextScenario(t *testing.T) {
	store := dbtest.NewMemStore()
	cat := store.AddCategory("Test Category")
	id := store.AddQuestion("Test Question", "Test Answer", cat, 1)
	sel := newTestSelector(store, nil)

	q, err := sel.Next(context.Background(), Request{CategoryID: int(cat), PreviousIDs: []int{}})
	require.NoError(t, err)
	assert.Equal(t, int(id), q.ID)

	_, err = sel.Next(context.Background(), Request{CategoryID: int(cat), PreviousIDs: []int{int(id)}})
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNextExhaustsCategoryWithoutRepeats(t *testing.T) {
	store, science, _ := seedTwoCategories()
	sel := newTestSelector(store, nil)

	seen := map[int]bool{}
	var previous []int
	for i := 0; i < 3; i++ {
		q, err := sel.Next(context.Background(), Request{CategoryID: int(science), PreviousIDs: previous})
		require.NoError(t, err)
		assert.Equal(t, int(science), q.Category)
		assert.False(t, seen[q.ID], "question %d repeated", q.ID)
		seen[q.ID] = true
		previous = append(previous, q.ID)
	}

	_, err := sel.Next(context.Background(), Request{CategoryID: int(science), PreviousIDs: previous})
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNextAllCategories(t *testing.T) {
	store, _, _ := seedTwoCategories()
	sel := newTestSelector(store, nil)

	var previous []int
	for i := 0; i < 5; i++ {
		q, err := sel.Next(context.Background(), Request{PreviousIDs: previous})
		require.NoError(t, err)
		assert.NotContains(t, previous, q.ID)
		previous = append(previous, q.ID)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, previous)

	_, err := sel.Next(context.Background(), Request{PreviousIDs: previous})
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNextNilPreviousMeansNoneAsked(t *testing.T) {
	store, _, art := seedTwoCategories()
	sel := newTestSelector(store, nil)

	q, err := sel.Next(context.Background(), Request{CategoryID: int(art)})
	require.NoError(t, err)
	assert.Equal(t, int(art), q.Category)
}

func TestNextPicksWithInjectedRandom(t *testing.T) {
	store, science, _ := seedTwoCategories()

	var poolSize int
	sel := newTestSelector(store, func(n int) int {
		poolSize = n
		return n - 1
	})

	q, err := sel.Next(context.Background(), Request{CategoryID: int(science), PreviousIDs: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, 2, poolSize)
	assert.Equal(t, "S3", q.Question)
}

func TestNextIgnoresUnknownPreviousIDs(t *testing.T) {
	store, _, art := seedTwoCategories()
	sel := newTestSelector(store, nil)

	q, err := sel.Next(context.Background(), Request{CategoryID: int(art), PreviousIDs: []int{-5, 999, 3, 1 << 40}})
	require.NoError(t, err)
	assert.Equal(t, "A2", q.Question)
}

func TestNextUnknownCategory(t *testing.T) {
	store, _, _ := seedTwoCategories()
	sel := newTestSelector(store, nil)

	for _, id := range []int{99, -1} {
		_, err := sel.Next(context.Background(), Request{CategoryID: id, PreviousIDs: []int{}})
		assert.ErrorIs(t, err, apperr.ErrBadRequest, id)
	}
}

func TestNextStorageFailure(t *testing.T) {
	store, science, _ := seedTwoCategories()
	store.Fail("ListQuizCandidates", errors.New("connection reset"))
	sel := newTestSelector(store, nil)

	_, err := sel.Next(context.Background(), Request{CategoryID: int(science)})
	assert.ErrorIs(t, err, apperr.ErrUnprocessable)
}
