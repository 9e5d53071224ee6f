package question

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/dbtest"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context, opts external.FetchOptions) ([]external.OpenTDBQuestion, error) {
	args := m.Called(ctx, opts)
	if v := args.Get(0); v != nil {
		return v.([]external.OpenTDBQuestion), args.Error(1)
	}
	return nil, args.Error(1)
}

func classicStore() *dbtest.MemStore {
	store := dbtest.NewMemStore()
	for _, typ := range []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"} {
		store.AddCategory(typ)
	}
	return store
}

func TestImport(t *testing.T) {
	store := classicStore()
	svc := newTestService(store)
	opts := external.FetchOptions{Amount: 3}

	source := new(mockSource)
	source.On("Fetch", mock.Anything, opts).Return([]external.OpenTDBQuestion{
		{Category: "Entertainment: Film", Difficulty: "medium", Question: "Who directed &quot;Jaws&quot;?", CorrectAnswer: "Steven Spielberg"},
		{Category: "Geography", Difficulty: "hard", Question: "Capital of Burkina Faso?", CorrectAnswer: "Ouagadougou"},
		{Category: "Mythology", Difficulty: "easy", Question: "Norse god of thunder?", CorrectAnswer: "Thor"},
	}, nil)

	res, err := NewImporter(svc, source, zerolog.Nop()).Import(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 2, Skipped: 1}, res)
	source.AssertExpectations(t)

	page, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, `Who directed "Jaws"?`, page.Questions[0].Question)
	assert.Equal(t, 5, page.Questions[0].Category)
	assert.Equal(t, 2, page.Questions[0].Difficulty)
	assert.Equal(t, 3, page.Questions[1].Category)
	assert.Equal(t, 3, page.Questions[1].Difficulty)
}

func TestImportFetchError(t *testing.T) {
	svc := newTestService(classicStore())
	source := new(mockSource)
	source.On("Fetch", mock.Anything, mock.Anything).Return(nil, external.ErrNoResults)

	_, err := NewImporter(svc, source, zerolog.Nop()).Import(context.Background(), external.FetchOptions{})
	assert.ErrorIs(t, err, external.ErrNoResults)
}

func TestImportStorageFailure(t *testing.T) {
	store := classicStore()
	store.Fail("CreateQuestion", errors.New("connection reset"))
	svc := newTestService(store)

	source := new(mockSource)
	source.On("Fetch", mock.Anything, mock.Anything).Return([]external.OpenTDBQuestion{
		{Category: "History", Difficulty: "easy", Question: "Q", CorrectAnswer: "A"},
	}, nil)

	res, err := NewImporter(svc, source, zerolog.Nop()).Import(context.Background(), external.FetchOptions{})
	assert.Error(t, err)
	assert.Zero(t, res.Created)
}

func TestMatchCategory(t *testing.T) {
	categories := []Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}, {ID: 6, Type: "Sports"}}

	cases := map[string]int{
		"Science & Nature":      1,
		"Science: Computers":    1,
		"Art":                   2,
		"Sports":                6,
		"Entertainment: Comics": 0,
		"Cartoon & Animations":  0,
	}
	for remote, want := range cases {
		got, ok := MatchCategory(remote, categories)
		if want == 0 {
			assert.False(t, ok, remote)
			continue
		}
		require.True(t, ok, remote)
		assert.Equal(t, want, got.ID, remote)
	}
}
