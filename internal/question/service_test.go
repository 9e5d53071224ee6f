package question

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/apperr"
	"github.com/gokatarajesh/trivia-api/internal/db/dbtest"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

func newTestService(store *dbtest.MemStore) *Service {
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		ServiceOptions{PerPage: 10},
	)
}

// seedScenario loads the single category / single question fixture.
func seedScenario(t *testing.T) (*dbtest.MemStore, *Service) {
	t.Helper()
	store := dbtest.NewMemStore()
	cat := store.AddCategory("Test Category")
	store.AddQuestion("Test Question", "Test Answer", cat, 1)
	return store, newTestService(store)
}

func TestListQuestions(t *testing.T) {
	_, svc := seedScenario(t)

	page, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Questions, 1)
	assert.Equal(t, "Test Question", page.Questions[0].Question)
}

func TestListQuestionsPageBeyondEnd(t *testing.T) {
	_, svc := seedScenario(t)

	_, err := svc.ListQuestions(context.Background(), 1000)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListQuestionsEmptyBank(t *testing.T) {
	svc := newTestService(dbtest.NewMemStore())

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListQuestionsOrderedWindows(t *testing.T) {
	store := dbtest.NewMemStore()
	cat := store.AddCategory("Science")
	for i := 0; i < 23; i++ {
		store.AddQuestion(fmt.Sprintf("Q%d", i), "A", cat, 1)
	}
	svc := newTestService(store)

	var ids []int
	for p := 1; p <= 3; p++ {
		page, err := svc.ListQuestions(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, 23, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Questions, min(10, 23-(p-1)*10))
		for _, q := range page.Questions {
			ids = append(ids, q.ID)
		}
	}
	assert.IsIncreasing(t, ids)

	_, err := svc.ListQuestions(context.Background(), 4)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListQuestionsStorageFailure(t *testing.T) {
	store, svc := seedScenario(t)
	store.Fail("CountQuestions", errors.New("conn refused"))

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrUnprocessable)
}

func TestSearchQuestions(t *testing.T) {
	_, svc := seedScenario(t)

	page, err := svc.SearchQuestions(context.Background(), "Test", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	page, err = svc.SearchQuestions(context.Background(), "tEsT qUeS", 1)
	require.NoError(t, err, "search ignores case")
	assert.Len(t, page.Questions, 1)

	_, err = svc.SearchQuestions(context.Background(), "", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.SearchQuestions(context.Background(), "nothing like this", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.SearchQuestions(context.Background(), "%", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "wildcards match literally")
}

func TestQuestionsByCategory(t *testing.T) {
	store, svc := seedScenario(t)
	other := store.AddCategory("Empty Category")

	page, err := svc.QuestionsByCategory(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Test Category", page.Category.Type)
	assert.Equal(t, 1, page.Total)

	_, err = svc.QuestionsByCategory(context.Background(), 0, 1)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)

	_, err = svc.QuestionsByCategory(context.Background(), 99, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.QuestionsByCategory(context.Background(), int(other), 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "empty category page is not found")

	store.Fail("GetCategory", errors.New("timeout"))
	_, err = svc.QuestionsByCategory(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperr.ErrUnprocessable)
}

func TestCreateQuestion(t *testing.T) {
	_, svc := seedScenario(t)
	ctx := context.Background()

	in := NewQuestion{Question: "Who?", Answer: "Me", Category: 1, Difficulty: 4}
	created, err := svc.CreateQuestion(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, Question{ID: created.ID, Question: "Who?", Answer: "Me", Category: 1, Difficulty: 4}, got)

	// ids are not reused while the original row exists, nor after deletion
	second, err := svc.CreateQuestion(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
	require.NoError(t, svc.DeleteQuestion(ctx, second.ID))
	third, err := svc.CreateQuestion(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
}

func TestCreateQuestionAcceptsUnknownCategory(t *testing.T) {
	_, svc := seedScenario(t)

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "Q", Answer: "A", Category: 404, Difficulty: 1})
	assert.NoError(t, err)
}

func TestCreateQuestionValidation(t *testing.T) {
	_, svc := seedScenario(t)
	valid := NewQuestion{Question: "Q", Answer: "A", Category: 1, Difficulty: 1}

	cases := map[string]func(*NewQuestion){
		"no question":   func(n *NewQuestion) { n.Question = "" },
		"blank answer":  func(n *NewQuestion) { n.Answer = "   " },
		"no category":   func(n *NewQuestion) { n.Category = 0 },
		"no difficulty": func(n *NewQuestion) { n.Difficulty = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := svc.CreateQuestion(context.Background(), in)
			assert.ErrorIs(t, err, apperr.ErrUnprocessable)
		})
	}
}

func TestCreateQuestionStorageFailure(t *testing.T) {
	store, svc := seedScenario(t)
	store.Fail("CreateQuestion", errors.New("disk full"))

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "Q", Answer: "A", Category: 1, Difficulty: 1})
	assert.ErrorIs(t, err, apperr.ErrUnprocessable)
}

func TestDeleteQuestion(t *testing.T) {
	store, svc := seedScenario(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteQuestion(ctx, 1))
	_, err := svc.GetQuestion(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.DeleteQuestion(ctx, 1000)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	store.Fail("DeleteQuestion", errors.New("lock timeout"))
	err = svc.DeleteQuestion(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrUnprocessable)
}

func TestListCategories(t *testing.T) {
	store, svc := seedScenario(t)
	store.AddCategory("Art")

	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{{ID: 1, Type: "Test Category"}, {ID: 2, Type: "Art"}}, cats)
}

func TestListQuestionsHugePage(t *testing.T) {
	store := dbtest.NewMemStore()
	cat := store.AddCategory("Science")
	for i := 0; i < 12; i++ {
		store.AddQuestion(fmt.Sprintf("Q%d", i), "A", cat, 1)
	}
	svc := newTestService(store)

	for _, page := range []int{3, 1844674407370955163, math.MaxInt} {
		_, err := svc.ListQuestions(context.Background(), page)
		assert.ErrorIs(t, err, apperr.ErrNotFound, page)
	}
}
