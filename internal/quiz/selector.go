// Package quiz picks the next question of a quiz round.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/gokatarajesh/trivia-api/internal/apperr"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

// ErrExhausted means every eligible question has already been asked.
var ErrExhausted = errors.New("quiz: no questions left")

// Request describes one "next question" call. CategoryID 0 means all categories.
type Request struct {
	CategoryID  int
	PreviousIDs []int
}

type Options struct {
	// Intn returns a value in [0, n). Defaults to math/rand/v2.IntN.
	Intn func(n int) int
}

// Selector is stateless: every call recomputes the eligible pool from storage.
type Selector struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	intn       func(n int) int
}

func NewSelector(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts Options) *Selector {
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{
		questions:  questions,
		categories: categories,
		intn:       intn,
	}
}

// Next returns a question from the requested category that is not in
// PreviousIDs, chosen uniformly at random.
func (s *Selector) Next(ctx context.Context, req Request) (question.Question, error) {
	var category *int32
	if req.CategoryID != 0 {
		id, err := s.checkCategory(ctx, req.CategoryID)
		if err != nil {
			return question.Question{}, err
		}
		category = &id
	}

	exclude := make([]int32, 0, len(req.PreviousIDs))
	for _, id := range req.PreviousIDs {
		// ids outside the column range cannot match a stored question
		if id < 1 || id > 1<<31-1 {
			continue
		}
		exclude = append(exclude, int32(id))
	}

	pool, err := s.questions.QuizCandidates(ctx, category, exclude)
	if err != nil {
		return question.Question{}, fmt.Errorf("%w: quiz candidates: %w", apperr.ErrUnprocessable, err)
	}
	if len(pool) == 0 {
		return question.Question{}, ErrExhausted
	}
	return question.FromRow(pool[s.intn(len(pool))]), nil
}

func (s *Selector) checkCategory(ctx context.Context, categoryID int) (int32, error) {
	if categoryID < 1 || categoryID > 1<<31-1 {
		return 0, fmt.Errorf("%w: unknown category %d", apperr.ErrBadRequest, categoryID)
	}
	id := int32(categoryID)
	_, err := s.categories.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("%w: unknown category %d", apperr.ErrBadRequest, categoryID)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get category %d: %w", apperr.ErrUnprocessable, categoryID, err)
	}
	return id, nil
}
