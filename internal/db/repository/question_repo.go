package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	CountQuestions(ctx context.Context) (int64, error)
	ListQuestionsPage(ctx context.Context, arg sqlcgen.ListQuestionsPageParams) ([]sqlcgen.Question, error)
	CountQuestionsByCategory(ctx context.Context, category int32) (int64, error)
	ListQuestionsByCategoryPage(ctx context.Context, arg sqlcgen.ListQuestionsByCategoryPageParams) ([]sqlcgen.Question, error)
	CountQuestionsMatching(ctx context.Context, pattern string) (int64, error)
	SearchQuestionsPage(ctx context.Context, arg sqlcgen.SearchQuestionsPageParams) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	CreateQuestion(ctx context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
	ListQuizCandidates(ctx context.Context, arg sqlcgen.ListQuizCandidatesParams) ([]sqlcgen.Question, error)
}

// QuestionRepository wraps sqlc queries for the question bank.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Count returns the total number of questions.
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountQuestions(ctx)
}

// Page returns one window of questions ordered by ascending id.
func (r *QuestionRepository) Page(ctx context.Context, limit, offset int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsPage(ctx, sqlcgen.ListQuestionsPageParams{Limit: limit, Offset: offset})
}

// CountByCategory returns how many questions reference the category.
func (r *QuestionRepository) CountByCategory(ctx context.Context, category int32) (int64, error) {
	return r.store.CountQuestionsByCategory(ctx, category)
}

// PageByCategory returns one window of a category's questions ordered by ascending id.
func (r *QuestionRepository) PageByCategory(ctx context.Context, category, limit, offset int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByCategoryPage(ctx, sqlcgen.ListQuestionsByCategoryPageParams{
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
}

// CountMatching counts questions whose text contains term, ignoring case.
func (r *QuestionRepository) CountMatching(ctx context.Context, term string) (int64, error) {
	return r.store.CountQuestionsMatching(ctx, escapeLike(term))
}

// Search returns one window of questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string, limit, offset int32) ([]sqlcgen.Question, error) {
	return r.store.SearchQuestionsPage(ctx, sqlcgen.SearchQuestionsPageParams{
		Pattern:    escapeLike(term),
		PageLimit:  limit,
		PageOffset: offset,
	})
}

// Get fetches a question by id, returning ErrNotFound when absent.
func (r *QuestionRepository) Get(ctx context.Context, id int32) (sqlcgen.Question, error) {
	q, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return sqlcgen.Question{}, translate(err)
	}
	return q, nil
}

// Create inserts a question and returns it with its assigned id.
func (r *QuestionRepository) Create(ctx context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	return r.store.CreateQuestion(ctx, params)
}

// Delete removes a question and reports whether a row existed.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) (bool, error) {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// QuizCandidates returns the questions of category (all categories when nil)
// whose ids are not in exclude.
func (r *QuestionRepository) QuizCandidates(ctx context.Context, category *int32, exclude []int32) ([]sqlcgen.Question, error) {
	params := sqlcgen.ListQuizCandidatesParams{ExcludeIds: exclude}
	// a nil slice is sent as NULL, and id = ANY(NULL) filters every row
	if params.ExcludeIds == nil {
		params.ExcludeIds = []int32{}
	}
	if category != nil {
		params.Category = pgtype.Int4{Int32: *category, Valid: true}
	}
	return r.store.ListQuizCandidates(ctx, params)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
