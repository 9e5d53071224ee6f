package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/apperr"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Service implements the question bank operations on top of the repositories.
// Every method re-reads storage; nothing is cached between calls.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	perPage    int
}

type ServiceOptions struct {
	PerPage int
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions) *Service {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Service{
		questions:  questions,
		categories: categories,
		perPage:    perPage,
	}
}

// PerPage returns the configured page size.
func (s *Service) PerPage() int {
	return s.perPage
}

// ListCategories returns all categories in id order.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", apperr.ErrUnprocessable, err)
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromRow(row))
	}
	return out, nil
}

// ListQuestions returns one page of all questions ordered by id.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page, error) {
	total, err := s.questions.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("%w: count questions: %w", apperr.ErrUnprocessable, err)
	}
	return s.fetchPage(ctx, int(total), page, func(limit, offset int32) ([]sqlcgen.Question, error) {
		return s.questions.Page(ctx, limit, offset)
	})
}

// SearchQuestions returns one page of questions whose text contains term,
// ignoring case. An empty term is reported as not found.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (Page, error) {
	if term == "" {
		return Page{}, fmt.Errorf("%w: empty search term", apperr.ErrNotFound)
	}
	total, err := s.questions.CountMatching(ctx, term)
	if err != nil {
		return Page{}, fmt.Errorf("%w: count matches: %w", apperr.ErrUnprocessable, err)
	}
	return s.fetchPage(ctx, int(total), page, func(limit, offset int32) ([]sqlcgen.Question, error) {
		return s.questions.Search(ctx, term, limit, offset)
	})
}

// QuestionsByCategory returns one page of a category's questions.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (CategoryPage, error) {
	if categoryID == 0 {
		return CategoryPage{}, fmt.Errorf("%w: category_id required", apperr.ErrBadRequest)
	}
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return CategoryPage{}, err
	}
	id := int32(category.ID)
	total, err := s.questions.CountByCategory(ctx, id)
	if err != nil {
		return CategoryPage{}, fmt.Errorf("%w: count category %d: %w", apperr.ErrUnprocessable, id, err)
	}
	p, err := s.fetchPage(ctx, int(total), page, func(limit, offset int32) ([]sqlcgen.Question, error) {
		return s.questions.PageByCategory(ctx, id, limit, offset)
	})
	if err != nil {
		return CategoryPage{}, err
	}
	return CategoryPage{Page: p, Category: category}, nil
}

// GetCategory looks a category up by id.
func (s *Service) GetCategory(ctx context.Context, id int) (Category, error) {
	id32, ok := toID(id)
	if !ok {
		return Category{}, fmt.Errorf("%w: category %d", apperr.ErrNotFound, id)
	}
	row, err := s.categories.Get(ctx, id32)
	if errors.Is(err, repository.ErrNotFound) {
		return Category{}, fmt.Errorf("%w: category %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return Category{}, fmt.Errorf("%w: get category %d: %w", apperr.ErrUnprocessable, id, err)
	}
	return categoryFromRow(row), nil
}

// GetQuestion looks a question up by id.
func (s *Service) GetQuestion(ctx context.Context, id int) (Question, error) {
	id32, ok := toID(id)
	if !ok {
		return Question{}, fmt.Errorf("%w: question %d", apperr.ErrNotFound, id)
	}
	row, err := s.questions.Get(ctx, id32)
	if errors.Is(err, repository.ErrNotFound) {
		return Question{}, fmt.Errorf("%w: question %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return Question{}, fmt.Errorf("%w: get question %d: %w", apperr.ErrUnprocessable, id, err)
	}
	return FromRow(row), nil
}

// CreateQuestion validates and stores a new question. The category is not
// checked against the category table.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	if err := in.validate(); err != nil {
		return Question{}, err
	}
	row, err := s.questions.Create(ctx, sqlcgen.CreateQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   int32(in.Category),
		Difficulty: int32(in.Difficulty),
	})
	if err != nil {
		return Question{}, fmt.Errorf("%w: create question: %w", apperr.ErrUnprocessable, err)
	}
	return FromRow(row), nil
}

// DeleteQuestion removes a question; deleting an unknown id is not found.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	id32, ok := toID(id)
	if !ok {
		return fmt.Errorf("%w: question %d", apperr.ErrNotFound, id)
	}
	deleted, err := s.questions.Delete(ctx, id32)
	if err != nil {
		return fmt.Errorf("%w: delete question %d: %w", apperr.ErrUnprocessable, id, err)
	}
	if !deleted {
		return fmt.Errorf("%w: question %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (s *Service) fetchPage(ctx context.Context, total, page int, fetch func(limit, offset int32) ([]sqlcgen.Question, error)) (Page, error) {
	w := Paginate(total, page, s.perPage)
	if w.Empty(total) || page > w.TotalPages {
		return Page{}, fmt.Errorf("%w: page %d of %d", apperr.ErrNotFound, page, w.TotalPages)
	}
	rows, err := fetch(int32(w.Limit), int32(w.Offset))
	if err != nil {
		return Page{}, fmt.Errorf("%w: fetch page %d: %w", apperr.ErrUnprocessable, page, err)
	}
	// rows may have been deleted between the count and the fetch
	if len(rows) == 0 {
		return Page{}, fmt.Errorf("%w: page %d is empty", apperr.ErrNotFound, page)
	}
	return Page{
		Questions:  fromRows(rows),
		Total:      total,
		Page:       page,
		TotalPages: w.TotalPages,
	}, nil
}

func (in NewQuestion) validate() error {
	var missing []string
	if strings.TrimSpace(in.Question) == "" {
		missing = append(missing, "question")
	}
	if strings.TrimSpace(in.Answer) == "" {
		missing = append(missing, "answer")
	}
	if in.Category == 0 {
		missing = append(missing, "category")
	}
	if in.Difficulty == 0 {
		missing = append(missing, "difficulty")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperr.ErrUnprocessable, strings.Join(missing, ", "))
	}
	if _, ok := toID(in.Category); !ok {
		return fmt.Errorf("%w: category %d out of range", apperr.ErrUnprocessable, in.Category)
	}
	if _, ok := toID(in.Difficulty); !ok {
		return fmt.Errorf("%w: difficulty %d out of range", apperr.ErrUnprocessable, in.Difficulty)
	}
	return nil
}

// toID narrows an int to the int32 column range.
func toID(v int) (int32, bool) {
	if v < -1<<31 || v > 1<<31-1 {
		return 0, false
	}
	return int32(v), true
}
