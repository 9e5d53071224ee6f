// Package dbtest provides an in-memory stand-in for the sqlc query set so
// services and handlers can be tested without PostgreSQL.
package dbtest

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// MemStore mirrors the behaviour of the PostgreSQL queries: ids are assigned
// from a sequence and never reused, listings are ordered by id.
type MemStore struct {
	mu         sync.Mutex
	categories []sqlcgen.Category
	questions  []sqlcgen.Question
	nextCatID  int32
	nextID     int32
	failures   map[string]error
}

func NewMemStore() *MemStore {
	return &MemStore{nextCatID: 1, nextID: 1, failures: map[string]error{}}
}

// AddCategory seeds a category and returns its id.
func (m *MemStore) AddCategory(typ string) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextCatID
	m.nextCatID++
	m.categories = append(m.categories, sqlcgen.Category{ID: id, Type: typ})
	return id
}

// AddQuestion seeds a question and returns its id.
func (m *MemStore) AddQuestion(question, answer string, category, difficulty int32) int32 {
	q, _ := m.CreateQuestion(context.Background(), sqlcgen.CreateQuestionParams{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	})
	return q.ID
}

// Fail makes the named query method return err until cleared with a nil err.
func (m *MemStore) Fail(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

func (m *MemStore) failure(method string) error {
	return m.failures[method]
}

func (m *MemStore) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("ListCategories"); err != nil {
		return nil, err
	}
	return slices.Clone(m.categories), nil
}

func (m *MemStore) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("GetCategory"); err != nil {
		return sqlcgen.Category{}, err
	}
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

func (m *MemStore) CountQuestions(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("CountQuestions"); err != nil {
		return 0, err
	}
	return int64(len(m.questions)), nil
}

func (m *MemStore) ListQuestionsPage(ctx context.Context, arg sqlcgen.ListQuestionsPageParams) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("ListQuestionsPage"); err != nil {
		return nil, err
	}
	return window(m.questions, arg.Limit, arg.Offset), nil
}

func (m *MemStore) CountQuestionsByCategory(ctx context.Context, category int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("CountQuestionsByCategory"); err != nil {
		return 0, err
	}
	return int64(len(m.filter(byCategory(category)))), nil
}

func (m *MemStore) ListQuestionsByCategoryPage(ctx context.Context, arg sqlcgen.ListQuestionsByCategoryPageParams) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("ListQuestionsByCategoryPage"); err != nil {
		return nil, err
	}
	return window(m.filter(byCategory(arg.Category)), arg.Limit, arg.Offset), nil
}

func (m *MemStore) CountQuestionsMatching(ctx context.Context, pattern string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("CountQuestionsMatching"); err != nil {
		return 0, err
	}
	return int64(len(m.filter(matching(pattern)))), nil
}

func (m *MemStore) SearchQuestionsPage(ctx context.Context, arg sqlcgen.SearchQuestionsPageParams) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("SearchQuestionsPage"); err != nil {
		return nil, err
	}
	return window(m.filter(matching(arg.Pattern)), arg.PageLimit, arg.PageOffset), nil
}

func (m *MemStore) GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("GetQuestion"); err != nil {
		return sqlcgen.Question{}, err
	}
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return sqlcgen.Question{}, pgx.ErrNoRows
}

func (m *MemStore) CreateQuestion(ctx context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("CreateQuestion"); err != nil {
		return sqlcgen.Question{}, err
	}
	q := sqlcgen.Question{
		ID:         m.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	m.nextID++
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *MemStore) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("DeleteQuestion"); err != nil {
		return 0, err
	}
	before := len(m.questions)
	m.questions = slices.DeleteFunc(m.questions, func(q sqlcgen.Question) bool { return q.ID == id })
	return int64(before - len(m.questions)), nil
}

func (m *MemStore) ListQuizCandidates(ctx context.Context, arg sqlcgen.ListQuizCandidatesParams) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("ListQuizCandidates"); err != nil {
		return nil, err
	}
	// mirrors SQL: id = ANY(NULL) is never true, so a NULL array excludes everything
	if arg.ExcludeIds == nil {
		return nil, nil
	}
	return m.filter(func(q sqlcgen.Question) bool {
		if arg.Category.Valid && q.Category != arg.Category.Int32 {
			return false
		}
		return !slices.Contains(arg.ExcludeIds, q.ID)
	}), nil
}

func (m *MemStore) filter(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	var out []sqlcgen.Question
	for _, q := range m.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func byCategory(category int32) func(sqlcgen.Question) bool {
	return func(q sqlcgen.Question) bool { return q.Category == category }
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

func matching(pattern string) func(sqlcgen.Question) bool {
	needle := strings.ToLower(likeUnescaper.Replace(pattern))
	return func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}
}

func window(rows []sqlcgen.Question, limit, offset int32) []sqlcgen.Question {
	if int(offset) >= len(rows) || offset < 0 {
		return nil
	}
	end := min(int(offset)+int(limit), len(rows))
	return slices.Clone(rows[offset:end])
}
