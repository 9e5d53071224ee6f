package question

import sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"

// Question is the shape returned to clients for every question.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a read-only question category.
type Category struct {
	ID   int
	Type string
}

// NewQuestion carries the fields accepted on create. Zero values count as missing.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// Page is one window of an ordered question listing.
type Page struct {
	Questions  []Question
	Total      int
	Page       int
	TotalPages int
}

// CategoryPage is a Page restricted to a single category.
type CategoryPage struct {
	Page
	Category Category
}

// FromRow converts a stored question into its client shape.
func FromRow(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func fromRows(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromRow(row))
	}
	return out
}

func categoryFromRow(row sqlcgen.Category) Category {
	return Category{ID: int(row.ID), Type: row.Type}
}
