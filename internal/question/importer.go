package question

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

// QuestionSource is the slice of the Open Trivia DB client the importer needs.
type QuestionSource interface {
	Fetch(ctx context.Context, opts external.FetchOptions) ([]external.OpenTDBQuestion, error)
}

// ImportResult counts what an import run did.
type ImportResult struct {
	Created int
	Skipped int
}

// Importer copies questions from an external source into the bank through
// the Service, so imported rows pass the same validation as POST /questions.
type Importer struct {
	svc    *Service
	source QuestionSource
	logger zerolog.Logger
}

func NewImporter(svc *Service, source QuestionSource, logger zerolog.Logger) *Importer {
	return &Importer{
		svc:    svc,
		source: source,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

var difficultyLevels = map[string]int{
	"easy":   1,
	"medium": 2,
	"hard":   3,
}

// Import fetches one batch and stores every question whose category maps onto
// a local one. Questions that cannot be mapped are skipped.
func (im *Importer) Import(ctx context.Context, opts external.FetchOptions) (ImportResult, error) {
	var res ImportResult

	categories, err := im.svc.ListCategories(ctx)
	if err != nil {
		return res, err
	}
	fetched, err := im.source.Fetch(ctx, opts)
	if err != nil {
		return res, fmt.Errorf("fetch questions: %w", err)
	}

	for _, remote := range fetched {
		in, ok := toNewQuestion(remote, categories)
		if !ok {
			im.logger.Debug().
				Str("category", remote.Category).
				Str("difficulty", remote.Difficulty).
				Msg("skipping unmapped question")
			res.Skipped++
			continue
		}
		q, err := im.svc.CreateQuestion(ctx, in)
		if err != nil {
			return res, fmt.Errorf("store imported question: %w", err)
		}
		im.logger.Debug().Int("question_id", q.ID).Int("category", q.Category).Msg("question imported")
		res.Created++
	}

	im.logger.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("import finished")
	return res, nil
}

func toNewQuestion(remote external.OpenTDBQuestion, categories []Category) (NewQuestion, bool) {
	difficulty, ok := difficultyLevels[strings.ToLower(remote.Difficulty)]
	if !ok {
		return NewQuestion{}, false
	}
	category, ok := MatchCategory(remote.Category, categories)
	if !ok {
		return NewQuestion{}, false
	}
	in := NewQuestion{
		Question:   strings.TrimSpace(html.UnescapeString(remote.Question)),
		Answer:     strings.TrimSpace(html.UnescapeString(remote.CorrectAnswer)),
		Category:   category.ID,
		Difficulty: difficulty,
	}
	if in.Question == "" || in.Answer == "" {
		return NewQuestion{}, false
	}
	return in, true
}

// MatchCategory finds the local category whose name appears as a word of the
// remote category name, e.g. "Entertainment: Film" matches Entertainment.
// The first local category in id order wins.
func MatchCategory(remote string, categories []Category) (Category, bool) {
	words := strings.FieldsFunc(strings.ToLower(remote), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, c := range categories {
		local := strings.ToLower(strings.TrimSpace(c.Type))
		for _, w := range words {
			if w == local {
				return c, true
			}
		}
	}
	return Category{}, false
}
