package quiz

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/httpjson"
)

// HTTPHandlers serves the quiz endpoint.
type HTTPHandlers struct {
	selector *Selector
	logger   zerolog.Logger
}

func NewHTTPHandlers(selector *Selector, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		selector: selector,
		logger:   logger.With().Str("component", "quiz_http").Logger(),
	}
}

type quizCategory struct {
	ID   httpjson.Int `json:"id"`
	Type string       `json:"type"`
}

type nextRequest struct {
	PreviousQuestions *[]httpjson.Int `json:"previous_questions"`
	QuizCategory      *quizCategory   `json:"quiz_category"`
}

type nextResponse struct {
	Success  bool               `json:"success"`
	Question *question.Question `json:"question"`
}

// Next handles POST /quizzes
func (h *HTTPHandlers) Next(w http.ResponseWriter, r *http.Request) {
	req, _ := httpjson.Decode[nextRequest](r)
	if req.PreviousQuestions == nil || req.QuizCategory == nil {
		httperrors.RespondBadRequest(w)
		return
	}

	previous := make([]int, 0, len(*req.PreviousQuestions))
	for _, id := range *req.PreviousQuestions {
		previous = append(previous, int(id))
	}

	q, err := h.selector.Next(r.Context(), Request{
		CategoryID:  int(req.QuizCategory.ID),
		PreviousIDs: previous,
	})
	if errors.Is(err, ErrExhausted) {
		httperrors.RespondJSON(w, http.StatusOK, nextResponse{Success: true})
		return
	}
	if err != nil {
		question.RespondError(w, r, h.logger, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, nextResponse{Success: true, Question: &q})
}
