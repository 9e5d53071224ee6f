package question

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/apperr"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/httpjson"
)

// HTTPHandlers exposes the category and question routes.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers constructs the question HTTP handlers.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

type questionListResponse struct {
	Success         bool           `json:"success"`
	Questions       []Question     `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentPage     int            `json:"current_page"`
	TotalPages      int            `json:"total_pages"`
	Categories      map[int]string `json:"categories"`
	CurrentCategory *string        `json:"current_category"`
}

type filteredListResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *string    `json:"current_category"`
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryMap(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), PageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	categories, err := h.categoryMap(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, questionListResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		CurrentPage:    page.Page,
		TotalPages:     page.TotalPages,
		Categories:     categories,
	})
}

// GetQuestion handles GET /questions/{id}
func (h *HTTPHandlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	q, err := h.svc.GetQuestion(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	logger := logging.FromContextOr(r.Context(), h.logger)
	logger.Info().Int("question_id", id).Msg("question deleted")
	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

type createRequest struct {
	Question   *string       `json:"question"`
	Answer     *string       `json:"answer"`
	Category   *httpjson.Int `json:"category"`
	Difficulty *httpjson.Int `json:"difficulty"`
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	// a malformed body is treated as empty and fails validation below
	req, _ := httpjson.Decode[createRequest](r)

	in := NewQuestion{}
	if req.Question != nil {
		in.Question = *req.Question
	}
	if req.Answer != nil {
		in.Answer = *req.Answer
	}
	if req.Category != nil {
		in.Category = int(*req.Category)
	}
	if req.Difficulty != nil {
		in.Difficulty = int(*req.Difficulty)
	}

	q, err := h.svc.CreateQuestion(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	logger := logging.FromContextOr(r.Context(), h.logger)
	logger.Info().Int("question_id", q.ID).Int("category", q.Category).Msg("question created")
	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": q.ID,
	})
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	req, _ := httpjson.Decode[searchRequest](r)

	page, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm, PageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, filteredListResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

type categoryRequest struct {
	CategoryID httpjson.Int `json:"category_id"`
}

// QuestionsByCategory handles POST /questions/category
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	req, _ := httpjson.Decode[categoryRequest](r)
	h.respondCategoryPage(w, r, int(req.CategoryID))
}

// CategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	h.respondCategoryPage(w, r, id)
}

func (h *HTTPHandlers) respondCategoryPage(w http.ResponseWriter, r *http.Request, categoryID int) {
	page, err := h.svc.QuestionsByCategory(r.Context(), categoryID, PageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	current := page.Category.Type
	httperrors.RespondJSON(w, http.StatusOK, filteredListResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: &current,
	})
}

func (h *HTTPHandlers) categoryMap(r *http.Request) (map[int]string, error) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out, nil
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	RespondError(w, r, h.logger, err)
}

// RespondError maps err onto its status through apperr and writes the error body.
func RespondError(w http.ResponseWriter, r *http.Request, fallback zerolog.Logger, err error) {
	status, msg := apperr.Status(err)
	logger := logging.FromContextOr(r.Context(), fallback)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else if status == http.StatusUnprocessableEntity {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	httperrors.RespondError(w, status, msg)
}

// PageParam reads the 1-based ?page= query value. Missing or invalid values
// mean the first page.
func PageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
