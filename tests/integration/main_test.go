//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHealthz(t *testing.T) {
	resp, err := http.Get(fmt.Sprintf("%s/healthz", baseURL()))
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

func TestCategoriesSeeded(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	categories, ok := body["categories"].(map[string]interface{})
	if !ok || len(categories) == 0 {
		t.Fatalf("expected seeded categories, got %v", body["categories"])
	}
	if categories["1"] != "Science" {
		t.Fatalf("expected category 1 to be Science, got %v", categories["1"])
	}
}

func TestQuestionLifecycle(t *testing.T) {
	marker := fmt.Sprintf("lifecycle-%d", time.Now().UnixNano())
	id := createQuestion(t, "What is "+marker+"?", "A test", 1, 2)

	status, body := doJSON(t, http.MethodGet, fmt.Sprintf("/questions/%d", id), nil)
	if status != http.StatusOK {
		t.Fatalf("get question: expected 200, got %d", status)
	}

	status, body = doJSON(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": marker})
	if status != http.StatusOK {
		t.Fatalf("search: expected 200, got %d: %v", status, body)
	}
	if body["total_questions"] != float64(1) {
		t.Fatalf("search: expected 1 match, got %v", body["total_questions"])
	}

	status, body = doJSON(t, http.MethodPost, "/questions/category", map[string]int{"category_id": 1})
	if status != http.StatusOK || body["current_category"] != "Science" {
		t.Fatalf("category browse: got %d %v", status, body)
	}

	status, body = doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	if status != http.StatusOK || body["deleted"] != float64(id) {
		t.Fatalf("delete: got %d %v", status, body)
	}

	status, body = doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	expectError(t, status, body, http.StatusNotFound, "resource not found")

	status, body = doJSON(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": marker})
	expectError(t, status, body, http.StatusNotFound, "resource not found")
}

func TestQuizNeverRepeats(t *testing.T) {
	marker := fmt.Sprintf("quiz-%d", time.Now().UnixNano())
	first := createQuestion(t, marker+" one", "1", 6, 1)
	second := createQuestion(t, marker+" two", "2", 6, 1)
	defer doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", first), nil)
	defer doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", second), nil)

	seen := []int{}
	for {
		status, body := doJSON(t, http.MethodPost, "/quizzes", map[string]interface{}{
			"previous_questions": seen,
			"quiz_category":      map[string]interface{}{"id": 6, "type": "Sports"},
		})
		if status != http.StatusOK {
			t.Fatalf("quiz: expected 200, got %d: %v", status, body)
		}
		if body["question"] == nil {
			break
		}
		q := body["question"].(map[string]interface{})
		id := int(q["id"].(float64))
		for _, prev := range seen {
			if prev == id {
				t.Fatalf("question %d returned twice", id)
			}
		}
		if q["category"] != float64(6) {
			t.Fatalf("question %d outside requested category: %v", id, q["category"])
		}
		seen = append(seen, id)
	}
	if len(seen) < 2 {
		t.Fatalf("expected at least the two created questions, saw %v", seen)
	}
}

func TestErrorBodies(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/questions?page=100000", nil)
	expectError(t, status, body, http.StatusNotFound, "resource not found")

	status, body = doJSON(t, http.MethodPost, "/questions", map[string]interface{}{})
	expectError(t, status, body, http.StatusUnprocessableEntity, "unprocessable")

	status, body = doJSON(t, http.MethodPost, "/quizzes", map[string]interface{}{})
	expectError(t, status, body, http.StatusBadRequest, "bad request")

	status, body = doJSON(t, http.MethodPost, "/questions/category", map[string]interface{}{})
	expectError(t, status, body, http.StatusBadRequest, "bad request")
}
