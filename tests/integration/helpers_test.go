//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

// doJSON sends payload (nil for no body) and decodes the JSON response.
func doJSON(t *testing.T, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", baseURL(), path), &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func createQuestion(t *testing.T, text, answer string, category, difficulty int) int {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   text,
		"answer":     answer,
		"category":   category,
		"difficulty": difficulty,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: expected 200, got %d: %v", status, body)
	}
	created, ok := body["created"].(float64)
	if !ok {
		t.Fatalf("create question: missing created id in %v", body)
	}
	return int(created)
}

func expectError(t *testing.T, status int, body map[string]interface{}, want int, message string) {
	t.Helper()
	if status != want {
		t.Fatalf("expected %d, got %d: %v", want, status, body)
	}
	if body["success"] != false || body["error"] != float64(want) || body["message"] != message {
		t.Fatalf("unexpected error body: %v", body)
	}
}
