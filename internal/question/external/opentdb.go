// Package external talks to third-party trivia sources used to seed the
// question bank.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MaxAmount is the most questions Open Trivia DB returns per call.
const MaxAmount = 50

// ErrNoResults is returned when Open Trivia DB has fewer questions than requested.
var ErrNoResults = errors.New("opentdb: not enough questions for query")

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// OpenTDBQuestion is a question as Open Trivia DB serves it. Text fields are
// HTML-entity encoded.
type OpenTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

// FetchOptions narrows a fetch. Zero values leave the filter off.
type FetchOptions struct {
	Amount     int
	Category   int
	Difficulty string
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

// Fetch pulls up to MaxAmount questions.
func (c *OpenTDBClient) Fetch(ctx context.Context, opts FetchOptions) ([]OpenTDBQuestion, error) {
	amount := opts.Amount
	if amount <= 0 || amount > MaxAmount {
		amount = MaxAmount
	}
	values := url.Values{}
	values.Set("amount", strconv.Itoa(amount))
	if opts.Category > 0 {
		values.Set("category", strconv.Itoa(opts.Category))
	}
	if opts.Difficulty != "" {
		values.Set("difficulty", opts.Difficulty)
	}

	var payload openTDBResponse
	if err := c.get(ctx, "/api.php?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	switch payload.ResponseCode {
	case 0:
		return payload.Results, nil
	case 1:
		return nil, ErrNoResults
	default:
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}
}

// OpenTDBCategory is one entry of the Open Trivia DB category list.
type OpenTDBCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Categories lists the categories Open Trivia DB knows about.
func (c *OpenTDBClient) Categories(ctx context.Context) ([]OpenTDBCategory, error) {
	var payload struct {
		Categories []OpenTDBCategory `json:"trivia_categories"`
	}
	if err := c.get(ctx, "/api_category.php", &payload); err != nil {
		return nil, err
	}
	return payload.Categories, nil
}

func (c *OpenTDBClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
