package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// APIError is any failure to get an answer out of the query API. The form
// renders Error() verbatim, so the message stays short.
type APIError struct {
	Detail string
}

func (e *APIError) Error() string {
	return "API error: " + e.Detail
}

// Answer is a generated response with its supporting citations.
type Answer struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// Citation points at the source passage an answer sentence came from.
type Citation struct {
	DocID   string `json:"doc_id"`
	Page    int    `json:"page"`
	Snippet string `json:"snippet,omitempty"`
}

type askRequest struct {
	Query    string `json:"query"`
	K        int    `json:"k"`
	LangHint string `json:"lang_hint"`
}

// APIClient calls the query API. One request per Ask, no retries.
type APIClient struct {
	endpoint string
	http     *http.Client
}

// NewAPIClient creates a client for the query API at the given base URL.
func NewAPIClient(endpoint string) *APIClient {
	return &APIClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Ask submits one query and decodes the answer. Every failure mode comes
// back as an *APIError: transport failures carry the underlying message,
// non-2xx responses carry the status code only.
func (c *APIClient) Ask(ctx context.Context, query, lang string, k int) (*Answer, error) {
	body, err := json.Marshal(askRequest{Query: query, K: k, LangHint: lang})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/ask", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Detail: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Detail: strconv.Itoa(resp.StatusCode)}
	}

	var answer Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, &APIError{Detail: "malformed response"}
	}
	return &answer, nil
}
