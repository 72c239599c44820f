package practices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/edukit/lessonforge/model"
)

// Category names understood by the content service
const (
	CategoryStrategies  = "strategies"
	CategoryActivities  = "activities"
	CategoryAssessments = "assessments"
	CategoryManagement  = "management"
)

// ContentClient fetches teaching practice content from an external
// education content service
type ContentClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewContentClient creates a client for the content service.
// An empty api key is allowed, the service then only serves public content.
func NewContentClient(baseURL string, apiKey string, timeout time.Duration) (*ContentClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("content service base url is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ContentClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FetchCategory retrieves the raw JSON payload for one practice category
func (c *ContentClient) FetchCategory(ctx context.Context, category string, query *model.PracticeQuery) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/practices/"+category, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	q := req.URL.Query()
	if query.Subject != "" {
		q.Set("subject", string(query.Subject))
	}
	if query.Grade != "" {
		q.Set("grade", query.Grade)
	}
	if query.Objective != "" {
		q.Set("objective", string(query.Objective))
	}
	if query.MethodType != "" {
		q.Set("method_type", string(query.MethodType))
	}
	if len(query.Keywords) > 0 {
		q.Set("keywords", strings.Join(query.Keywords, ","))
	}
	if query.Language != "" {
		q.Set("language", query.Language)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", category, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", category, err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("fetch %s: invalid json payload", category)
	}

	return body, nil
}
