package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"newspage/internal/models"
)

// API fetches the list from a news endpoint answering {"news": [...]}.
// A single request is made; there is no retry.
type API struct {
	client *http.Client
	url    string
}

// NewAPI creates an API source. A nil client selects http.DefaultClient.
func NewAPI(client *http.Client, url string) *API {
	if client == nil {
		client = http.DefaultClient
	}
	return &API{client: client, url: url}
}

func (a *API) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrLoad, resp.Status)
	}

	var payload struct {
		News []models.NewsItem `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrLoad, err)
	}
	if payload.News == nil {
		return []models.NewsItem{}, nil
	}
	return payload.News, nil
}
