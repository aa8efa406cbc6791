package querystate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// HTTPFetcher talks to GET /api/documents with the session token
// header. It is the transport half of the synchronizer; timeouts
// belong to the supplied http.Client.
type HTTPFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func (f *HTTPFetcher) Search(ctx context.Context, access, query string, page int) (SearchResult, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	params := url.Values{}
	params.Set("access", access)
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/api/documents?"+params.Encode(), nil)
	if err != nil {
		return SearchResult{}, err
	}
	req.Header.Set("x-access-token", f.Token)

	resp, err := client.Do(req)
	if err != nil {
		return SearchResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil && msg.Message != "" {
			return SearchResult{}, fmt.Errorf("search failed: %s", msg.Message)
		}
		return SearchResult{}, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SearchResult{}, err
	}

	return result, nil
}
