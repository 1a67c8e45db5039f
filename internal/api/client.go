package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// Client talks to a prayertime server started with `prayertime serve`.
type Client struct {
	httpClient *http.Client
	// BaseURL is the server root, without the /v1 suffix.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a client for the server at baseURL; an empty baseURL
// means a server on localhost.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchTimes asks the server to compute the schedule for req.
func (c *Client) FetchTimes(req TimesRequest) (*Response, error) {
	var resp Response
	if err := c.doRequest(c.BaseURL+"/v1/times", req.Values(), &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp, nil
}

// FetchCalendar asks the server for every day of a month. req.Date is ignored.
func (c *Client) FetchCalendar(year int, month time.Month, req TimesRequest) (*CalendarResponse, error) {
	params := req.Values()
	params.Del("date")
	endpoint := fmt.Sprintf("%s/v1/calendar/%d/%d", c.BaseURL, year, int(month))

	var resp CalendarResponse
	if err := c.doRequest(endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp, nil
}

// FetchMethods lists the methods the server supports.
func (c *Client) FetchMethods() ([]MethodInfo, error) {
	var resp MethodsResponse
	if err := c.doRequest(c.BaseURL+"/v1/methods", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) doRequest(endpoint string, params url.Values, v any) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
