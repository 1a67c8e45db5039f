package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// getJSON performs req and decodes a 200 response body into v.
// what names the service in error messages.
func getJSON(req *http.Request, timeout time.Duration, what string, v any) error {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s API returned status %d", what, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", what, err)
	}
	return nil
}
