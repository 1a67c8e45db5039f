package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

// sampleRequest is Mecca on the June solstice.
func sampleRequest() TimesRequest {
	offset := 3.0
	return TimesRequest{
		Date:      time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC),
		Latitude:  21.4225,
		Longitude: 39.8262,
		UTCOffset: &offset,
		Settings:  prayer.DefaultSettings(),
	}
}

// sampleResponse is what a server would return for sampleRequest.
func sampleResponse(t *testing.T) Response {
	t.Helper()
	data, err := Evaluate(sampleRequest(), time.Date(2023, 6, 21, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return Response{Code: 200, Status: "OK", Data: *data}
}

func TestNewClient(t *testing.T) {
	c := NewClient("")
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}

	c = NewClient("http://example.com/")
	if c.BaseURL != "http://example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", c.BaseURL)
	}
}

func TestFetchTimes_Success(t *testing.T) {
	resp := sampleResponse(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/times" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("date") != "2023-06-21" {
			t.Errorf("date = %q, want %q", q.Get("date"), "2023-06-21")
		}
		if q.Get("latitude") != "21.4225" {
			t.Errorf("latitude = %q", q.Get("latitude"))
		}
		if q.Get("utc_offset") != "3" {
			t.Errorf("utc_offset = %q, want %q", q.Get("utc_offset"), "3")
		}
		if q.Get("method") != "5" {
			t.Errorf("method = %q, want %q", q.Get("method"), "5")
		}
		if q.Get("school") != "shafi" {
			t.Errorf("school = %q, want %q", q.Get("school"), "shafi")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	got, err := c.FetchTimes(sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings[2].Name != "Zuhr" || got.Data.Timings[2].Time != "12:22" {
		t.Errorf("Zuhr = %+v, want 12:22", got.Data.Timings[2])
	}
	if got.Data.Meta.UTCOffset != 3 {
		t.Errorf("UTCOffset = %v, want 3", got.Data.Meta.UTCOffset)
	}
}

func TestFetchTimes_HTTPErrorWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "latitude is required"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchTimes(sampleRequest())
	if err == nil {
		t.Fatal("expected error for HTTP 400, got nil")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "latitude is required") {
		t.Errorf("error should mention status and message, got: %v", err)
	}
}

func TestFetchTimes_HTTPErrorPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchTimes(sampleRequest())
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention 503, got: %v", err)
	}
}

func TestFetchTimes_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchTimes(sampleRequest())
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestFetchTimes_APIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Code: 500, Status: "Internal Server Error"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchTimes(sampleRequest())
	if err == nil {
		t.Fatal("expected error for API code 500, got nil")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention 500, got: %v", err)
	}
}

func TestFetchTimes_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listening

	_, err := c.FetchTimes(sampleRequest())
	if err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}

// ---------------------------------------------------------------------------
// Calendar and methods endpoints
// ---------------------------------------------------------------------------

func TestFetchCalendar_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calendar/2024/2" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("date") != "" {
			t.Error("calendar request should not carry a date")
		}

		days, err := EvaluateMonth(2024, time.February, sampleRequest(), time.Now())
		if err != nil {
			t.Errorf("EvaluateMonth: %v", err)
		}
		json.NewEncoder(w).Encode(CalendarResponse{Code: 200, Status: "OK", Data: days})
	}))
	defer server.Close()

	got, err := NewClient(server.URL).FetchCalendar(2024, time.February, sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 29 {
		t.Errorf("got %d days, want 29", len(got.Data))
	}
	if got.Data[28].Date.Date != "2024-02-29" {
		t.Errorf("last day = %q, want 2024-02-29", got.Data[28].Date.Date)
	}
}

func TestFetchCalendar_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchCalendar(2024, time.February, sampleRequest())
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
}

func TestFetchMethods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/methods" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(MethodsResponse{Code: 200, Status: "OK", Data: Methods()})
	}))
	defer server.Close()

	got, err := NewClient(server.URL).FetchMethods()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(prayer.Methods) {
		t.Errorf("got %d methods, want %d", len(got), len(prayer.Methods))
	}
}
