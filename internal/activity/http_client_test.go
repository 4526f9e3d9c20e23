package activity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fetchWindow() (time.Time, time.Time) {
	return time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 24, 0, 0, 0, 0, time.UTC)
}

func TestFetchRangeStandup(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"user_name": " alice ", "date": "2025-01-20", "project_name": "apollo", "task_count": 3, "commit_count": 5, "satisfaction": 8, "has_obstacles": true, "obstacles": "blocked on review"}
		]}`))
	}))
	defer server.Close()

	client := newHTTPClient(StreamStandup, Config{BaseURL: server.URL, Location: "berlin"})
	start, end := fetchWindow()

	records, err := client.FetchRange(context.Background(), start, end)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}

	if gotPath != "/api/standups" {
		t.Errorf("Expected /api/standups, got %s", gotPath)
	}
	if gotQuery != "endDate=2025-01-24&location=berlin&startDate=2025-01-20" {
		t.Errorf("Unexpected query: %s", gotQuery)
	}

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Stream != StreamStandup || rec.User != "alice" || rec.Project != "apollo" {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.TaskCount != 3 || rec.CommitCount != 5 || rec.Satisfaction != 8 || !rec.HasObstacles {
		t.Errorf("Unexpected counters: %+v", rec)
	}
}

func TestFetchRangeTrackify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/timesheets" {
			t.Errorf("Expected /api/timesheets, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("location") != "" {
			t.Error("Trackify requests must not carry a location parameter")
		}
		w.Write([]byte(`{"data": [
			{"user_name": "bob", "date": "2025-01-21T09:30:00Z", "project_name": "gemini", "duration": "7:30:00"},
			{"user_name": "carol", "date": "2025-01-21", "project_name": "gemini", "duration": null}
		]}`))
	}))
	defer server.Close()

	client := newHTTPClient(StreamTrackify, Config{BaseURL: server.URL})
	start, end := fetchWindow()

	records, err := client.FetchRange(context.Background(), start, end)
	if err != nil {
		t.Fatalf("FetchRange failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Duration != "7:30:00" {
		t.Errorf("Expected duration kept raw, got %q", records[0].Duration)
	}
	if records[1].Duration != "" {
		t.Errorf("Null duration must stay empty, got %q", records[1].Duration)
	}
}

func TestFetchRangeUsesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := newHTTPClient(StreamStandup, Config{BaseURL: server.URL})
	start, end := fetchWindow()

	if _, err := client.FetchRange(context.Background(), start, end); err != nil {
		t.Fatal(err)
	}
	if _, err := client.FetchRange(context.Background(), start, end); err != nil {
		t.Fatal(err)
	}

	if hits != 1 {
		t.Errorf("Expected one upstream request, got %d", hits)
	}
}

func TestFetchRangeErrorStatuses(t *testing.T) {
	status := http.StatusUnauthorized
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := newHTTPClient(StreamStandup, Config{BaseURL: server.URL})
	start, end := fetchWindow()

	if _, err := client.FetchRange(context.Background(), start, end); err == nil {
		t.Error("Expected error on 401")
	}

	status = http.StatusTooManyRequests
	if _, err := client.FetchRange(context.Background(), start, end); err == nil {
		t.Error("Expected error on 429")
	}

	status = http.StatusInternalServerError
	if _, err := client.FetchRange(context.Background(), start, end); err == nil {
		t.Error("Expected error on 500")
	}
}

func TestFetchRangeUnreachable(t *testing.T) {
	client := newHTTPClient(StreamTrackify, Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	start, end := fetchWindow()

	if _, err := client.FetchRange(context.Background(), start, end); err == nil {
		t.Error("Expected error for unreachable API")
	}
}
