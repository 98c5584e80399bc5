package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestSearch(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": "go developer remote jobs",
			"results": [
				{"title": "Go Developer at Acme", "url": "https://example.com/1", "content": "Acme is hiring", "score": 0.93, "published_date": "2024-11-02"},
				{"title": "Backend Engineer", "url": "https://example.com/2", "content": "Globex seeks", "score": 0.71}
			]
		}`))
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop(), "secret-key")
	client.APIURL = server.URL

	results, err := client.Search("go developer remote jobs", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Errorf("unexpected authorization header: %q", gotAuth)
	}
	if gotBody["query"] != "go developer remote jobs" {
		t.Errorf("unexpected query in request: %v", gotBody["query"])
	}
	if gotBody["max_results"] != float64(5) {
		t.Errorf("unexpected max_results: %v", gotBody["max_results"])
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Go Developer at Acme" || results[0].Score != 0.93 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[0].PublishedDate != "2024-11-02" {
		t.Errorf("unexpected published date: %q", results[0].PublishedDate)
	}
	if results[1].PublishedDate != "" {
		t.Errorf("expected empty published date, got %q", results[1].PublishedDate)
	}
}

func TestSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop(), "bad-key")
	client.APIURL = server.URL

	if _, err := client.Search("query", 5); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop(), "key")
	client.APIURL = server.URL

	results, err := client.Search("query", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if gotBody["max_results"] != float64(defaultMaxResults) {
		t.Errorf("expected default limit %d, got %v", defaultMaxResults, gotBody["max_results"])
	}
}

func TestBuildQuery(t *testing.T) {
	cases := []struct {
		title    string
		location string
		want     string
	}{
		{"Go Developer", "Berlin", "Go Developer jobs in Berlin"},
		{"Go Developer", "remote", "Go Developer remote jobs"},
		{"Go Developer", "Remote", "Go Developer remote jobs"},
		{"Go Developer", "", "Go Developer remote jobs"},
		{" SRE ", " Amsterdam ", "SRE jobs in Amsterdam"},
	}

	for _, tc := range cases {
		if got := BuildQuery(tc.title, tc.location); got != tc.want {
			t.Errorf("BuildQuery(%q, %q) = %q, want %q", tc.title, tc.location, got, tc.want)
		}
	}
}
