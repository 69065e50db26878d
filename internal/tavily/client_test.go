package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.APIKey != "k" || req.Query != "mitosis" || req.MaxResults != 3 {
			t.Errorf("unexpected request: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []searchResult{
			{Title: "Mitosis", URL: "https://bio.example/mitosis", Content: "Cell division"},
		}})
	}))
	defer srv.Close()

	c := NewClient("k", nil).WithBaseURL(srv.URL)
	got, err := c.Search(context.Background(), "mitosis", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Provider != "tavily" || got[0].Snippet != "Cell division" {
		t.Fatalf("unexpected articles: %+v", got)
	}
}

func TestClient_SearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := NewClient("bad", nil).WithBaseURL(srv.URL).Search(context.Background(), "q", 1); err == nil {
		t.Fatal("expected error on 401")
	}
}
