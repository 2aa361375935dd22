package anilist_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/animefmt/pkg/adapters/anilist"
	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/aretw0/animefmt/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.CatalogGateway = (*anilist.Client)(nil)

const searchBody = `{
  "data": {
    "Page": {
      "pageInfo": {"total": 12, "currentPage": 1, "lastPage": 2, "hasNextPage": true},
      "media": [
        {
          "id": 20,
          "format": "TV",
          "title": {"romaji": "Naruto", "english": "Naruto"},
          "coverImage": {"large": "https://img.example/l/20.jpg", "extraLarge": "https://img.example/xl/20.jpg"}
        },
        {
          "id": 1735,
          "format": null,
          "title": {"romaji": "Naruto: Shippuuden", "english": null},
          "coverImage": {"large": "https://img.example/l/1735.jpg", "extraLarge": null}
        }
      ]
    }
  }
}`

const mediaBody = `{
  "data": {
    "Media": {
      "id": 20,
      "format": "TV",
      "title": {"romaji": "Naruto", "english": "Naruto"},
      "episodes": 220,
      "status": "FINISHED",
      "startDate": {"year": 2002, "month": 10, "day": 3},
      "endDate": {"year": 2007, "month": 2, "day": null},
      "duration": 23,
      "averageScore": 79,
      "genres": ["Action", "Adventure"],
      "description": "Naruto Uzumaki<br>wants to be Hokage.",
      "siteUrl": "https://anilist.co/anime/20",
      "coverImage": {"large": "https://img.example/l/20.jpg", "extraLarge": null}
    }
  }
}`

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newServer(t *testing.T, status int, body string, seen *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Search(t *testing.T) {
	var seen capturedRequest
	srv := newServer(t, http.StatusOK, searchBody, &seen)
	client := anilist.New(anilist.WithEndpoint(srv.URL))

	page, err := client.Search(context.Background(), "naruto", 1, 10)
	require.NoError(t, err)

	assert.Contains(t, seen.Query, "Page(page: $page, perPage: $perPage)")
	assert.Equal(t, "naruto", seen.Variables["search"])
	assert.EqualValues(t, 1, seen.Variables["page"])
	assert.EqualValues(t, 10, seen.Variables["perPage"])

	assert.Equal(t, domain.PageInfo{Total: 12, CurrentPage: 1, LastPage: 2, HasNextPage: true}, page.PageInfo)
	require.Len(t, page.Items, 2)
	assert.Equal(t, domain.SearchResultItem{
		ID: 20, TitleRomaji: "Naruto", TitleEnglish: "Naruto", Format: "TV",
		CoverImageURL: "https://img.example/xl/20.jpg",
	}, page.Items[0])

	second := page.Items[1]
	assert.Equal(t, "Naruto: Shippuuden", second.DisplayTitle())
	assert.Empty(t, second.Format)
	assert.Equal(t, "https://img.example/l/1735.jpg", second.CoverImageURL, "falls back to the large cover")
}

func TestClient_SearchEmpty(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"data":{"Page":{"pageInfo":{"total":0,"currentPage":1,"lastPage":1,"hasNextPage":false},"media":[]}}}`, nil)
	client := anilist.New(anilist.WithEndpoint(srv.URL))

	page, err := client.Search(context.Background(), "zzzzzz", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestClient_Media(t *testing.T) {
	var seen capturedRequest
	srv := newServer(t, http.StatusOK, mediaBody, &seen)
	client := anilist.New(anilist.WithEndpoint(srv.URL))

	m, err := client.Media(context.Background(), 20)
	require.NoError(t, err)

	assert.Contains(t, seen.Query, "Media(id: $id, type: ANIME)")
	assert.EqualValues(t, 20, seen.Variables["id"])

	assert.Equal(t, 20, m.ID)
	require.NotNil(t, m.Episodes)
	assert.Equal(t, 220, *m.Episodes)
	assert.Equal(t, "FINISHED", m.Status)
	require.NotNil(t, m.StartDate.Year)
	assert.Equal(t, 2002, *m.StartDate.Year)
	assert.Nil(t, m.EndDate.Day)
	assert.Equal(t, []string{"Action", "Adventure"}, m.Genres)
	assert.Equal(t, "https://img.example/l/20.jpg", m.CoverImageURL)
	assert.Equal(t, "https://anilist.co/anime/20", m.SiteURL)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `oops`, domain.ErrUpstreamUnavailable},
		{"rate limited", http.StatusTooManyRequests, `{"errors":[{"message":"Too Many Requests.","status":429}]}`, domain.ErrUpstreamUnavailable},
		{"malformed json", http.StatusOK, `{"data":`, domain.ErrUpstreamUnavailable},
		{"graphql error", http.StatusOK, `{"data":null,"errors":[{"message":"Internal Server Error","status":500}]}`, domain.ErrUpstreamUnavailable},
		{"http not found", http.StatusNotFound, `{"data":{"Media":null},"errors":[{"message":"Not Found.","status":404}]}`, domain.ErrNotFound},
		{"null media", http.StatusOK, `{"data":{"Media":null}}`, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			client := anilist.New(anilist.WithEndpoint(srv.URL))

			_, err := client.Media(context.Background(), 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_SearchMissingPage(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"data":{"Page":null}}`, nil)
	client := anilist.New(anilist.WithEndpoint(srv.URL))

	_, err := client.Search(context.Background(), "naruto", 1, 10)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := anilist.New(anilist.WithEndpoint(srv.URL), anilist.WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := client.Search(context.Background(), "naruto", 1, 10)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_TimeoutLeavesCallerClientAlone(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	shared := &http.Client{Timeout: time.Minute}
	client := anilist.New(
		anilist.WithEndpoint(srv.URL),
		anilist.WithHTTPClient(shared),
		anilist.WithTimeout(50*time.Millisecond),
	)

	start := time.Now()
	_, err := client.Search(context.Background(), "naruto", 1, 10)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, time.Minute, shared.Timeout)
}

func TestClient_NilHTTPClientIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	var client *anilist.Client
	require.NotPanics(t, func() {
		client = anilist.New(anilist.WithHTTPClient(nil), anilist.WithTimeout(time.Second), anilist.WithEndpoint(srv.URL))
	})
	page, err := client.Search(context.Background(), "naruto", 1, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, page.Items)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := anilist.New(anilist.WithEndpoint(url))
	_, err := client.Search(context.Background(), "naruto", 1, 10)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
