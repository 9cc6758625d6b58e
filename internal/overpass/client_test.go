package overpass

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-finder/internal/config"
	"github.com/places-finder/internal/domain"
)

func newTestClient(url string) *client {
	cfg := &config.OverpassConfig{InterpreterURL: url, Margin: DefaultMargin}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_FetchPlaces(t *testing.T) {
	loc := domain.Location{Latitude: 52.5, Longitude: 13.4, Mode: domain.Manual}
	filters := domain.NewFilterSet("diet:vegan")

	t.Run("successful request", func(t *testing.T) {
		var gotMethod, gotBody, gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"elements":[{"id":1,"lat":10,"lon":20,"tags":{}}]}`))
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)

		require.Len(t, places, 1)
		assert.Equal(t, domain.Place{ID: 1, Lat: 10, Lon: 20, Tags: map[string]string{}}, places[0])
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.True(t, strings.HasPrefix(gotContentType, "text/plain"))
		assert.Equal(t, BuildQuery(filters, BuildBoundingBox(loc, DefaultMargin)), gotBody)
	})

	t.Run("tags and order preserved without re-filtering", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"version":0.6,"elements":[
				{"type":"node","id":7,"lat":52.51,"lon":13.41,"tags":{"name":"Cafe","diet:vegan":"yes"}},
				{"type":"node","id":3,"lat":60,"lon":30}
			]}`))
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)

		require.Len(t, places, 2)
		assert.Equal(t, int64(7), places[0].ID)
		assert.Equal(t, "Cafe", places[0].Tags["name"])
		// элемент вне области не отбрасывается на клиенте
		assert.Equal(t, int64(3), places[1].ID)
		assert.NotNil(t, places[1].Tags)
	})

	t.Run("missing elements yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"version":0.6}`))
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})

	t.Run("server error yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`runtime error: Query timed out`))
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})

	t.Run("too many requests yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)
		assert.Empty(t, places)
	})

	t.Run("malformed json yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)
		assert.Empty(t, places)
	})

	t.Run("no content yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, DefaultMargin)
		assert.Empty(t, places)
	})

	t.Run("transport failure yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		places := newTestClient(url).FetchPlaces(context.Background(), filters, loc, DefaultMargin)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})

	t.Run("empty filter set skips the request", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		places := newTestClient(server.URL).FetchPlaces(context.Background(), domain.FilterSet{}, loc, DefaultMargin)
		assert.Empty(t, places)
		assert.False(t, called)
	})

	t.Run("non-positive margin falls back to default", func(t *testing.T) {
		var gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.Write([]byte(`{"elements":[]}`))
		}))
		defer server.Close()

		newTestClient(server.URL).FetchPlaces(context.Background(), filters, loc, 0)
		assert.Equal(t, BuildQuery(filters, BuildBoundingBox(loc, DefaultMargin)), gotBody)
	})
}

func TestIsSuccessStatus(t *testing.T) {
	for _, code := range []int{0, 200, 201, 202, 203, 204} {
		assert.True(t, IsSuccessStatus(code), code)
	}
	for _, code := range []int{100, 205, 301, 400, 404, 429, 500, 504} {
		assert.False(t, IsSuccessStatus(code), code)
	}
}

func TestCountOutside(t *testing.T) {
	box := domain.BoundingBox{South: 52, West: 13, North: 53, East: 14}
	places := []domain.Place{
		{ID: 1, Lat: 52.5, Lon: 13.4},
		{ID: 2, Lat: 52, Lon: 14},
		{ID: 3, Lat: 51.9, Lon: 13.5},
		{ID: 4, Lat: 52.5, Lon: 14.01},
	}

	assert.Equal(t, 2, countOutside(box, places))
	assert.Equal(t, 0, countOutside(box, nil))
}
