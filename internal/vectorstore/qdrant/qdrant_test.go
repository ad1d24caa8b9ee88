package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

type fakeQdrant struct {
	collections map[string]bool
	creates     int
	upserts     []map[string]any
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{collections: map[string]bool{}}
}

func (f *fakeQdrant) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			// GET /collections/{name}
			name := r.URL.Path[len("/collections/"):]
			if !f.collections[name] {
				http.Error(w, `{"status":{"error":"not found"}}`, http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"result":{}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/collections/docs/points":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			for _, p := range body["points"].([]any) {
				f.upserts = append(f.upserts, p.(map[string]any))
			}
			w.Write([]byte(`{"result":{"status":"acknowledged"}}`))
		case r.Method == http.MethodPut:
			name := r.URL.Path[len("/collections/"):]
			f.collections[name] = true
			f.creates++
			w.Write([]byte(`{"result":true}`))
		case r.Method == http.MethodPost:
			if !f.collections["docs"] {
				http.Error(w, `{"status":{"error":"not found"}}`, http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"result":[
				{"id":"a","score":0.9,"payload":{"content":"first"}},
				{"id":"b","score":0.5,"payload":{"content":"second"}},
				{"id":"c","score":0.1,"payload":{}}
			]}`))
		default:
			http.Error(w, "unexpected", http.StatusBadRequest)
		}
	}
}

func newTestStore(t *testing.T, f *fakeQdrant) *Store {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewStore(Config{URL: srv.URL, APIKey: "secret"})
}

func TestEnsureCollectionCreatesWhenAbsent(t *testing.T) {
	f := newFakeQdrant()
	s := newTestStore(t, f)

	require.NoError(t, s.EnsureCollection(context.Background(), "docs", 4))
	assert.Equal(t, 1, f.creates)
	assert.True(t, f.collections["docs"])
}

func TestEnsureCollectionIsIdempotent(t *testing.T) {
	f := newFakeQdrant()
	s := newTestStore(t, f)

	require.NoError(t, s.EnsureCollection(context.Background(), "docs", 4))
	require.NoError(t, s.EnsureCollection(context.Background(), "docs", 4))
	assert.Equal(t, 1, f.creates, "existing collection must not be re-created")
}

func TestEnsureCollectionRejectsBadDimension(t *testing.T) {
	s := newTestStore(t, newFakeQdrant())
	err := s.EnsureCollection(context.Background(), "docs", 0)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestUpsertWritesPointWithPayload(t *testing.T) {
	f := newFakeQdrant()
	f.collections["docs"] = true
	s := newTestStore(t, f)

	chunk := domain.Chunk{ID: "id-1", Content: "some text", Source: "file.pdf", Index: 2}
	require.NoError(t, s.Upsert(context.Background(), "docs", chunk, []float64{1, 2, 3, 4}))

	require.Len(t, f.upserts, 1)
	p := f.upserts[0]
	assert.Equal(t, "id-1", p["id"])
	payload := p["payload"].(map[string]any)
	assert.Equal(t, "some text", payload["content"])
	assert.Equal(t, "file.pdf", payload["source"])
	assert.Equal(t, float64(2), payload["chunk_index"])
}

func TestSearchReturnsRankedResults(t *testing.T) {
	f := newFakeQdrant()
	f.collections["docs"] = true
	s := newTestStore(t, f)

	results, err := s.Search(context.Background(), "docs", []float64{1, 0, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Content)
	assert.Equal(t, 0.9, results[0].Score)
	assert.Equal(t, "", results[2].Content, "missing payload content maps to empty string")
}

func TestSearchFailsOnMissingCollection(t *testing.T) {
	s := newTestStore(t, newFakeQdrant())
	_, err := s.Search(context.Background(), "docs", []float64{1}, 5)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestStoreErrorsWrapNetworkFailures(t *testing.T) {
	s := NewStore(Config{URL: "http://127.0.0.1:1"})
	err := s.EnsureCollection(context.Background(), "docs", 4)
	assert.ErrorIs(t, err, domain.ErrStore)
}
