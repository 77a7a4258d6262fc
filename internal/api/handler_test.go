package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chord-scout/configs"
	"github.com/RyanBlaney/chord-scout/internal/library"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
)

func testRouter(t *testing.T) (*chi.Mux, *library.Store) {
	t.Helper()

	store, err := library.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(store, configs.GetDefaultConfig(), &logging.NoOpLogger{})

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func seedSong(t *testing.T, store *library.Store, title, artist, genre string, symbols ...string) string {
	t.Helper()

	doc := library.SongDocument{
		Title:  title,
		Artist: artist,
		Genre:  genre,
		Sections: []library.SectionDocument{
			{Name: "verse", Chords: symbols},
		},
	}
	id, err := store.SaveSong(doc.ToSong())
	require.NoError(t, err)
	return id
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	r, store := testRouter(t)
	seedSong(t, store, "Let It Be", "The Beatles", "rock", "C", "G", "Am", "F")

	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(1), resp["songs"])
}

func TestSearchEndpoint(t *testing.T) {
	r, store := testRouter(t)
	seedSong(t, store, "Let It Be", "The Beatles", "rock", "C", "G", "Am", "F")
	seedSong(t, store, "Unrelated", "Nobody", "jazz", "Db9", "Gb13")

	rec := doJSON(t, r, http.MethodPost, "/api/search", SearchRequest{
		Chords: []string{"C", "G", "Am", "F"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Let It Be", resp.Results[0].SongTitle)
	assert.InDelta(t, 1.0, resp.Results[0].Confidence, 1e-9)
	assert.Equal(t, len(resp.Results), resp.Stats.Count)
}

func TestSearchEndpointRejectsBadChord(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/search", SearchRequest{
		Chords: []string{"C", "H7"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointRequiresChords(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/search", SearchRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelatedEndpointByID(t *testing.T) {
	r, store := testRouter(t)
	target := seedSong(t, store, "Let It Be", "The Beatles", "rock", "C", "G", "Am", "F")
	seedSong(t, store, "No Woman No Cry", "Bob Marley", "reggae", "C", "G", "Am", "F")
	seedSong(t, store, "Unrelated", "Nobody", "jazz", "Db9", "Gb13", "B7")

	rec := doJSON(t, r, http.MethodPost, "/api/related", RelatedRequest{SongID: target})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RelatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "No Woman No Cry", resp.Results[0].Song.Title)
	assert.InDelta(t, 1.0, resp.Results[0].Similarity, 1e-9)
}

func TestRelatedEndpointInlineSong(t *testing.T) {
	r, store := testRouter(t)
	seedSong(t, store, "No Woman No Cry", "Bob Marley", "reggae", "C", "G", "Am", "F")

	rec := doJSON(t, r, http.MethodPost, "/api/related", RelatedRequest{
		Song: &library.SongDocument{
			Title: "Inline",
			Sections: []library.SectionDocument{
				{Name: "verse", Chords: []string{"G", "D", "Em", "C"}},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RelatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "No Woman No Cry", resp.Results[0].Song.Title)
}

func TestRelatedEndpointRequiresTarget(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/related", RelatedRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelatedEndpointUnknownID(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/related", RelatedRequest{SongID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/analyze", AnalyzeRequest{
		Chords: []string{"G", "D", "Em", "C"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "G", resp.Key)
	assert.Equal(t, []string{"1", "5", "6m", "4"}, resp.Degrees)
}

func TestAnalyzeEndpointExplicitKey(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/analyze", AnalyzeRequest{
		Chords: []string{"C", "G"},
		Key:    "G",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"4", "1"}, resp.Degrees)
}

func TestSongCRUD(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/songs", library.SongDocument{
		Title:  "Creep",
		Artist: "Radiohead",
		Sections: []library.SectionDocument{
			{Name: "verse", Chords: []string{"G", "B", "C", "Cm"}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"]
	require.NotEmpty(t, id)

	rec = doJSON(t, r, http.MethodGet, "/api/songs/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc library.SongDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Creep", doc.Title)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, []string{"G", "B", "C", "Cm"}, doc.Sections[0].Chords)

	rec = doJSON(t, r, http.MethodGet, "/api/songs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var docs []library.SongDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	assert.Len(t, docs, 1)

	rec = doJSON(t, r, http.MethodDelete, "/api/songs/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/songs/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSongRequiresTitle(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/songs", library.SongDocument{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
