package history

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerfit-workers/internal/careerfit"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *elasticsearch.Client {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: rt,
	})
	require.NoError(t, err)
	return client
}

func sampleSnapshot() Snapshot {
	return NewSnapshot("42", "http", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), []careerfit.CareerPrediction{
		{Career: "Data Scientist", MatchScore: 81},
		{Career: "Software Engineer", MatchScore: 77},
	})
}

func TestElasticArchive_Save(t *testing.T) {
	snap := sampleSnapshot()
	var gotPath, gotMethod string
	var gotDoc Snapshot

	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotPath, gotMethod = r.URL.Path, r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		return jsonResponse(http.StatusCreated, `{"result":"created"}`), nil
	})

	err := NewElasticArchive(client, "").Save(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, "/career-predictions/_doc/"+snap.ID, gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "42", gotDoc.UserID)
	assert.Equal(t, "Data Scientist", gotDoc.TopCareer())
}

func TestElasticArchive_SaveError(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`), nil
	})

	err := NewElasticArchive(client, "snapshots").Save(context.Background(), sampleSnapshot())
	assert.Error(t, err)
}

func TestElasticArchive_Latest(t *testing.T) {
	snap := sampleSnapshot()
	doc, err := json.Marshal(snap)
	require.NoError(t, err)

	var query map[string]interface{}
	var gotPath string
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		return jsonResponse(http.StatusOK, `{"hits":{"hits":[{"_source":`+string(doc)+`}]}}`), nil
	})

	got, err := NewElasticArchive(client, "snapshots").Latest(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "/snapshots/_search", gotPath)
	assert.Equal(t, snap.ID, got.ID)
	assert.True(t, snap.AnalysisDate.Equal(got.AnalysisDate))
	require.Len(t, got.Predictions, 2)
	assert.Equal(t, 81, got.Predictions[0].MatchScore)

	term := query["query"].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "42", term["userId.keyword"])
}

func TestElasticArchive_LatestNotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "no hits", status: http.StatusOK, body: `{"hits":{"hits":[]}}`},
		{name: "missing index", status: http.StatusNotFound, body: `{"error":{"type":"index_not_found_exception"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(*http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})
			_, err := NewElasticArchive(client, "").Latest(context.Background(), "42")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)
		})
	}
}

func TestElasticArchive_SearchFailure(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{}`), nil
	})
	_, err := NewElasticArchive(client, "").Latest(context.Background(), "42")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemoryArchive(t *testing.T) {
	archive := NewMemoryArchive()
	ctx := context.Background()

	_, err := archive.Latest(ctx, "42")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	older := sampleSnapshot()
	newer := NewSnapshot("42", "queue", older.AnalysisDate.Add(time.Hour), nil)
	require.NoError(t, archive.Save(ctx, newer))
	require.NoError(t, archive.Save(ctx, older))

	got, err := archive.Latest(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Empty(t, got.TopCareer())
}
