package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "careerfit-workers/internal/api/http"
	"careerfit-workers/internal/api/http/handlers"
	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/database"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/history"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/predictor"
	"careerfit-workers/internal/userdata"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeService struct {
	predictErr error
	snapshot   *history.Snapshot
	latestErr  error

	predictedFor []string
	inline       []models.UserData
}

func (f *fakeService) Predict(_ context.Context, userID, _ string) (*predictor.Result, error) {
	f.predictedFor = append(f.predictedFor, userID)
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	return &predictor.Result{
		Predictions:  careerfit.PredictCareerPaths(models.UserData{}),
		AnalysisDate: "2024-01-01T00:00:00.000Z",
	}, nil
}

func (f *fakeService) PredictFromData(_ context.Context, _ string, data models.UserData, _ string) *predictor.Result {
	f.inline = append(f.inline, data)
	return &predictor.Result{Predictions: careerfit.PredictCareerPaths(data), AnalysisDate: "2024-01-01T00:00:00.000Z"}
}

func (f *fakeService) Latest(context.Context, string) (*history.Snapshot, error) {
	return f.snapshot, f.latestErr
}

type fakePinger struct {
	name string
	err  error
}

func (p fakePinger) Name() string               { return p.name }
func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestApp(t *testing.T, svc handlers.CareerService, pingers ...fakePinger) *fiber.App {
	t.Helper()
	log := logger.NewTestLogger(t)
	app := apihttp.NewApp(apihttp.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second}, log)

	backends := make([]database.Pinger, 0, len(pingers))
	for _, p := range pingers {
		backends = append(backends, p)
	}
	apihttp.Register(app, handlers.NewCareerHandler(svc, nil, log), handlers.NewHealthHandler(time.Second, backends...))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// ==========================
// Prediction Endpoint Tests
// ==========================

func TestPredict_Success(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(t, svc)

	status, body := do(t, app, http.MethodPost, "/api/career/predict", `{"userId": 42}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "2024-01-01T00:00:00.000Z", body["analysisDate"])
	assert.Len(t, body["predictions"], careerfit.DefaultTopN)
	assert.Equal(t, []string{"42"}, svc.predictedFor)
}

func TestPredict_InlineUserData(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(t, svc)

	status, _ := do(t, app, http.MethodPost, "/api/career/predict",
		`{"userId":"7","userData":{"activities":[{"activityType":"coding_practice","activityDetails":{"language":"python"},"score":90}]}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, svc.predictedFor)
	require.Len(t, svc.inline, 1)
	assert.Equal(t, `{"language":"python"}`, svc.inline[0].Activities[0].ActivityDetails.Compact())
}

func TestPredict_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"userId":`},
		{name: "missing user id", body: `{}`},
		{name: "blank user id", body: `{"userId":"   "}`},
		{name: "boolean user id", body: `{"userId":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			status, body := do(t, newTestApp(t, svc), http.MethodPost, "/api/career/predict", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
			assert.Empty(t, svc.predictedFor)
		})
	}
}

func TestPredict_ServiceFailure(t *testing.T) {
	for _, cause := range []error{userdata.ErrUserNotFound, errors.New("connection refused")} {
		svc := &fakeService{predictErr: cause}
		status, body := do(t, newTestApp(t, svc), http.MethodPost, "/api/career/predict", `{"userId":"42"}`)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, map[string]interface{}{"success": false, "error": "Failed to generate career predictions"}, body)
	}
}

// ==========================
// Resources and History Tests
// ==========================

func TestResources(t *testing.T) {
	status, body := do(t, newTestApp(t, &fakeService{}), http.MethodPost, "/api/career/resources",
		`{"career":"Software Engineer","missingSkills":["algorithms"],"userLevel":"beginner"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Software Engineer", body["career"])
	assert.NotEmpty(t, body["generatedAt"])

	resources := body["resources"].(map[string]interface{})
	tips := resources["networkingTips"].([]interface{})
	assert.Equal(t, "Join software engineer groups on LinkedIn", tips[0])
}

func TestResources_MissingCareer(t *testing.T) {
	status, body := do(t, newTestApp(t, &fakeService{}), http.MethodPost, "/api/career/resources", `{"missingSkills":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestHistory(t *testing.T) {
	snap := history.NewSnapshot("42", "http", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)

	t.Run("found", func(t *testing.T) {
		status, body := do(t, newTestApp(t, &fakeService{snapshot: &snap}), http.MethodGet, "/api/career/history/42", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, snap.ID, body["snapshot"].(map[string]interface{})["id"])
	})

	t.Run("not found", func(t *testing.T) {
		status, _ := do(t, newTestApp(t, &fakeService{latestErr: history.ErrSnapshotNotFound}), http.MethodGet, "/api/career/history/42", "")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("archive down", func(t *testing.T) {
		status, _ := do(t, newTestApp(t, &fakeService{latestErr: errors.New("es down")}), http.MethodGet, "/api/career/history/42", "")
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}

// ==========================
// Probe Tests
// ==========================

func TestHealthAndReady(t *testing.T) {
	app := newTestApp(t, &fakeService{}, fakePinger{name: "postgres"})

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, body = do(t, app, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestReady_BackendDown(t *testing.T) {
	app := newTestApp(t, &fakeService{}, fakePinger{name: "postgres"}, fakePinger{name: "redis", err: errors.New("refused")})

	status, body := do(t, app, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, map[string]interface{}{"redis": "refused"}, body["details"])
}

func TestMetricsEndpoint(t *testing.T) {
	status, _ := do(t, newTestApp(t, &fakeService{}), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRegisterProbes_NoCareerRoutes(t *testing.T) {
	log := logger.NewTestLogger(t)
	app := apihttp.NewApp(apihttp.ServerConfig{}, log)
	apihttp.RegisterProbes(app, handlers.NewHealthHandler(time.Second))

	status, _ := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost, "/api/career/predict", `{"userId":"1"}`)
	assert.Equal(t, http.StatusNotFound, status)
}
