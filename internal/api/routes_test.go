package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbasharp/nba-sharp-go/internal/cache"
	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/services"
	"github.com/nbasharp/nba-sharp-go/internal/slate"
)

var testDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

type fakePinger struct{ err error }

func (f fakePinger) HealthCheck(context.Context) error { return f.err }

type fakePipeline struct {
	report *services.PipelineReport
	err    error
}

func (f *fakePipeline) Today() time.Time { return testDate }

func (f *fakePipeline) RunDailyUpdate(context.Context) (*services.PipelineReport, error) {
	return f.report, f.err
}

func (f *fakePipeline) RunProjections(_ context.Context, gameDate time.Time) (*services.PipelineReport, error) {
	return f.report, f.err
}

func (f *fakePipeline) RunFull(context.Context) (*services.PipelineReport, error) {
	return f.report, f.err
}

type fakeMatchupBuilder struct {
	rows int
	err  error
}

func (f *fakeMatchupBuilder) BuildForDate(context.Context, time.Time) (int, error) {
	return f.rows, f.err
}

type fakeMatchupRead struct{ rows []*models.GameMatchup }

func (f *fakeMatchupRead) ReplaceForDate(_ context.Context, _ time.Time, rows []*models.GameMatchup) (int, error) {
	f.rows = rows
	return len(rows), nil
}

func (f *fakeMatchupRead) ForDate(context.Context, time.Time) ([]*models.GameMatchup, error) {
	return f.rows, nil
}

type fakeProjRead struct{ rows []*models.PlayerProjection }

func (f *fakeProjRead) ReplaceForDate(_ context.Context, _ time.Time, rows []*models.PlayerProjection) (int, error) {
	f.rows = rows
	return len(rows), nil
}

func (f *fakeProjRead) ForDate(context.Context, time.Time) ([]*models.PlayerProjection, error) {
	return f.rows, nil
}

type fakeScheduler struct{ status services.SchedulerStatus }

func (f *fakeScheduler) Status() services.SchedulerStatus { return f.status }

type testDeps struct {
	pipeline  *fakePipeline
	matchups  *fakeMatchupBuilder
	matchupDB *fakeMatchupRead
	projDB    *fakeProjRead
	projCache *cache.ProjectionCache
}

func testRouter(t *testing.T) (*gin.Engine, *testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	deps := &testDeps{
		pipeline:  &fakePipeline{report: &services.PipelineReport{GameDate: testDate}},
		matchups:  &fakeMatchupBuilder{rows: 4},
		matchupDB: &fakeMatchupRead{},
		projDB:    &fakeProjRead{},
		projCache: cache.NewProjectionCache(rdb, time.Hour),
	}

	h := NewHandlers(
		fakePinger{}, fakePinger{},
		deps.pipeline, deps.matchups, deps.matchupDB, deps.projDB,
		deps.projCache, slate.NewLoader(log), cache.NewSlateCache(rdb, time.Hour),
		&fakeScheduler{status: services.SchedulerStatus{Running: true, Spec: "0 12 * * *"}},
		log,
	)
	router := gin.New()
	SetupRoutes(router, h)
	return router, deps
}

func TestHealthCheckOK(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSlateUploadAndReport(t *testing.T) {
	router, _ := testRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "slate.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Name,Team,Opp,Salary,Min\nJayson Tatum,BOS,MIA,10000,36\nBench Guy,BOS,MIA,3000,5\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slate?date=2026-01-15", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["entries"])
	assert.Equal(t, float64(1), resp["dropped_low_mins"])
}

func TestSlateUploadMissingFile(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/slate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlateUploadBadHeader(t *testing.T) {
	router, _ := testRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "slate.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Name,Team,Min\nJayson Tatum,BOS,36\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetProjectionsFallsBackToDatabase(t *testing.T) {
	router, deps := testRouter(t)
	deps.projDB.rows = []*models.PlayerProjection{{Player: "Jayson Tatum", Team: "BOS", FPProj: 52.3}}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projections?date=2026-01-15", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jayson Tatum")
}

func TestGetProjectionsCSV(t *testing.T) {
	router, deps := testRouter(t)
	require.NoError(t, deps.projCache.Save(context.Background(), testDate,
		[]*models.PlayerProjection{{Player: "Jayson Tatum", Team: "BOS", FPProj: 52.3}}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projections?date=2026-01-15&format=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "52.30")
}

func TestGetProjectionsNotFound(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projections?date=2026-01-15", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProjectionsBadDate(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projections?date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerProjectionsSlateMissing(t *testing.T) {
	router, deps := testRouter(t)
	deps.pipeline.report = &services.PipelineReport{GameDate: testDate, SlateMissing: true}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/projections", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTriggerMatchups(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/matchups?date=2026-01-15", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rows":4`)
}

func TestSchedulerStatus(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/scheduler", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":true`)
}

func TestGetMatchupsNotFound(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/matchups?date=2026-01-15", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
