package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelcore/internal/backup"
	"hostelcore/internal/blob"
	"hostelcore/internal/core"
	"hostelcore/internal/fixtures"
	"hostelcore/internal/infra/cache"
)

type pageBody struct {
	Data       []map[string]any `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type testEnv struct {
	handler http.Handler
	svc     *core.Service
	reg     *prometheus.Registry
}

func newTestEnv(t *testing.T, mutate ...func(*Options)) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	seed, err := fixtures.Default()
	require.NoError(t, err)
	applied, err := fixtures.Apply(context.Background(), svc.Store(), seed)
	require.NoError(t, err)
	require.True(t, applied)

	reg := prometheus.NewRegistry()
	opts := Options{Service: svc, Registerer: reg, Gatherer: reg}
	for _, fn := range mutate {
		fn(&opts)
	}
	r, err := NewRouter(opts)
	require.NoError(t, err)
	return testEnv{handler: r, svc: svc, reg: reg}
}

func (e testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestListRoomsPaginates(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, BasePath+"/rooms?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[pageBody](t, rec)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 2)

	rec = env.do(t, http.MethodGet, BasePath+"/rooms?limit=2&page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[pageBody](t, rec).Data, 1)
}

func TestPagingErrorsAreValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/rooms?page=0", "/rooms?limit=0", "/rooms?page=abc"} {
		rec := env.do(t, http.MethodGet, BasePath+target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		body := decode[ErrorResponse](t, rec)
		assert.Equal(t, "validation", string(body.Kind), target)
	}
}

func TestGetMissingRecordIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, BasePath+"/students/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", string(decode[ErrorResponse](t, rec).Kind))
}

func TestStudentDetailResolvesRelations(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, BasePath+"/students/stu-brian", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Brian Achieng", body["fullName"])
	guardian, ok := body["guardian"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "g-sarah", guardian["id"])
	bed, ok := body["bed"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bed-a101-1", bed["id"])
}

func TestBedStatusFilterAcceptsCommaList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, BasePath+"/beds?status=Occupied,Maintenance&limit=50", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[pageBody](t, rec)
	assert.Equal(t, 3, page.Total)
	for _, bed := range page.Data {
		assert.Contains(t, []any{"Occupied", "Maintenance"}, bed["status"])
	}
}

func TestRoomLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, BasePath+"/rooms", `{"roomNumber":"C-301","floor":3,"roomType":"Single","capacity":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Active", created["status"])

	rec = env.do(t, http.MethodPatch, BasePath+"/rooms/"+id, `{"capacity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, rec)["capacity"])

	rec = env.do(t, http.MethodPost, BasePath+"/rooms", `{"roomNumber":"c-301","capacity":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodDelete, BasePath+"/rooms/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, BasePath+"/rooms/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, BasePath+"/rooms", `{"roomNumber":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", string(decode[ErrorResponse](t, rec).Kind))

	rec = env.do(t, http.MethodPost, BasePath+"/rooms", `{"capacity":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHostelAssignment(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, BasePath+"/students/stu-grace/hostel", `{"roomId":"room-a101","bedId":"bed-a101-3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "bed-a101-3", decode[map[string]any](t, rec)["bedId"])

	rec = env.do(t, http.MethodPost, BasePath+"/students/stu-grace/hostel", `{"roomId":"room-a101","bedId":"bed-a101-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, BasePath+"/students/stu-grace/hostel", `{"roomId":"room-a101"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, BasePath+"/students/stu-grace/hostel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[map[string]any](t, rec)["bedId"])

	rec = env.do(t, http.MethodGet, BasePath+"/beds/bed-a101-3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Available", decode[map[string]any](t, rec)["status"])
}

func TestBedMaintenanceRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, BasePath+"/beds/bed-b201-1/maintenance", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Maintenance", decode[map[string]any](t, rec)["status"])

	rec = env.do(t, http.MethodDelete, BasePath+"/beds/bed-b201-1/maintenance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Available", decode[map[string]any](t, rec)["status"])

	rec = env.do(t, http.MethodPost, BasePath+"/beds/bed-a101-1/maintenance", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLookupNamesRouteIsNotShadowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, BasePath+"/lookups/names", "")
	require.Equal(t, http.StatusOK, rec.Code)
	names := decode[map[string]map[string]string](t, rec)
	assert.Equal(t, "Female", names["gender"]["lk-gender-f"])
}

func TestResponseCacheTracksRevision(t *testing.T) {
	mem := cache.NewMemory(16)
	env := newTestEnv(t, func(o *Options) {
		o.Cache = mem
		o.CacheTTL = time.Minute
	})

	first := env.do(t, http.MethodGet, BasePath+"/guardians", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := env.do(t, http.MethodGet, BasePath+"/guardians", "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	rec := env.do(t, http.MethodPost, BasePath+"/guardians", `{"name":"New Guardian","phone":"+256701000099","relation":"Aunt"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	third := env.do(t, http.MethodGet, BasePath+"/guardians", "")
	require.Equal(t, http.StatusOK, third.Code)
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 3, decode[pageBody](t, third).Total)
}

func TestResponseCacheDoesNotOutliveRestart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "hostel.db")
	shared := cache.NewMemory(16)
	boot := func() (testEnv, io.Closer) {
		store, closer, err := core.OpenPersistentStore(core.StorageOptions{Driver: core.StorageSQLite, SQLitePath: path}, core.NewDefaultRulesEngine())
		require.NoError(t, err)
		svc := core.NewService(store)
		r, err := NewRouter(Options{Service: svc, Cache: shared, CacheTTL: time.Minute})
		require.NoError(t, err)
		return testEnv{handler: r, svc: svc}, closer
	}

	first, closer := boot()
	before := first.do(t, http.MethodGet, BasePath+"/menu-items", "")
	require.Equal(t, http.StatusOK, before.Code)
	rec := first.do(t, http.MethodPost, BasePath+"/menu-items", `{"name":"Stew"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, closer.Close())

	second, closer := boot()
	defer closer.Close()
	after := second.do(t, http.MethodGet, BasePath+"/menu-items", "")
	require.Equal(t, http.StatusOK, after.Code)
	assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
	assert.Equal(t, 1, decode[pageBody](t, after).Total)
	assert.Contains(t, after.Body.String(), "Stew")
}

func TestAdminSnapshots(t *testing.T) {
	blobs, err := blob.Open(context.Background(), blob.Options{Driver: blob.DriverMemory})
	require.NoError(t, err)
	env := newTestEnv(t, func(o *Options) {
		o.Archiver = backup.New(o.Service.Store().(backup.StateStore), blobs)
	})

	rec := env.do(t, http.MethodPost, "/admin/snapshots", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	key, _ := decode[map[string]any](t, rec)["key"].(string)
	require.True(t, strings.HasPrefix(key, backup.Prefix), key)

	rec = env.do(t, http.MethodDelete, BasePath+"/students/stu-ivan", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin/snapshots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[map[string][]map[string]any](t, rec)
	require.Len(t, listed["data"], 1)

	rec = env.do(t, http.MethodPost, "/admin/snapshots/restore", `{"key":"`+key+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, BasePath+"/students/stu-ivan", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin/snapshots/restore", `{"key":"elsewhere/x.json"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin/snapshots/restore", `{"key":"`+backup.Prefix+`missing.json"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesAbsentWithoutArchiver(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/admin/snapshots", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOperationalRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])

	rec = env.do(t, http.MethodGet, "/docs/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/students/{id}/hostel")

	rec = env.do(t, http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", string(decode[ErrorResponse](t, rec).Kind))

	rec = env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hostelcore_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestStatusOfMapsUnknownErrorsToInternal(t *testing.T) {
	status, kind := statusOf(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", string(kind))
}
