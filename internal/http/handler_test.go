package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"
	"github.com/tuannt39-study/jhipster-sample/internal/search"
	"github.com/tuannt39-study/jhipster-sample/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	svcs := service.NewServices(repository.NewMemorySet(), service.Options{
		Index:  search.NewIndex(),
		Logger: zap.NewNop(),
	})
	srv := httptest.NewServer(NewAPI(svcs, zap.NewNop(), []string{"http://localhost:9000"}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestJobLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/jobs", "application/json",
		`{"jobTitle":"Corporate Markets Director","minSalary":42138,"maxSalary":82698}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/jobs/1", resp.Header.Get("Location"))
	assert.Equal(t, "hrApp.job.created", resp.Header.Get(headerAlert))
	assert.Equal(t, "1", resp.Header.Get(headerParams))
	created := decode[domain.Job](t, resp)
	assert.Equal(t, int64(1), created.ID)

	resp = do(t, http.MethodGet, srv.URL+"/api/jobs", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))
	jobs := decode[[]domain.Job](t, resp)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Corporate Markets Director", jobs[0].JobTitle)

	resp = do(t, http.MethodGet, srv.URL+"/api/jobs/count", "", "")
	assert.Equal(t, 1, decode[int](t, resp))

	resp = do(t, http.MethodPut, srv.URL+"/api/jobs/1", "application/json", `{"id":1,"jobTitle":"Lead"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lead", decode[domain.Job](t, resp).JobTitle)

	resp = do(t, http.MethodPatch, srv.URL+"/api/jobs/1", "application/merge-patch+json", `{"id":1,"minSalary":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[domain.Job](t, resp)
	assert.Equal(t, "Lead", patched.JobTitle)
	assert.Equal(t, int64(1), *patched.MinSalary)

	resp = do(t, http.MethodGet, srv.URL+"/api/_search/jobs?query=id:1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.Job](t, resp), 1)

	resp = do(t, http.MethodDelete, srv.URL+"/api/jobs/1", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "hrApp.job.deleted", resp.Header.Get(headerAlert))

	resp = do(t, http.MethodGet, srv.URL+"/api/jobs/1", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateWithID_IsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/regions", "application/json", `{"id":5,"regionName":"EMEA"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "error.idexists", resp.Header.Get(headerError))

	p := decode[Problem](t, resp)
	assert.Equal(t, "region", p.EntityName)
	assert.Equal(t, "idexists", p.ErrorKey)
	assert.Equal(t, http.StatusBadRequest, p.Status)
}

func TestUpdate_IDMismatch(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/tasks", "application/json", `{"title":"a"}`)

	resp := do(t, http.MethodPut, srv.URL+"/api/tasks/1", "application/json", `{"id":2,"title":"b"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "idinvalid", decode[Problem](t, resp).ErrorKey)

	resp = do(t, http.MethodPut, srv.URL+"/api/tasks/7", "application/json", `{"id":7,"title":"b"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "idnotfound", decode[Problem](t, resp).ErrorKey)
}

func TestValidationAndMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/departments", "application/json", `{"departmentName":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/job-histories", "application/json", `{"language":"GERMAN"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/job-histories", "application/json", `{"language":"SPANISH"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/tasks", "application/json", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPagination(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 3; i++ {
		resp := do(t, http.MethodPost, srv.URL+"/api/employees", "application/json", `{"firstName":"A"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := do(t, http.MethodGet, srv.URL+"/api/employees?page=0&size=2&sort=id,desc", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))
	assert.Contains(t, resp.Header.Get("Link"), `rel="next"`)
	assert.Contains(t, resp.Header.Get("Link"), `rel="last"`)

	items := decode[[]domain.Employee](t, resp)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ID)
}

func TestListPagination_HugePage(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/tasks", "application/json", `{"title":"a"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/tasks?page=461168601842738791&size=20", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))
	assert.Empty(t, decode[[]domain.Task](t, resp))

	resp = do(t, http.MethodGet, srv.URL+"/api/tasks?page=-4&size=99999999", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.Task](t, resp), 1)
}

func TestUsers_DuplicateLogin(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/users", "application/json", `{"login":"dup"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/users", "application/json", `{"login":"dup"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error.userexists", resp.Header.Get("X-hrApp-error"))
	assert.Equal(t, "userexists", decode[Problem](t, resp).ErrorKey)

	resp = do(t, http.MethodPost, srv.URL+"/api/users", "application/json", `{"login":"other"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	other := decode[domain.User](t, resp)
	resp = do(t, http.MethodPut, fmt.Sprintf("%s/api/users/%d", srv.URL, other.ID), "application/json",
		fmt.Sprintf(`{"id":%d,"login":"dup"}`, other.ID))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/users", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.User](t, resp), 2)
}

func TestAuthorities(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/authorities", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.Authority](t, resp), 2)

	resp = do(t, http.MethodPost, srv.URL+"/api/authorities", "application/json", `{"name":"ROLE_HR"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/authorities/ROLE_HR", resp.Header.Get("Location"))

	resp = do(t, http.MethodPost, srv.URL+"/api/authorities", "application/json", `{"name":"ROLE_HR"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/api/authorities/ROLE_HR", "application/json", `{"name":"ROLE_HR"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/authorities/ROLE_HR", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/authorities/ROLE_HR", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/_search/authorities?query=x", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExport(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/countries", "application/json", `{"countryName":"Vietnam","region":{"id":4}}`)

	resp := do(t, http.MethodGet, srv.URL+"/api/countries/export", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("countries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "countryName", "region.id"}, rows[0])
	assert.Equal(t, []string{"1", "Vietnam", "4"}, rows[1])
}

func TestOpsRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "UP", decode[map[string]string](t, resp)["status"])
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))

	do(t, http.MethodGet, srv.URL+"/api/regions", "", "")
	resp = do(t, http.MethodGet, srv.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hr_api_requests_total")
}

func TestCORSExposesHeaders(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/regions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:9000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:9000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Expose-Headers"), "X-Total-Count")
}
