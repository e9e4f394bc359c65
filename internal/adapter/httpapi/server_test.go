package httpapi_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/kma-weather-skills/internal/adapter/httpapi"
	"github.com/couchcryptid/kma-weather-skills/internal/skill"
)

type mockRunner struct {
	skills []skill.Skill
	ready  bool

	ranSkill  string
	ranParams skill.Params
	result    skill.Result
	err       error
}

func (m *mockRunner) Skills() []skill.Skill { return m.skills }

func (m *mockRunner) Skill(name string) (skill.Skill, bool) {
	for _, s := range m.skills {
		if s.Name == name {
			return s, true
		}
	}
	return skill.Skill{}, false
}

func (m *mockRunner) Ready() bool { return m.ready }

func (m *mockRunner) Run(_ context.Context, name string, p skill.Params) (skill.Result, error) {
	m.ranSkill = name
	m.ranParams = p
	return m.result, m.err
}

func newTestServer(runner *mockRunner) *httpapi.Server {
	return httpapi.NewServer(":0", runner, slog.Default())
}

func defaultRunner() *mockRunner {
	return &mockRunner{
		skills: []skill.Skill{
			{Name: "kma-current", Description: "현재 날씨 조회.", Instructions: "..."},
			{Name: "kma-warnings", Description: "기상특보 현황 조회.", Instructions: "..."},
		},
		ready: true,
	}
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	notReady := defaultRunner()
	notReady.ready = false
	srv = newTestServer(notReady)
	rec = httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListSkills(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/skills", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Skills []skill.Skill `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Skills, 2)
	assert.Equal(t, "kma-current", body.Skills[0].Name)
}

func TestGetSkill(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/skills/kma-warnings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body skill.Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "kma-warnings", body.Name)
}

func TestGetSkill_NotFound(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/skills/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunSkill(t *testing.T) {
	runner := defaultRunner()
	runner.result = skill.Result{Skill: "kma-current", Text: "🌤️ 현재 날씨 (초단기실황)"}
	srv := newTestServer(runner)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/v1/skills/kma-current/run",
		strings.NewReader(`{"lat":37.5665,"lon":126.978}`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kma-current", runner.ranSkill)
	assert.InDelta(t, 37.5665, runner.ranParams.Lat, 1e-9)

	var body skill.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Text, "현재 날씨")
}

func TestRunSkill_EmptyBody(t *testing.T) {
	runner := defaultRunner()
	runner.result = skill.Result{Skill: "kma-warnings", Text: "✅"}
	srv := newTestServer(runner)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/v1/skills/kma-warnings/run", nil)
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunSkill_MalformedBody(t *testing.T) {
	srv := newTestServer(defaultRunner())
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/v1/skills/kma-current/run", strings.NewReader("{"))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunSkill_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown skill", skill.ErrUnknownSkill, http.StatusNotFound},
		{"invalid params", skill.ErrInvalidParams, http.StatusBadRequest},
		{"news disabled", skill.ErrNewsDisabled, http.StatusServiceUnavailable},
		{"upstream failure", context.DeadlineExceeded, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := defaultRunner()
			runner.err = tt.err
			srv := newTestServer(runner)
			rec := httptest.NewRecorder()

			req := httptest.NewRequest(http.MethodPost, "/v1/skills/kma-current/run", nil)
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
