package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/llm"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/parsing"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/pipeline"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/server/ratelimit"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/storage"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

type fakeExtractor struct {
	result *pipeline.Result
	err    error
	gotReq types.ExtractCVRequest
	gotID  uuid.UUID
	calls  int
}

func (f *fakeExtractor) Run(_ context.Context, userID uuid.UUID, req types.ExtractCVRequest) (*pipeline.Result, error) {
	f.calls++
	f.gotID = userID
	f.gotReq = req
	return f.result, f.err
}

type fakeProfiles map[uuid.UUID]types.Profile

func (f fakeProfiles) GetProfile(_ context.Context, userID uuid.UUID) (types.Profile, error) {
	return f[userID], nil
}

type testEnv struct {
	server    *Server
	extractor *fakeExtractor
	jwt       *JWTService
	userID    uuid.UUID
	token     string
}

func newTestEnv(t *testing.T, profiles ProfileSource, rl *ratelimit.Config) *testEnv {
	t.Helper()
	jwtService := setupTestJWTService(t, "")
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)

	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	extractor := &fakeExtractor{}
	s, err := New(Config{
		Port:           0,
		Extractor:      extractor,
		Profiles:       profiles,
		TokenValidator: jwtService.AsTokenValidator(),
		RateLimit:      rl,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return &testEnv{server: s, extractor: extractor, jwt: jwtService, userID: userID, token: token}
}

func (e *testEnv) do(method, target, contentType, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:1234"
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Extractor: &fakeExtractor{}})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodGet, "/health", "", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodOptions, "/extract-cv", "", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, 0, env.extractor.calls)
}

func TestExtractCV_Success(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.extractor.result = &pipeline.Result{
		Data: &types.CVData{
			PersonalInfo:   types.PersonalInfo{FirstName: "Jane"},
			WorkExperience: []types.WorkExperience{{Company: "Acme"}},
		},
		Job: &types.ExtractionJob{RequestID: "req-1", Strategy: types.StrategyFullText},
	}

	w := env.do(http.MethodPost, "/extract-cv", "application/json", `{"cvFilePath":"u/cv.pdf"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decodeEnvelope(t, w)
	assert.Equal(t, true, out["success"])
	assert.Nil(t, out["debug"], "debug output only on request")
	data := out["data"].(map[string]any)
	assert.Equal(t, "Jane", data["personalInfo"].(map[string]any)["firstName"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, env.userID, env.extractor.gotID)
	assert.Equal(t, "u/cv.pdf", env.extractor.gotReq.CVFilePath)
}

func TestExtractCV_Debug(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.extractor.result = &pipeline.Result{
		Data: &types.CVData{},
		Job:  &types.ExtractionJob{RequestID: "req-1", Strategy: types.StrategyBase64, Provider: "groq"},
	}

	w := env.do(http.MethodPost, "/extract-cv", "application/json", `{"cvFilePath":"cv.pdf","debug":true}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	debug := decodeEnvelope(t, w)["debug"].(map[string]any)
	assert.Equal(t, "base64_snippet", debug["strategy"])
	assert.Equal(t, "groq", debug["provider"])
}

func TestExtractCV_RequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		authed  bool
		status  int
		message string
	}{
		{name: "no token", body: `{"cvFilePath":"cv.pdf"}`, authed: false, status: http.StatusUnauthorized, message: "Unauthorized"},
		{name: "invalid json", body: `{"cvFilePath":`, authed: true, status: http.StatusBadRequest, message: "Invalid request body"},
		{name: "missing path", body: `{}`, authed: true, status: http.StatusBadRequest, message: "cvFilePath is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, nil)
			w := env.do(http.MethodPost, "/extract-cv", "application/json", tt.body, tt.authed)

			assert.Equal(t, tt.status, w.Code)
			out := decodeEnvelope(t, w)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tt.message, out["error"])
			assert.Equal(t, 0, env.extractor.calls)
		})
	}
}

func TestExtractCV_PipelineErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "download failure",
			err:     &pipeline.StageError{Stage: pipeline.StageDownload, Message: "Failed to download CV", Cause: &storage.Error{Path: "cv.pdf", Message: "HTTP status 404", Cause: storage.ErrNotFound}},
			status:  http.StatusInternalServerError,
			message: "Failed to download CV: storage error for cv.pdf: HTTP status 404: object not found",
		},
		{
			name:    "no provider configured",
			err:     &pipeline.StageError{Stage: pipeline.StageProvider, Cause: &parsing.ConfigError{Cause: llm.ErrNoProvider}},
			status:  http.StatusBadRequest,
			message: llm.ErrNoProvider.Error(),
		},
		{
			name:    "provider failure",
			err:     &pipeline.StageError{Stage: pipeline.StageExtract, Cause: &parsing.APICallError{Message: "failed", Cause: &llm.HTTPError{StatusCode: 401, Body: "bad key"}}},
			status:  http.StatusBadGateway,
			message: MsgAIFailure,
		},
		{
			name:    "unparseable reply",
			err:     &pipeline.StageError{Stage: pipeline.StageExtract, Cause: &parsing.ParseError{Message: "bad json"}},
			status:  http.StatusBadGateway,
			message: MsgAIFailure,
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, nil)
			env.extractor.err = tt.err

			w := env.do(http.MethodPost, "/extract-cv", "application/json", `{"cvFilePath":"cv.pdf"}`, true)
			assert.Equal(t, tt.status, w.Code)
			out := decodeEnvelope(t, w)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tt.message, out["error"])
		})
	}
}

func TestExtractProfile_JSONBody(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	body := `{"firstName":"Jane","lastName":"Doe","phone":"+15551234567",
		"workExperience":[{"company":"Acme","title":"Engineer","startDate":"2020","bullets":["• Shipped it"]}]}`

	w := env.do(http.MethodPost, "/extract-profile", "application/json", body, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decodeEnvelope(t, w)
	assert.Equal(t, true, out["success"])
	data := out["data"].(map[string]any)
	assert.Equal(t, "Jane Doe", data["contact"].(map[string]any)["name"])
	assert.Equal(t, "+1 5551234567", data["contact"].(map[string]any)["phone"])
	jobs := data["experience"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, []any{"Shipped it"}, jobs[0].(map[string]any)["bullets"])
	assert.Equal(t, "request", data["metadata"].(map[string]any)["source"])
}

func TestExtractProfile_TextFormat(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodPost, "/extract-profile?format=text", "application/json", `{"name":"Jane Doe","skills":["Go","SQL"]}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	out := decodeEnvelope(t, w)
	assert.Equal(t, "Jane Doe\n\nSKILLS\nGo, SQL", out["text"])
	assert.Nil(t, out["data"])
}

func TestExtractProfile_HTMLPage(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	page := `<html><body><h1 data-profile-field="fullName">Jane Doe</h1>
		<div data-profile-job><span data-profile-field="company">Acme</span><span data-profile-field="title">Engineer</span></div>
		</body></html>`

	w := env.do(http.MethodPost, "/extract-profile", "text/html; charset=utf-8", page, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeEnvelope(t, w)["data"].(map[string]any)
	assert.Equal(t, "Jane Doe", data["contact"].(map[string]any)["name"])
	assert.Len(t, data["experience"], 1)
}

func TestExtractProfile_StoredProfile(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.server.profiles = fakeProfiles{env.userID: {"first_name": "Stored", "last_name": "User", "work_experience": []any{}}}

	w := env.do(http.MethodPost, "/extract-profile", "", "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeEnvelope(t, w)["data"].(map[string]any)
	assert.Equal(t, "Stored User", data["contact"].(map[string]any)["name"])
	assert.Equal(t, []any{}, data["experience"])
}

func TestExtractProfile_Errors(t *testing.T) {
	tests := []struct {
		name        string
		profiles    ProfileSource
		target      string
		contentType string
		body        string
		status      int
	}{
		{name: "bad format", target: "/extract-profile?format=pdf", body: `{}`, status: http.StatusBadRequest},
		{name: "invalid json", target: "/extract-profile", contentType: "application/json", body: `[1,2]`, status: http.StatusBadRequest},
		{name: "null body", target: "/extract-profile", contentType: "application/json", body: `null`, status: http.StatusBadRequest},
		{name: "empty body without store", target: "/extract-profile", status: http.StatusBadRequest},
		{name: "no stored profile", profiles: fakeProfiles{}, target: "/extract-profile", status: http.StatusNotFound},
		{name: "page without fields", target: "/extract-profile", contentType: "text/html", body: `<p>hi</p>`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.profiles, nil)
			w := env.do(http.MethodPost, tt.target, tt.contentType, tt.body, true)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, false, decodeEnvelope(t, w)["success"])
		})
	}
}

func TestExtractProfile_RequiresAuth(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	w := env.do(http.MethodPost, "/extract-profile", "application/json", `{"name":"x"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit_ExtractCV(t *testing.T) {
	env := newTestEnv(t, nil, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/extract-cv", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	env.extractor.result = &pipeline.Result{Data: &types.CVData{}, Job: &types.ExtractionJob{}}

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodPost, "/extract-cv", "application/json", `{"cvFilePath":"cv.pdf"}`, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := env.do(http.MethodPost, "/extract-cv", "application/json", `{"cvFilePath":"cv.pdf"}`, true)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, false, decodeEnvelope(t, w)["success"])
	assert.Equal(t, 2, env.extractor.calls)

	// Health checks are never limited
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health", "", "", false).Code)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "x", Message: "bad"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrNotFound{Resource: "profile"}))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&parsing.ParseError{Message: "m"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}
