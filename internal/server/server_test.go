package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-drafter/internal/generation"
	"github.com/jonathan/outreach-drafter/internal/llm"
	"github.com/jonathan/outreach-drafter/internal/trace"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// fakeClient returns a canned model response without network access.
type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) GenerateJSON(_ context.Context, _, _ string, _ llm.ModelTier, _ float32) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel(_ llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

const fakeVariantsJSON = `{"variants":[
	{"label":"short","text":"Hi Dana, saw your analytics work."},
	{"label":"direct","text":"Hi Dana, your dashboard work stood out."},
	{"label":"warm","text":"Hi Dana, fellow data person here."}
]}`

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if _, ok := os.LookupEnv("JWT_SECRET"); !ok {
		t.Setenv("JWT_SECRET", "")
	}

	svc := generation.NewService(&fakeClient{response: fakeVariantsJSON}, trace.NewNopWriter())
	s, err := New(cfg, svc)
	require.NoError(t, err)
	return s
}

func newJSONRequest(method, path, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, path, nil)
	}
	return httptest.NewRequest(method, path, strings.NewReader(body))
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	return serve(s, newJSONRequest(method, path, body))
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodGet, "/generate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodOptions, "/generate", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestHandleGenerate_InvalidBody(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodPost, "/generate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_MissingTarget(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodPost, "/generate", `{"my_profile":{"headline":"CS student"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "target_profile or target_url")
}

func TestHandleGenerate_InlineProfiles(t *testing.T) {
	s := newTestServer(t, Config{})

	body := `{
		"my_profile": {"headline": "CS student at Columbia University", "schools": ["Columbia University"]},
		"target_profile": {
			"name": "Dana Rivera",
			"headline": "Data Analyst at Acme",
			"top_experiences": [{"title": "Data Analyst", "company": "Acme"}]
		}
	}`
	rec := doRequest(s, http.MethodPost, "/generate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Variants, 3)
	assert.Len(t, resp.Validations, 3)
	assert.Empty(t, resp.DraftID, "no draft id without a store")

	for _, v := range resp.Variants {
		assert.LessOrEqual(t, len(v.Text), types.MaxVariantChars)
		assert.True(t, strings.HasSuffix(v.Text, types.CTAForVariant(v.Label)),
			"variant %q must end with its call to action", v.Label)
	}
}

func TestHandleGenerate_NoSenderProfile(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodPost, "/generate", `{"target_profile":{"name":"Dana Rivera"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no sender profile")
}

func TestHandleGenerate_SenderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sender.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"headline":"CS student"}`), 0o644))

	s := newTestServer(t, Config{SenderProfilePath: path})

	rec := doRequest(s, http.MethodPost, "/generate", `{"target_profile":{"name":"Dana Rivera"}}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandleGenerate_BadSenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sender.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	s := newTestServer(t, Config{SenderProfilePath: path})

	rec := doRequest(s, http.MethodPost, "/generate", `{"target_profile":{"name":"Dana Rivera"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not valid JSON")
}

func TestHandleScrape_MissingURL(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doRequest(s, http.MethodPost, "/scrape", `{"url": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "url is required")
}

func TestStorageEndpointsWithoutStore(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/profile", ""},
		{http.MethodPut, "/profile", `{"headline":"CS student"}`},
		{http.MethodGet, "/drafts", ""},
	}
	for _, tt := range tests {
		rec := doRequest(s, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", tt.method, tt.path)
	}
}
