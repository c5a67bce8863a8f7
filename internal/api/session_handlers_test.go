package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun/braintalk/internal/api"
	"github.com/haeun/braintalk/internal/models"
	"github.com/haeun/braintalk/internal/repository/sqlite"
	"github.com/haeun/braintalk/internal/session"
	"github.com/haeun/braintalk/internal/testutil"
	"github.com/haeun/braintalk/internal/transcribe"
)

type stubTranscriber struct {
	result *transcribe.Transcription
	err    error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (*transcribe.Transcription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T) (*api.Server, http.Handler) {
	t.Helper()

	database := testutil.NewTestDB(t)
	srv := &api.Server{
		Sessions:    session.NewService(sqlite.NewSessionRepository(database.DB)),
		Transcriber: &stubTranscriber{result: &transcribe.Transcription{Text: "고양이", Confidence: 0.95}},
		DB:          database,
	}
	return srv, srv.Routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func startSession(t *testing.T, handler http.Handler, age int) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{
		"patient": map[string]any{"age": age, "education_years": 12},
		"place":   "병원",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestStartSession(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{
		"patient": map[string]any{"age": 67, "education_years": 12},
		"place":   "병원",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.TrainingSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.SessionID, "session_")
	assert.Equal(t, 67, got.Patient.Age)
}

func TestStartSession_InvalidBody(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown fields are rejected, not silently dropped.
	rec = doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{
		"patient": map[string]any{"age": 67},
		"place":   "병원",
		"bogus":   true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartSession_ValidationError(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]any{
		"patient": map[string]any{"age": -1},
		"place":   "병원",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestCurrentSession_NotFound(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/sessions/current", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveStep(t *testing.T) {
	_, handler := newTestServer(t)
	startSession(t, handler, 67)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/current/steps/1", map[string]any{
		"correct_answers":          8,
		"total_questions":          10,
		"average_response_time_ms": 1250.0,
		"items":                    []any{},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.TrainingSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Step1)
	require.NotNil(t, got.KWABScores)
	assert.InDelta(t, 48, got.KWABScores.AuditoryComprehension.YesNoScore, 0.001)
}

func TestSaveStep_InvalidStep(t *testing.T) {
	_, handler := newTestServer(t)
	startSession(t, handler, 67)

	for _, step := range []string{"0", "7", "abc"} {
		rec := doJSON(t, handler, http.MethodPost, "/api/sessions/current/steps/"+step, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "step %s", step)
	}
}

func TestSaveStep_NoActiveSession(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/current/steps/1", map[string]any{
		"correct_answers": 8,
		"total_questions": 10,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReport(t *testing.T) {
	_, handler := newTestServer(t)
	startSession(t, handler, 67)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/current/steps/1", map[string]any{
		"correct_answers": 8,
		"total_questions": 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/sessions/current/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report session.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.InDelta(t, float64(1)/6*100, report.CompletionRate, 0.001)
	// Only step 1 feeds the quotient: 80/100*10*2 = 16.
	assert.InDelta(t, 16, report.AphasiaQuotient, 0.001)
}

func TestListSessions(t *testing.T) {
	_, handler := newTestServer(t)
	startSession(t, handler, 67)

	rec := doJSON(t, handler, http.MethodGet, "/api/sessions?place=병원", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sessions []models.TrainingSession `json:"sessions"`
		Count    int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)

	rec = doJSON(t, handler, http.MethodGet, "/api/sessions?place=자택", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
}

func TestPlayback(t *testing.T) {
	_, handler := newTestServer(t)
	startSession(t, handler, 67)

	shouldPlay := func(step, question int) bool {
		rec := doJSON(t, handler, http.MethodPost,
			fmt.Sprintf("/api/sessions/current/playback/%d/%d", step, question), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body["should_play"]
	}

	assert.True(t, shouldPlay(1, 0))
	assert.False(t, shouldPlay(1, 0))
	assert.True(t, shouldPlay(1, 1))

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions/current/playback/9/0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
