package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/metrics"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/numbergame"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/puzzles"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/random"
)

type testApp struct {
	t       *testing.T
	srv     *Server
	catalog *puzzles.Catalog
}

func newTestApp(t *testing.T, withMetrics bool) *testApp {
	t.Helper()
	catalog, err := puzzles.Load(context.Background(), puzzles.LoadOptions{Source: random.Seeded(1)})
	require.NoError(t, err)

	var m *metrics.Metrics
	if withMetrics {
		m = metrics.New()
	}
	nop := zerolog.Nop()
	srv := New(Options{
		Numbers: numbergame.New(random.Seeded(2)),
		Puzzles: catalog,
		Metrics: m,
		Logger:  &nop,
	})
	return &testApp{t: t, srv: srv, catalog: catalog}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (a *testApp) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postJSON(path string, v any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	require.NoError(a.t, json.NewEncoder(&buf).Encode(v))
	return a.post(path, buf.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body=%s", rec.Body.String())
	return out
}

func TestRoot(t *testing.T) {
	app := newTestApp(t, false)
	rec := app.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"message": "Welcome to Brain Buzzer Backend!"}, decode[map[string]string](t, rec))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)
	rec := app.get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[healthRes](t, rec)
	assert.True(t, out.OK)
	assert.Equal(t, 5, out.Puzzles)
	assert.Equal(t, []int{1, 2, 3}, out.Rounds)
}

func TestNotFoundIsJSON(t *testing.T) {
	app := newTestApp(t, false)
	rec := app.get("/api/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	out := decode[map[string]string](t, rec)
	assert.Equal(t, "not_found", out["error"])
	assert.Equal(t, "/api/nope", out["path"])
}

func TestGenerate(t *testing.T) {
	app := newTestApp(t, false)
	cases := []struct {
		query string
		max   int
	}{
		{"", 10},
		{"?level=1", 10},
		{"?level=2", 50},
		{"?level=3", 100},
		{"?level=abc", 10},
	}
	for _, tc := range cases {
		for i := 0; i < 50; i++ {
			rec := app.get("/api/generate" + tc.query)
			require.Equal(t, http.StatusOK, rec.Code)
			out := decode[generateRes](t, rec)
			require.GreaterOrEqual(t, out.Correct, 1, tc.query)
			require.LessOrEqual(t, out.Correct, tc.max, tc.query)
		}
	}
}

func TestCheck_RoundTripFromGenerate(t *testing.T) {
	app := newTestApp(t, false)
	gen := decode[generateRes](t, app.get("/api/generate?level=1"))

	rec := app.postJSON("/api/check", map[string]any{"guess": gen.Correct, "correct": gen.Correct, "level": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[numbergame.GuessResult](t, rec)
	assert.Equal(t, numbergame.ResultCorrect, out.Result)
	assert.Contains(t, numbergame.Messages(numbergame.ResultCorrect, ""), out.Message)
}

func TestCheck_Directions(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.post("/api/check", `{"guess": 5, "correct": 10, "level": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[numbergame.GuessResult](t, rec)
	assert.Equal(t, numbergame.ResultLow, out.Result)
	assert.Contains(t, numbergame.Messages(numbergame.ResultLow, numbergame.TierBig), out.Message)

	rec = app.post("/api/check", `{"guess": "11", "correct": "10", "level": "1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[numbergame.GuessResult](t, rec)
	assert.Equal(t, numbergame.ResultHigh, out.Result)
	assert.Contains(t, numbergame.Messages(numbergame.ResultHigh, numbergame.TierTiny), out.Message)

	// level omitted → level 1 cutoffs: 7 over is extreme
	rec = app.post("/api/check", `{"guess": 10, "correct": 3}`)
	out = decode[numbergame.GuessResult](t, rec)
	assert.Contains(t, numbergame.Messages(numbergame.ResultHigh, numbergame.TierExtreme), out.Message)
}

func TestCheck_NonNumericIsSoftError(t *testing.T) {
	app := newTestApp(t, false)
	rec := app.post("/api/check", `{"guess": "abc", "correct": 10, "level": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		numbergame.GuessResult{Result: numbergame.ResultError, Message: "Invalid numbers."},
		decode[numbergame.GuessResult](t, rec))
}

func TestCheck_MissingFieldsIs400(t *testing.T) {
	app := newTestApp(t, false)
	for _, body := range []string{
		`{"correct": 10}`,
		`{"guess": 4}`,
		`{"guess": null, "correct": 10}`,
		`{}`,
	} {
		rec := app.post("/api/check", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Missing guess or correct number", decode[map[string]string](t, rec)["error"])
	}

	for _, body := range []string{``, `not json`, `[1,2]`} {
		rec := app.post("/api/check", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "bad_json", decode[map[string]string](t, rec)["error"])
	}
}

func TestPuzzle(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.get("/api/puzzle?round=3")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[puzzleRes](t, rec)
	assert.Equal(t, 3, out.Round)
	assert.Contains(t, out.Question, "I speak without a mouth")
	assert.Equal(t, []string{"It's a sound"}, out.Hints)
	assert.NotEmpty(t, out.ID)
	assert.NotContains(t, rec.Body.String(), "echo", "answer must not leak")

	rec = app.get("/api/puzzle")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[puzzleRes](t, rec).Round)

	rec = app.get("/api/puzzle?round=99")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No puzzles available for this round", decode[map[string]string](t, rec)["error"])
}

func TestPuzzleCheck(t *testing.T) {
	app := newTestApp(t, false)
	echoQ := "I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?"
	echo, err := app.catalog.Find(3, "", echoQ)
	require.NoError(t, err)

	rec := app.postJSON("/api/puzzle/check", map[string]any{"round": 3, "question": echoQ, "answer": " Echo "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, puzzleCheckRes{Result: "correct", Message: correctAnswerMessage}, decode[puzzleCheckRes](t, rec))

	rec = app.postJSON("/api/puzzle/check", map[string]any{"round": "3", "id": echo.ID, "answer": "wind"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, puzzleCheckRes{Result: "wrong", Message: wrongAnswerMessage}, decode[puzzleCheckRes](t, rec))

	rec = app.postJSON("/api/puzzle/check", map[string]any{"round": 1, "question": "Who?", "answer": "me"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.postJSON("/api/puzzle/check", map[string]any{"round": 9, "question": echoQ, "answer": "echo"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.postJSON("/api/puzzle/check", map[string]any{"round": 3, "answer": "echo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.postJSON("/api/puzzle/check", map[string]any{"round": 3, "id": "not-a-uuid", "answer": "echo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.post("/api/puzzle/check", `{"round": 3,`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPuzzleHint(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.get("/api/puzzle/hint?round=3&hint=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "It's a sound", decode[hintRes](t, rec).Hint)

	rec = app.get("/api/puzzle/hint?round=3&hint=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, puzzles.NoMoreHints, decode[hintRes](t, rec).Hint)

	egg := "What has to be broken before you can use it?"
	rec = app.get("/api/puzzle/hint?round=1&hint=2&question=" + url.QueryEscape(egg))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Usually eaten at breakfast", decode[hintRes](t, rec).Hint)

	for _, q := range []string{"hint=0", "hint=-2", "hint=two"} {
		rec = app.get("/api/puzzle/hint?round=3&" + q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec = app.get("/api/puzzle/hint?round=7&hint=1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.get("/api/puzzle/hint?round=1&hint=1&question=" + url.QueryEscape("unknown"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/api/check", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	app.srv.Router().ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, true)
	app.post("/api/check", `{"guess": 5, "correct": 10, "level": 1}`)
	app.get("/api/puzzle?round=2")

	rec := app.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `brainbuzzer_number_guesses_total{level="1",result="low"} 1`)
	assert.Contains(t, body, `route="/api/check"`)

	assert.Equal(t, http.StatusNotFound, newTestApp(t, false).get("/metrics").Code)
}

func TestCheck_PresentButFalsyValuesAreChecked(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.post("/api/check", `{"guess": 0, "correct": 10, "level": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[numbergame.GuessResult](t, rec)
	assert.Equal(t, numbergame.ResultLow, out.Result)
	assert.Contains(t, numbergame.Messages(numbergame.ResultLow, numbergame.TierExtreme), out.Message)

	rec = app.post("/api/check", `{"guess": 3, "correct": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, numbergame.ResultHigh, decode[numbergame.GuessResult](t, rec).Result)

	for _, body := range []string{
		`{"guess": "", "correct": 10}`,
		`{"guess": false, "correct": 10}`,
		`{"guess": 4, "correct": ""}`,
		`{"guess": 4, "correct": false}`,
	} {
		rec := app.post("/api/check", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		assert.Equal(t, numbergame.ResultError, decode[numbergame.GuessResult](t, rec).Result, body)
	}
}

func TestDecode_RejectsTrailingAndOversizedBodies(t *testing.T) {
	app := newTestApp(t, false)

	for _, body := range []string{
		`{"guess": 1, "correct": 2} {"guess": 3}`,
		`{"guess": 1, "correct": 2}]`,
		`{"round": 3, "question": "q", "answer": "a"} x`,
	} {
		path := "/api/check"
		if strings.Contains(body, "round") {
			path = "/api/puzzle/check"
		}
		rec := app.post(path, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "bad_json", decode[map[string]string](t, rec)["error"], body)
	}

	rec := app.post("/api/check", `{"guess": 1, "correct": 2}`+"\n")
	assert.Equal(t, http.StatusOK, rec.Code, "trailing whitespace is fine")

	big := `{"guess": 1, "correct": 2, "level": "` + strings.Repeat("1", maxBodyBytes) + `"}`
	rec = app.post("/api/check", big)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "body_too_large", decode[map[string]string](t, rec)["error"])
}

func TestPuzzleHint_RequestErrorsBeforeLookup(t *testing.T) {
	app := newTestApp(t, false)

	for _, q := range []string{
		"round=7&hint=0",
		"round=7&hint=nope",
		"round=1&hint=1&id=not-a-uuid",
		"round=7&hint=1&id=not-a-uuid",
	} {
		rec := app.get("/api/puzzle/hint?" + q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	echo, err := app.catalog.Find(3, "", "I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?")
	require.NoError(t, err)
	rec := app.get("/api/puzzle/hint?round=3&hint=1&id=" + echo.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "It's a sound", decode[hintRes](t, rec).Hint)

	rec = app.get("/api/puzzle/hint?round=1&hint=1&id=" + echo.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code, "id from another round")
}

func TestMetrics_LevelLabelIsBounded(t *testing.T) {
	app := newTestApp(t, true)
	require.Equal(t, http.StatusOK, app.get("/api/generate?level=123456").Code)
	require.Equal(t, http.StatusOK, app.post("/api/check", `{"guess": 5, "correct": 10, "level": 987654}`).Code)

	body := app.get("/metrics").Body.String()
	assert.Contains(t, body, `brainbuzzer_number_targets_total{level="3"} 1`)
	assert.Contains(t, body, `brainbuzzer_number_guesses_total{level="3",result="low"} 1`)
	assert.NotContains(t, body, `level="123456"`)
	assert.NotContains(t, body, `level="987654"`)
}
