package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/dataset"
	"github.com/wexinc/fightsongs/internal/songs"
)

const testCSV = `school,song_name,year,conference,student_writer,contest,men,victory_win_won,fight,rah,nonsense,colors,opponents,spelling
Auburn,War Eagle,1955,SEC,No,Yes,No,Yes,No,No,No,No,No,No
Alabama,Yea Alabama,1926,SEC,Yes,Yes,No,Yes,Yes,No,No,Yes,No,No
Georgia,Glory Glory,1909,SEC,Unknown,No,No,No,No,No,No,No,No,No
Iowa,Iowa Fight Song,1951,Big Ten,No,No,No,Yes,Yes,Yes,No,No,No,No
Michigan,The Victors,1898,Big Ten,Yes,No,Yes,Yes,No,No,No,Yes,No,No
Clemson,Tiger Rag,1917,ACC,No,No,No,No,No,No,Yes,No,No,No
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ds, err := songs.Parse(strings.NewReader(testCSV), "fight-songs.csv")
	require.NoError(t, err)
	return New(dataset.NewStaticSource(ds), aggregate.NewCache(), Options{})
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func TestDecadesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := get(t, h, "/api/decades?min_decade=1900&series=fight,rah")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["available"])
	assert.Equal(t, float64(1900), body["min_decade"])
	assert.Equal(t, []any{float64(1900), float64(1910), float64(1920), float64(1950)}, body["decades"])

	series := body["series"].([]any)
	require.Len(t, series, 2)
	assert.Equal(t, "fight", series[0].(map[string]any)["trope"])
	assert.Equal(t, "rah", series[1].(map[string]any)["trope"])
}

func TestDecadesEndpoint_RepeatedParams(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := get(t, h, "/api/decades?series=men&series=colors")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["series"], 2)
}

func TestConferencesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	t.Run("defaults", func(t *testing.T) {
		rec, body := get(t, h, "/api/conferences")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{"SEC", "Big Ten"}, body["selected"])
		assert.Len(t, body["radar"], 2)
		assert.NotContains(t, body, "message")
	})

	t.Run("explicit selection", func(t *testing.T) {
		rec, body := get(t, h, "/api/conferences?top_k=3&conferences=ACC")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), body["top_k"])
		assert.Equal(t, []any{"ACC"}, body["selected"])
	})

	t.Run("insufficient dimensions", func(t *testing.T) {
		rec, body := get(t, h, "/api/conferences?dims=fight,rah")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Select at least 3 dimensions for a radar plot.", body["message"])
		assert.NotContains(t, body, "radar")
	})

	t.Run("stale conference", func(t *testing.T) {
		rec, body := get(t, h, "/api/conferences?conferences=Pac-12")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, body["selected"])
		assert.Equal(t, "Select one or more conferences.", body["message"])
	})
}

func TestAuthorshipEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := get(t, h, "/api/authorship?variant=contest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "contest", body["variant"])

	groups := body["groups"].([]any)
	require.Len(t, groups, 2)
	assert.Equal(t, "contest", groups[0].(map[string]any)["key"])
	assert.Equal(t, float64(2), groups[0].(map[string]any)["count"])
}

func TestContextEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		path  string
		code  int
		found bool
	}{
		{"/api/context/1930", http.StatusOK, true},
		{"/api/context/1930s", http.StatusOK, true},
		{"/api/context/1937", http.StatusOK, true},
		{"/api/context/2020", http.StatusOK, false},
		{"/api/context/roaring", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, body := get(t, h, tt.path)
			require.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.found, body["found"])
				assert.NotEmpty(t, body["text"])
			}
		})
	}
}

func TestBadParameters(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		target string
		param  string
	}{
		{"/api/decades?min_decade=nineteen", "min_decade"},
		{"/api/decades?series=tuba", "series"},
		{"/api/conferences?top_k=-2", "top_k"},
		{"/api/conferences?dims=fight,band", "dims"},
		{"/api/authorship?variant=coach", "variant"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec, body := get(t, h, tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, body["error"])
			details, ok := body["details"].(map[string]any)
			require.True(t, ok, "details missing: %v", body)
			assert.Equal(t, tt.param, details["parameter"])
		})
	}
}

func TestNoData(t *testing.T) {
	s := New(dataset.NewSource(filepath.Join(t.TempDir(), "missing.csv")), nil, Options{})
	h := s.Handler()

	for _, target := range []string{"/api/decades", "/api/conferences", "/api/authorship"} {
		t.Run(target, func(t *testing.T) {
			rec, body := get(t, h, target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, false, body["available"])
			assert.Equal(t, "No data available.", body["message"])
		})
	}

	rec, body := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["available"])
	assert.NotEmpty(t, body["error"])
}

func TestHealthz(t *testing.T) {
	rec, body := get(t, newTestServer(t).Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(6), body["rows"])
	assert.NotEmpty(t, body["version"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDEchoed(t *testing.T) {
	h := newTestServer(t).Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/context/1920", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/decades", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetrics(t *testing.T) {
	h := newTestServer(t).Handler()
	get(t, h, "/api/decades")
	get(t, h, "/api/decades")
	get(t, h, "/api/authorship?variant=coach")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out := rec.Body.String()
	assert.Contains(t, out, `fightsongs_http_requests_total{code="200",route="decades"} 2`)
	assert.Contains(t, out, `fightsongs_http_requests_total{code="400",route="authorship"} 1`)
	assert.Contains(t, out, "fightsongs_dataset_rows 6")
	assert.Contains(t, out, "fightsongs_aggregate_cache_hits_total 1")
}

func TestServe_GracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_WatchReloads(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "fight-songs.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))

	source := dataset.NewSource(path)
	s := New(source, nil, Options{Watch: true, Debounce: 20 * time.Millisecond})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	// Give the watcher time to register the directory before writing.
	time.Sleep(100 * time.Millisecond)
	lines := strings.Split(strings.TrimSpace(testCSV), "\n")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines[:3], "\n")+"\n"), 0644))

	assert.Eventually(t, func() bool {
		return source.Dataset().Len() == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
