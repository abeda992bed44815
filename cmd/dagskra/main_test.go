package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/dagskra/internal/config"
	"github.com/ManuGH/dagskra/internal/ruv"
	"github.com/ManuGH/dagskra/internal/version"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}

func TestFetchCmd_Text(t *testing.T) {
	mock := ruv.NewMockServer()
	defer mock.Close()
	t.Setenv(config.EnvUpstreamURL, mock.BaseURL())

	out, _, err := execute(t, "fetch")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "01.05.2023", lines[0])
	assert.Contains(t, out, "19:00  Fréttir [bein útsending]\n")
	assert.Contains(t, out, "20:05  Landinn [endursýnt]\n       Þáttur um mannlíf á landsbyggðinni.\n")
	assert.Contains(t, out, "21:00  Síðasti séns\n")
}

func TestFetchCmd_JSON(t *testing.T) {
	mock := ruv.NewMockServer()
	defer mock.Close()
	t.Setenv(config.EnvUpstreamURL, mock.BaseURL())

	out, _, err := execute(t, "fetch", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, len(ruv.DefaultMockSchedule()))
	assert.Equal(t, "2023-05-01 17:30:00", got[0]["startTime"])
	assert.Equal(t, true, got[2]["live"])
}

func TestFetchCmd_EmptyScheduleJSON(t *testing.T) {
	mock := ruv.NewMockServer()
	defer mock.Close()
	mock.SetRawResponse(http.StatusOK, `{"results":[]}`)
	t.Setenv(config.EnvUpstreamURL, mock.BaseURL())

	out, _, err := execute(t, "fetch", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestFetchCmd_EmptyScheduleTextUsesClock(t *testing.T) {
	mock := ruv.NewMockServer()
	defer mock.Close()
	mock.SetRawResponse(http.StatusOK, `{"results":[]}`)
	t.Setenv(config.EnvUpstreamURL, mock.BaseURL())

	old := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = old })

	out, _, err := execute(t, "fetch")
	require.NoError(t, err)
	assert.Equal(t, "29.02.2024\n", out)
}

func TestFetchCmd_FailureExitsNonZero(t *testing.T) {
	mock := ruv.NewMockServer()
	defer mock.Close()
	mock.SetRawResponse(http.StatusBadGateway, "upstream down")
	t.Setenv(config.EnvUpstreamURL, mock.BaseURL())

	out, _, err := execute(t, "fetch")
	require.Error(t, err)
	assert.ErrorIs(t, err, ruv.ErrFetch)
	assert.Empty(t, out)
}

func TestFetchCmd_InvalidConfig(t *testing.T) {
	t.Setenv(config.EnvUpstreamURL, "ftp://example.invalid/tv")

	_, _, err := execute(t, "fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestHealthcheckCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/readyz" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	addr := strings.TrimPrefix(srv.URL, "http://")

	out, _, err := execute(t, "healthcheck", "--mode", "live", "--addr", addr)
	require.NoError(t, err)
	assert.Equal(t, "Healthcheck successful (live)\n", out)

	_, _, err = execute(t, "healthcheck", "--addr", addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	_, _, err = execute(t, "healthcheck", "--mode", "bogus", "--addr", addr)
	assert.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := execute(t, "nope")
	assert.Error(t, err)
}
