package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/preferences"
)

const upstreamCurrent = `{"name":"Paris","sys":{"country":"FR"},"main":{"temp":11.6,"feels_like":10.2,"humidity":70},"weather":[{"description":"overcast clouds","icon":"04d"}],"wind":{"speed":5.2}}`

const upstreamForecast = `{"list":[
	{"dt":1704067200,"dt_txt":"2024-01-01 00:00:00","main":{"temp":5,"humidity":80},"weather":[{"description":"mist","icon":"50n"}]},
	{"dt":1704088800,"dt_txt":"2024-01-01 06:00:00","main":{"temp":8,"humidity":75},"weather":[{"description":"mist","icon":"50d"}]},
	{"dt":1704110400,"dt_txt":"2024-01-01 12:00:00","main":{"temp":12,"humidity":60},"weather":[{"description":"clear sky","icon":"01d"}]},
	{"dt":1704132000,"dt_txt":"2024-01-01 18:00:00","main":{"temp":9,"humidity":65},"weather":[{"description":"few clouds","icon":"02n"}]}
]}`

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "testkey" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("q") == "Atlantis" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"cod":"404","message":"city not found"}`)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/forecast") {
			_, _ = io.WriteString(w, upstreamForecast)
			return
		}
		_, _ = io.WriteString(w, upstreamCurrent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, apiKey string) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	upstream := newUpstream(t)
	cfg := &config.Config{
		APIKey:          apiKey,
		APIBaseURL:      upstream.URL + "/data/2.5",
		HTTPTimeout:     2 * time.Second,
		StorageDriver:   "redis",
		RedisAddr:       mr.Addr(),
		ForecastMaxDays: 5,
		DefaultUnit:     "metric",
	}
	app, closeStore := newApp(context.Background(), cfg, zap.NewNop().Sugar(), nil)
	t.Cleanup(func() { _ = closeStore() })

	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return srv, mr
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]interface{}) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestDashboardEndToEnd(t *testing.T) {
	srv, mr := newTestApp(t, "testkey")

	status, resp := doJSON(t, http.MethodGet, srv.URL+"/weather?city=Paris", "")
	require.Equal(t, http.StatusOK, status, resp)
	data := resp["data"].(map[string]interface{})
	forecast := data["forecast"].([]interface{})
	require.Len(t, forecast, 1)
	day := forecast[0].(map[string]interface{})
	assert.Equal(t, "2024-01-01", day["date"])
	assert.Equal(t, "12°C", day["max"])
	assert.Equal(t, "5°C", day["min"])
	assert.Equal(t, "clear sky", day["description"])

	lastCity, err := mr.Get(preferences.KeyLastCity)
	require.NoError(t, err)
	assert.Equal(t, "Paris", lastCity)

	status, resp = doJSON(t, http.MethodPost, srv.URL+"/favorites/toggle", `{"city":"Paris"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{"Paris"}, resp["data"].(map[string]interface{})["favorites"])

	status, resp = doJSON(t, http.MethodPut, srv.URL+"/preferences/unit", `{"unit":"imperial"}`)
	require.Equal(t, http.StatusOK, status)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "imperial", data["unit"])
	assert.Equal(t, true, data["current"].(map[string]interface{})["favorite"])

	status, resp = doJSON(t, http.MethodGet, srv.URL+"/preferences", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{
		"unit":      "imperial",
		"favorites": []interface{}{"Paris"},
		"last_city": "Paris",
	}, resp["data"])
}

func TestDashboardEndToEnd_FailedLookupKeepsLastCity(t *testing.T) {
	srv, mr := newTestApp(t, "testkey")

	status, _ := doJSON(t, http.MethodGet, srv.URL+"/weather?city=Paris", "")
	require.Equal(t, http.StatusOK, status)

	status, resp := doJSON(t, http.MethodGet, srv.URL+"/weather?city=Atlantis", "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotContains(t, resp, "data")

	lastCity, _ := mr.Get(preferences.KeyLastCity)
	assert.Equal(t, "Paris", lastCity)
}

func TestDashboardEndToEnd_MissingAPIKey(t *testing.T) {
	srv, _ := newTestApp(t, "")

	status, resp := doJSON(t, http.MethodGet, srv.URL+"/weather?city=Paris", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, resp["error"], "API key")
}

func TestDashboardEndToEnd_RedisDown(t *testing.T) {
	srv, mr := newTestApp(t, "testkey")
	mr.Close()

	status, resp := doJSON(t, http.MethodGet, srv.URL+"/weather?city=Paris", "")
	assert.Equal(t, http.StatusOK, status, "storage failures must not break lookups")
	assert.Equal(t, "metric", resp["data"].(map[string]interface{})["unit"])
}
