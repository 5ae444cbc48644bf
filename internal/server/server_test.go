package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/config"
	"github.com/kampki/lifeofki/backend/internal/testdb"
)

func setupServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.Open(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  "test-secret",
	}
	// nothing listens here; cache reads degrade to misses and wizard
	// endpoints are covered by their own package tests
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:0"})

	return New(cfg, db, redisClient, zap.NewNop()), db
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, srv *Server) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Kiara",
		"email":    fmt.Sprintf("%s@example.com", t.Name()),
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAuthFlow(t *testing.T) {
	srv, _ := setupServer(t)

	token := registerUser(t, srv)
	assert.NotEmpty(t, token)

	// duplicate registration conflicts
	w := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Kiara",
		"email":    fmt.Sprintf("%s@example.com", t.Name()),
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    fmt.Sprintf("%s@example.com", t.Name()),
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    fmt.Sprintf("%s@example.com", t.Name()),
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := setupServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/entries/2026-08-25", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/entries/2026-08-25", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEntryLifecycle(t *testing.T) {
	srv, _ := setupServer(t)
	token := registerUser(t, srv)

	payload := gin.H{
		"mood":            4,
		"energy_level":    3,
		"daily_intention": "stay present",
		"sleep_quality":   4,
		"wake_up_time":    "07:00",
		"bedtime":         "23:00",
		"stress_level":    2,
		"water_glasses":   6,
	}

	w := doJSON(t, srv, http.MethodPut, "/api/v1/entries/2026-08-25", token, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry struct {
		ID         string  `json:"id"`
		EntryDate  string  `json:"entry_date"`
		SleepHours float64 `json:"sleep_hours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "2026-08-25", entry.EntryDate)
	assert.InDelta(t, 8.0, entry.SleepHours, 0.001)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/entries/2026-08-25", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// nutrition rides under the entry date
	w = doJSON(t, srv, http.MethodPost, "/api/v1/entries/2026-08-25/nutrition", token, gin.H{
		"time_consumed":    "08:00",
		"food_description": "oatmeal with berries",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, srv, http.MethodGet, "/api/v1/entries/2026-08-25/nutrition", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "oatmeal with berries")

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/entries/2026-08-25", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/entries/2026-08-25", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEntryValidationSurfacesFields(t *testing.T) {
	srv, _ := setupServer(t)
	token := registerUser(t, srv)

	w := doJSON(t, srv, http.MethodPut, "/api/v1/entries/2026-08-25", token, gin.H{
		"mood": 9,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "mood")
	assert.Contains(t, resp.Fields, "daily_intention")
}

func TestFavoritesEndpoints(t *testing.T) {
	srv, _ := setupServer(t)
	token := registerUser(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"description":  "lentil soup",
		"default_time": "12:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var favorite struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorite))
	assert.Equal(t, "lunch", favorite.Category)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"description": "lentil soup",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/favorites/"+favorite.ID+"/use", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"usage_count":1`)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/favorites", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/favorites/"+favorite.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/favorites/"+favorite.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferencesEndpoints(t *testing.T) {
	srv, _ := setupServer(t)
	token := registerUser(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"week_start_day":1`)

	w = doJSON(t, srv, http.MethodPut, "/api/v1/preferences", token, gin.H{
		"week_start_day": 0,
		"theme":          "dark",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"dark"`)

	w = doJSON(t, srv, http.MethodPut, "/api/v1/preferences", token, gin.H{
		"theme": "neon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReflectionEndpoints(t *testing.T) {
	srv, _ := setupServer(t)
	token := registerUser(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/reflections/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reflection":null`)

	w = doJSON(t, srv, http.MethodPut, "/api/v1/reflections?week_start=2026-08-24", token, gin.H{
		"personal_insight": "slept better on walking days",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"week_start":"2026-08-24"`)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/reflections", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slept better on walking days")
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv, _ := setupServer(t)
	token := registerUser(t, srv)

	// empty history reads as null analytics, not an error
	w := doJSON(t, srv, http.MethodGet, "/api/v1/analytics?days=30", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"analytics":null`)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/analytics?days=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/analytics?days=-2", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"todayLogged":false`)
	assert.Contains(t, w.Body.String(), `"currentStreak":0`)
}
