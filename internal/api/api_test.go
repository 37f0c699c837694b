package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/scheduler"
	"github.com/julianstephens/routinely/internal/stats"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "routinely.json"))
	require.NoError(t, store.Init())
	clock := utils.FixedClock{At: time.Date(2025, time.June, 11, 9, 30, 0, 0, time.UTC)}
	return New(routines.New(store, clock))
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCreateTask(t *testing.T) {
	s := setupServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"valid", map[string]any{"title": "Pay rent", "date": "2025-06-12"}, http.StatusCreated},
		{"defaults to today", map[string]any{"title": "Call mom"}, http.StatusCreated},
		{"missing title", map[string]any{"date": "2025-06-12"}, http.StatusBadRequest},
		{"bad date", map[string]any{"title": "Pay rent", "date": "12/06/2025"}, http.StatusBadRequest},
		{"blank title", map[string]any{"title": "   "}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/v1/tasks", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	tasks := decode[[]models.Task](t, doRequest(t, s, http.MethodGet, "/api/v1/tasks", nil))
	assert.Len(t, tasks, 2)
}

func TestCreateHabit(t *testing.T) {
	s := setupServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"daily", map[string]any{"title": "Stretch", "frequency": map[string]any{"type": "daily"}}, http.StatusCreated},
		{"weekly", map[string]any{"title": "Gym", "frequency": map[string]any{"type": "weekly", "value": 3}}, http.StatusCreated},
		{"interval", map[string]any{"title": "Water plants", "frequency": map[string]any{"type": "interval", "value": 3}}, http.StatusCreated},
		{"missing frequency", map[string]any{"title": "Read"}, http.StatusBadRequest},
		{"unknown type", map[string]any{"title": "Read", "frequency": map[string]any{"type": "monthly"}}, http.StatusBadRequest},
		{"zero quota", map[string]any{"title": "Read", "frequency": map[string]any{"type": "weekly", "value": 0}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/v1/habits", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestTodayCategoryFilter(t *testing.T) {
	s := setupServer(t)

	for _, body := range []map[string]any{
		{"title": "Pay rent", "category": "Home"},
		{"title": "Buy shoes", "category": "Errands"},
		{"title": "Clean gutters", "category": "Home"},
	} {
		require.Equal(t, http.StatusCreated, doRequest(t, s, http.MethodPost, "/api/v1/tasks", body).Code)
	}

	tests := []struct {
		query  string
		titles []string
	}{
		{"", []string{"Pay rent", "Buy shoes", "Clean gutters"}},
		{"?category=Home", []string{"Pay rent", "Clean gutters"}},
		{"?category=Work", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			plan := decode[scheduler.DayPlan](t, doRequest(t, s, http.MethodGet, "/api/v1/today"+tt.query, nil))
			titles := make([]string, 0, len(plan.Items))
			for _, it := range plan.Items {
				titles = append(titles, it.Title)
			}
			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, 3, plan.Total)
		})
	}
}

func TestToggleRoundTrip(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/habits", map[string]any{
		"title":     "Stretch",
		"startDate": "2025-06-01",
		"frequency": map[string]any{"type": "daily"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	habit := decode[models.Habit](t, w)

	w = doRequest(t, s, http.MethodPost, "/api/v1/items/"+habit.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[routines.ToggleResult](t, w)
	assert.True(t, result.Completed)
	assert.Equal(t, "2025-06-11", result.Date)

	plan := decode[scheduler.DayPlan](t, doRequest(t, s, http.MethodGet, "/api/v1/today", nil))
	require.Len(t, plan.Items, 1)
	assert.True(t, plan.Items[0].Completed)

	completion := decode[stats.Completion](t, doRequest(t, s, http.MethodGet, "/api/v1/completion", nil))
	assert.Equal(t, 1, completion.TotalDue)
	assert.Equal(t, 1, completion.TotalCompleted)

	w = doRequest(t, s, http.MethodPost, "/api/v1/items/"+habit.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[routines.ToggleResult](t, w).Completed)
}

func TestToggle_Errors(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/items/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/v1/habits", map[string]any{
		"title":     "Stretch",
		"startDate": "2025-06-10",
		"frequency": map[string]any{"type": "daily"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	habit := decode[models.Habit](t, w)

	w = doRequest(t, s, http.MethodPost, "/api/v1/items/"+habit.ID+"/toggle?date=2025-06-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/v1/items/"+habit.ID+"/toggle?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHabitQuota(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/habits", map[string]any{
		"title":     "Gym",
		"startDate": "2025-06-01",
		"frequency": map[string]any{"type": "weekly", "value": 2},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	habit := decode[models.Habit](t, w)

	for _, date := range []string{"2025-06-09", "2025-06-10"} {
		w = doRequest(t, s, http.MethodPost, "/api/v1/items/"+habit.ID+"/toggle?date="+date, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/habits/"+habit.ID+"/quota", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[scheduler.QuotaProgress](t, w)
	assert.Equal(t, "2025-06-09", progress.WeekStart)
	assert.Equal(t, "2025-06-15", progress.WeekEnd)
	assert.Equal(t, 2, progress.CompletedInWeek)
	assert.True(t, progress.QuotaMet)

	w = doRequest(t, s, http.MethodGet, "/api/v1/habits/nope/quota", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHeatmap(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/heatmap?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cells := decode[[]stats.HeatmapCell](t, w)
	require.Len(t, cells, 7)
	assert.Equal(t, "2025-06-11", cells[len(cells)-1].Date)

	for _, q := range []string{"0", "abc", "1000"} {
		w = doRequest(t, s, http.MethodGet, "/api/v1/heatmap?days="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestSleep(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/sleep/score", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"score"`)

	w = doRequest(t, s, http.MethodPost, "/api/v1/sleep", map[string]any{
		"bedTime":  "23:00",
		"wakeTime": "07:00",
		"quality":  4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	session := decode[models.SleepSession](t, w)
	assert.InDelta(t, 8.0, session.DurationHours, 0.01)
	assert.Equal(t, "2025-06-11", session.Date)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad clock", map[string]any{"bedTime": "25:00", "wakeTime": "07:00"}},
		{"quality out of range", map[string]any{"bedTime": "23:00", "wakeTime": "07:00", "quality": 9}},
		{"missing wake", map[string]any{"bedTime": "23:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/v1/sleep", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	sessions := decode[[]models.SleepSession](t, doRequest(t, s, http.MethodGet, "/api/v1/sleep", nil))
	assert.Len(t, sessions, 1)
}

func TestDeleteItems(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{"title": "Pay rent"})
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode[models.Task](t, w)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/habits/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsAndMetrics(t *testing.T) {
	s := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak"`)

	w = doRequest(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "routinely_http_requests_total")
}
