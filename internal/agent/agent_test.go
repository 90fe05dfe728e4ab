package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()

	a := New(Config{ConfigDir: t.TempDir(), AutoGrant: true})
	require.NoError(t, a.registry.Load())

	sched, err := gocron.NewScheduler()
	require.NoError(t, err)
	a.sched = sched
	t.Cleanup(func() { sched.Shutdown() })

	a.secret = uuid.NewString()
	return a
}

func doRequest(t *testing.T, a *Agent, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-Pulse-Secret", a.secret)

	rec := httptest.NewRecorder()
	a.routes().ServeHTTP(rec, req)
	return rec
}

func TestAgentRejectsMissingSecret(t *testing.T) {
	a := newTestAgent(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scheduled", nil)
	rec := httptest.NewRecorder()
	a.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/scheduled", nil)
	req.Header.Set("X-Pulse-Secret", "wrong")
	rec = httptest.NewRecorder()
	a.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAgentScheduleAndList(t *testing.T) {
	a := newTestAgent(t)

	rec := doRequest(t, a, http.MethodPost, "/api/v1/scheduled", scheduleRequest{
		Title:  "Reminder",
		Body:   "Time to add today's track.",
		Kind:   "checkin:daily-reminder-v1",
		Sound:  true,
		Hour:   20,
		Minute: 0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created["id"])

	rec = doRequest(t, a, http.MethodGet, "/api/v1/scheduled", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created["id"], listed[0].ID)
	assert.Equal(t, "checkin:daily-reminder-v1", listed[0].Kind)
	assert.Equal(t, 20, listed[0].Hour)
}

func TestAgentScheduleValidatesTime(t *testing.T) {
	a := newTestAgent(t)

	tests := []struct {
		name   string
		hour   int
		minute int
	}{
		{name: "hour too large", hour: 24, minute: 0},
		{name: "negative hour", hour: -1, minute: 0},
		{name: "minute too large", hour: 20, minute: 60},
		{name: "negative minute", hour: 20, minute: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, a, http.MethodPost, "/api/v1/scheduled", scheduleRequest{
				Title: "Reminder", Hour: tt.hour, Minute: tt.minute,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAgentScheduleRollsBackOnJobFailure(t *testing.T) {
	a := newTestAgent(t)

	orig := newJobFunc
	newJobFunc = func(sched gocron.Scheduler, n Notification, task any) (gocron.Job, error) {
		return nil, errors.New("scheduler rejected job")
	}
	t.Cleanup(func() { newJobFunc = orig })

	rec := doRequest(t, a, http.MethodPost, "/api/v1/scheduled", scheduleRequest{Title: "Reminder", Hour: 20})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// A persisted entry without a live job would never fire; the failed
	// request must leave no trace.
	assert.Empty(t, a.registry.List())
	assert.Empty(t, a.jobs)
}

func TestAgentCancel(t *testing.T) {
	a := newTestAgent(t)

	rec := doRequest(t, a, http.MethodPost, "/api/v1/scheduled", scheduleRequest{Title: "Reminder", Hour: 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(t, a, http.MethodDelete, fmt.Sprintf("/api/v1/scheduled/%s", created["id"]), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, a, http.MethodDelete, fmt.Sprintf("/api/v1/scheduled/%s", created["id"]), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "cancelling twice reports not found")

	assert.Empty(t, a.registry.List())
	assert.Empty(t, a.jobs)
}

func TestAgentCancelAll(t *testing.T) {
	a := newTestAgent(t)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, a, http.MethodPost, "/api/v1/scheduled", scheduleRequest{Title: "Reminder", Hour: i})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, a, http.MethodDelete, "/api/v1/scheduled", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 3, result["removed"])
	assert.Empty(t, a.registry.List())
	assert.Empty(t, a.jobs)
}

func TestAgentPermissionFlow(t *testing.T) {
	a := newTestAgent(t)

	rec := doRequest(t, a, http.MethodGet, "/api/v1/permissions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status["granted"], "permission starts undecided")

	rec = doRequest(t, a, http.MethodPost, "/api/v1/permissions/request", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status["granted"])

	rec = doRequest(t, a, http.MethodGet, "/api/v1/permissions", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status["granted"], "grant decision sticks")
}

func TestAgentPermissionDeniedWithoutAutoGrant(t *testing.T) {
	a := newTestAgent(t)
	a.cfg.AutoGrant = false

	rec := doRequest(t, a, http.MethodPost, "/api/v1/permissions/request", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status["granted"])
}
