package practices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/lessonforge/model"
)

func newTestServer(t *testing.T, requestCount *int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requestCount, 1)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/practices/strategies":
			w.Write([]byte(`{"items": [{"name": "Socratic Seminar", "description": "structured discussion"}]}`))
		case "/practices/activities":
			w.Write([]byte(`{"items": [{"name": "Number Talk", "description": "mental math warm-up", "duration_minutes": 10}]}`))
		case "/practices/assessments":
			w.Write([]byte(`{"items": [{"name": "Exit Ticket", "description": "end of lesson check", "type": "formative"}]}`))
		case "/practices/management":
			w.Write([]byte(`{"items": [{"name": "Quiet Signal", "description": "raised hand signal"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestServiceGetPractices(t *testing.T) {
	t.Run("All categories are fetched", func(t *testing.T) {
		var requestCount int64
		server := newTestServer(t, &requestCount)
		defer server.Close()

		client, err := NewContentClient(server.URL, "", 5*time.Second)
		require.NoError(t, err)
		service := NewService(client, time.Hour, nil)

		query := &model.PracticeQuery{Subject: model.SubjectMath, Grade: "5"}
		response, err := service.GetPractices(context.Background(), query)

		require.NoError(t, err)
		require.NotNil(t, response)
		assert.False(t, response.FromDefaults, "Expected served content, not defaults")
		require.Len(t, response.TeachingStrategies, 1)
		assert.Equal(t, "Socratic Seminar", response.TeachingStrategies[0].Name)
		require.Len(t, response.ClassroomActivities, 1)
		assert.Equal(t, "Number Talk", response.ClassroomActivities[0].Name)
		require.Len(t, response.AssessmentMethods, 1)
		require.Len(t, response.ManagementGuidelines, 1)
		assert.EqualValues(t, 4, atomic.LoadInt64(&requestCount), "Expected one request per category")
	})

	t.Run("Structurally identical queries hit the cache", func(t *testing.T) {
		var requestCount int64
		server := newTestServer(t, &requestCount)
		defer server.Close()

		client, err := NewContentClient(server.URL, "", 5*time.Second)
		require.NoError(t, err)
		service := NewService(client, time.Hour, nil)

		first, err := service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})
		require.NoError(t, err)
		second, err := service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})
		require.NoError(t, err)

		assert.Same(t, first, second, "Expected the cached response instance")
		assert.EqualValues(t, 4, atomic.LoadInt64(&requestCount), "Expected no additional requests for the cached query")
	})

	t.Run("Different queries are fetched separately", func(t *testing.T) {
		var requestCount int64
		server := newTestServer(t, &requestCount)
		defer server.Close()

		client, err := NewContentClient(server.URL, "", 5*time.Second)
		require.NoError(t, err)
		service := NewService(client, time.Hour, nil)

		_, err = service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})
		require.NoError(t, err)
		_, err = service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectHistory})
		require.NoError(t, err)

		assert.EqualValues(t, 8, atomic.LoadInt64(&requestCount), "Expected a fresh fetch for the different query")
	})

	t.Run("ClearCache forces a refetch", func(t *testing.T) {
		var requestCount int64
		server := newTestServer(t, &requestCount)
		defer server.Close()

		client, err := NewContentClient(server.URL, "", 5*time.Second)
		require.NoError(t, err)
		service := NewService(client, time.Hour, nil)

		_, err = service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})
		require.NoError(t, err)

		service.ClearCache()

		_, err = service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})
		require.NoError(t, err)
		assert.EqualValues(t, 8, atomic.LoadInt64(&requestCount), "Expected a refetch after invalidation")
	})

	t.Run("Nil client serves defaults", func(t *testing.T) {
		service := NewService(nil, time.Hour, nil)

		response, err := service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})

		require.NoError(t, err)
		assert.True(t, response.FromDefaults, "Expected the default content")
		assert.NotEmpty(t, response.TeachingStrategies)
		assert.NotEmpty(t, response.ClassroomActivities)
		assert.NotEmpty(t, response.AssessmentMethods)
		assert.NotEmpty(t, response.ManagementGuidelines)
	})

	t.Run("Unreachable service falls back to defaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client, err := NewContentClient(server.URL, "", 5*time.Second)
		require.NoError(t, err)
		service := NewService(client, time.Hour, nil)

		response, err := service.GetPractices(context.Background(), &model.PracticeQuery{})

		require.NoError(t, err, "Expected defaults instead of an error")
		assert.True(t, response.FromDefaults)
		assert.NotEmpty(t, response.TeachingStrategies)
	})

	t.Run("Nil query uses the default query", func(t *testing.T) {
		service := NewService(nil, time.Hour, nil)

		response, err := service.GetPractices(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "en-US", response.Query.Language)
		assert.Equal(t, 10, response.Query.Limit)
	})

	t.Run("Limit caps every category", func(t *testing.T) {
		service := NewService(nil, time.Hour, nil)

		response, err := service.GetPractices(context.Background(), &model.PracticeQuery{Limit: 1})

		require.NoError(t, err)
		assert.Len(t, response.TeachingStrategies, 1)
		assert.Len(t, response.ClassroomActivities, 1)
		assert.Len(t, response.AssessmentMethods, 1)
		assert.Len(t, response.ManagementGuidelines, 1)
	})
}

func TestServiceCacheStats(t *testing.T) {
	service := NewService(nil, time.Hour, nil)

	stats := service.CacheStats()
	assert.Equal(t, 0, stats.TotalEntries)

	_, err := service.GetPractices(context.Background(), &model.PracticeQuery{Subject: model.SubjectMath})
	require.NoError(t, err)

	stats = service.CacheStats()
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 1, stats.ValidEntries)
	assert.Equal(t, time.Hour.Seconds(), stats.TTLSeconds)
}
