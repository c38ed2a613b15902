package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/api"
	"github.com/phrazzld/docextract/internal/batch"
	"github.com/phrazzld/docextract/internal/client"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/mocks"
	"github.com/phrazzld/docextract/internal/platform/logger"
	"github.com/phrazzld/docextract/internal/service"
	"github.com/phrazzld/docextract/internal/service/auth"
	"github.com/phrazzld/docextract/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := client.New("not a url")
	assert.ErrorIs(t, err, client.ErrInvalidBaseURL)

	_, err = client.New("http://localhost:8080", client.WithConcurrency(0))
	assert.ErrorIs(t, err, batch.ErrInvalidConfiguration)

	c, err := client.New("http://localhost:8080/")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

// TestFetchExtractions_AgainstRouter runs the client against the real router
// with a mocked service behind it.
func TestFetchExtractions_AgainstRouter(t *testing.T) {
	userID := uuid.New()
	found, err := domain.NewExtraction(userID, "found.pdf")
	require.NoError(t, err)
	missing := uuid.New()
	foreign := uuid.New()

	svc := &mocks.MockExtractionService{}
	svc.On("Get", mock.Anything, userID, found.ID).Return(found, nil)
	svc.On("Get", mock.Anything, userID, missing).
		Return(nil, service.NewExtractionServiceError("get", store.ErrExtractionNotFound))
	svc.On("Get", mock.Anything, userID, foreign).
		Return(nil, service.NewExtractionServiceError("get", service.ErrExtractionNotOwned))

	_, log := logger.NewTestLogger()
	srv := httptest.NewServer(api.NewRouter(api.RouterDeps{
		ExtractionService: svc,
		JWTService: &mocks.MockJWTService{
			ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
				if token != "good-token" {
					return nil, auth.ErrInvalidToken
				}
				return &auth.Claims{UserID: userID}, nil
			},
		},
		Logger: log,
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("good-token"), client.WithConcurrency(2))
	require.NoError(t, err)

	ids := []uuid.UUID{found.ID, missing, foreign}
	outcomes, err := c.FetchExtractions(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	require.True(t, outcomes[0].OK())
	assert.Equal(t, found.ID, outcomes[0].Value.ID)
	assert.Equal(t, "found.pdf", outcomes[0].Value.DocumentName)

	assert.Equal(t, batch.StatusFailed, outcomes[1].Status)
	assert.True(t, client.IsNotFound(outcomes[1].Err))

	assert.Equal(t, batch.StatusFailed, outcomes[2].Status)
	assert.True(t, client.IsForbidden(outcomes[2].Err))

	var apiErr *client.APIError
	require.ErrorAs(t, outcomes[2].Err, &apiErr)
	assert.Equal(t, "You do not own this extraction", apiErr.Message)
	assert.NotEmpty(t, apiErr.TraceID)

	bad, err := client.New(srv.URL, client.WithToken("bad-token"))
	require.NoError(t, err)
	_, err = bad.GetExtraction(context.Background(), found.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestFetchExtractions_BoundsConcurrency(t *testing.T) {
	const limit = 3
	var inflight, maxInflight atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			prev := maxInflight.Load()
			if cur <= prev || maxInflight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		id := strings.TrimPrefix(r.URL.Path, "/api/extractions/")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "status": "completed"})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithConcurrency(limit))
	require.NoError(t, err)

	ids := make([]uuid.UUID, 12)
	for i := range ids {
		ids[i] = uuid.New()
	}

	outcomes, err := c.FetchExtractions(context.Background(), ids)
	require.NoError(t, err)

	for i, o := range outcomes {
		require.True(t, o.OK(), "item %d: %v", i, o.Err)
		assert.Equal(t, ids[i], o.Value.ID)
	}
	assert.LessOrEqual(t, maxInflight.Load(), int64(limit))
}

func TestFetchExtractions_CancelledContext(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := c.FetchExtractions(ctx, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.Equal(t, batch.StatusCancelled, o.Status)
	}
	assert.Zero(t, hits.Load())
}

func TestDeleteExtractions(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/extractions/batch/delete", r.URL.Path)
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))

		var req struct {
			IDs []uuid.UUID `json:"ids"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ids, req.IDs)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"index": 0, "id": ids[0], "status": "succeeded"},
				{"index": 1, "id": ids[1], "status": "failed", "error": "Extraction not found"},
			},
			"succeeded": 1,
			"failed":    1,
		})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithToken("t"))
	require.NoError(t, err)

	res, err := c.DeleteExtractions(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Extraction not found", res.Items[1].Error)
}
