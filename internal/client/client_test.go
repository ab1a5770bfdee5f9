package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcus/tailor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New(srv.URL, "secret")
	c.HTTP = srv.Client()
	return c
}

func TestFetchPendingSales(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/pending-sales", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "kurta", r.URL.Query().Get("search"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		json.NewEncoder(w).Encode(models.PendingPage{
			Data: []models.PendingItem{{ID: "i1", OrderID: "o1", StatusID: models.StatusPending, Status: "Pending"}},
			PaginatorInfo: models.PaginatorInfo{
				Total: 11, PerPage: 10, CurrentPage: 2, LastPage: 2,
			},
		})
	})

	page, err := c.FetchPendingSales(context.Background(), 2, 10, "kurta")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "o1-i1", page.Data[0].Key())
	assert.Equal(t, 11, page.PaginatorInfo.Total)
}

func TestFetchPendingSalesOmitsEmptySearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["search"]
		assert.False(t, ok, "empty search must not be sent")
		w.Write([]byte(`{"data":[],"paginatorInfo":{"total":0,"perPage":10,"currentPage":1,"lastPage":1}}`))
	})

	_, err := c.FetchPendingSales(context.Background(), 1, 10, "")
	require.NoError(t, err)
}

func TestUpdateItemStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/sales-order-items/i9/status", r.URL.Path)
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 2, body["status_id"])
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.UpdateItemStatus(context.Background(), "i9", models.StatusInProgress))
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		msg    string
	}{
		{"unauthorized with body", 401, `{"code":"unauthorized","message":"bad token"}`, ErrUnauthorized, "Not signed in: set api_token"},
		{"forbidden bare", 403, ``, ErrForbidden, "Not allowed"},
		{"not found", 404, `{"code":"not_found","message":"no item"}`, ErrNotFound, "Not found"},
		{"api error", 422, `{"code":"invalid","message":"Status locked"}`, nil, "Status locked"},
		{"plain 500", 500, `boom`, nil, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			err := c.DeleteItem(context.Background(), "x")
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
			assert.Equal(t, tt.msg, UserMessage(err, "fallback"))
		})
	}
}

func TestMeasurementsFlattensAndSharesInflight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"id":"m1","docno":"M-1","measurement_date":"2026-01-02",
			"measurementDetails":[
				{"measurement_val":"38","measurementMaster":{"measurement_name":"Chest","data_type":"number"}},
				{"measurement_val":"30","measurementMaster":{"measurement_name":"Waist","data_type":"number"}}]}`))
	})

	var wg sync.WaitGroup
	results := make([]*models.MeasurementSheet, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sheet, err := c.Measurements(context.Background(), "o1", "i1")
			assert.NoError(t, err)
			results[i] = sheet
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, sheet := range results {
		require.NotNil(t, sheet)
		require.Len(t, sheet.Measurements, 2)
		assert.Equal(t, "Chest", sheet.Measurements[0].Name)
		assert.Equal(t, "38", sheet.Measurements[0].Value)
	}
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchPendingSales(ctx, 1, 10, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHealthCheckSkipsAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"ok"}`))
	})

	resp, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestDeleteItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/sales-order-items/i4", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteItem(context.Background(), "i4"))
}

func TestProfileRoundTrip(t *testing.T) {
	var stored models.UserProfile
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/me/profile", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			stored.Role = "Manager"
		case http.MethodGet:
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
		json.NewEncoder(w).Encode(stored)
	})

	updated, err := c.UpdateProfile(context.Background(), &models.UserProfile{
		ID: "u1", FirstName: "Asha", LastName: "Rao", Gender: models.GenderFemale,
	})
	require.NoError(t, err)
	assert.Equal(t, "Manager", updated.Role)

	got, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AR", got.Initials())
	assert.Equal(t, models.GenderFemale, got.Gender)
}
