package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListActivitiesDecodesEnvelope(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activities", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"id": 4, "activity_type": "pushup", "count": 30, "status": "pending", "created_at": "2026-02-03T08:00:00Z"}],
			"pagination": {"page": 2, "page_size": 10, "total_items": 14, "totalPages": 2}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("token-123"))

	page, err := c.ListActivities(context.Background(), Filter{
		ClassID:  3,
		Status:   StatusPending,
		Search:   "budi",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)

	require.Equal(t, "Bearer token-123", gotAuth)
	require.Equal(t, map[string]string{
		"class_id": "3",
		"status":   "pending",
		"search":   "budi",
		"page":     "2",
		"limit":    "10",
	}, gotQuery)

	require.Len(t, page.Items, 1)
	require.Equal(t, uint(4), page.Items[0].ID)
	require.Equal(t, ActivityPushup, page.Items[0].ActivityType)
	require.Equal(t, 2, page.Pagination.TotalPages)
	require.Equal(t, int64(14), page.Pagination.TotalItems)
}

func TestVerifyConflictMapsToInvalidTransition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/activities/9/verify", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success": false, "message": "activity has already been reviewed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Verify(context.Background(), 9, StatusVerified, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Contains(t, err.Error(), "already been reviewed")
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusConflict, ErrInvalidTransition},
		{http.StatusInternalServerError, ErrNetwork},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"success": false, "message": "nope"}`))
		}))

		c := New(srv.URL)
		err := c.Delete(context.Background(), 1)
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)

		srv.Close()
	}
}

func TestVerifyRejectsUnknownDecisionLocally(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Verify(context.Background(), 1, "approved", "")
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, hits)
}

func TestSubmitValidatesBeforeNetworkCall(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Submit(context.Background(), SubmitInput{ActivityType: "running", Count: 10, ImageURL: "https://img/x.jpg"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = c.Submit(context.Background(), SubmitInput{ActivityType: ActivityPushup, Count: 0, ImageURL: "https://img/x.jpg"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = c.Submit(context.Background(), SubmitInput{ActivityType: ActivityPushup, Count: 10})
	require.ErrorIs(t, err, ErrValidation)

	require.Zero(t, hits)
}

func TestSubmitSendsReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var input SubmitInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, ActivitySitup, input.ActivityType)
		require.Equal(t, 25, input.Count)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 88, "activity_type": "situp", "count": 25, "status": "pending", "created_at": "2026-02-03T08:00:00Z"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	created, err := c.Submit(context.Background(), SubmitInput{
		ActivityType: ActivitySitup,
		Count:        25,
		ImageURL:     "https://img/proof.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, uint(88), created.ID)
	require.Equal(t, StatusPending, created.Status)
}

func TestTransportFailureMapsToNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := New(srv.URL)

	_, err := c.ListActivities(context.Background(), Filter{})
	require.ErrorIs(t, err, ErrNetwork)
}
