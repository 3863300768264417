package chi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chihandlers "statushub/internal/adapters/handlers/http/chi"
	feedhandler "statushub/internal/adapters/handlers/http/chi/v1/feed"
	statushandler "statushub/internal/adapters/handlers/http/chi/v1/status"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	feedservice "statushub/internal/core/service/feed"
	statusservice "statushub/internal/core/service/status"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, statusSvc port.StatusService, feedSvc port.FeedService) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chihandlers.NewRouter(
		logger,
		statushandler.NewStatusHandlerV1(statusSvc, logger),
		feedhandler.NewFeedHandlerV1(feedSvc, logger),
		"test",
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path, userID string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t, statusservice.NewMockStatusService(), feedservice.NewMockFeedService())

	resp := doRequest(t, server, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health chihandlers.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestRouter_AuthRequired(t *testing.T) {
	server := newTestServer(t, statusservice.NewMockStatusService(), feedservice.NewMockFeedService())

	tests := []struct {
		name   string
		userID string
	}{
		{name: "missing header", userID: ""},
		{name: "malformed id", userID: "not-a-uuid"},
		{name: "nil id", userID: uuid.Nil.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, server, http.MethodGet, "/api/v1/feed/", tt.userID, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRouter_CreateStatus(t *testing.T) {
	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		// Arrange
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		now := time.Now().UTC()
		created := &domain.Status{
			ID:          uuid.New(),
			UserID:      userID,
			ContentType: domain.ContentTypeText,
			TextContent: "hello",
			Privacy:     domain.PrivacyPublic,
			CreatedAt:   now,
			ExpiresAt:   now.Add(24 * time.Hour),
		}
		mockStatusSvc.On("CreateStatus", mock.Anything, userID, mock.MatchedBy(func(in port.CreateStatusInput) bool {
			return in.ContentType == domain.ContentTypeText && in.TextContent == "hello"
		})).Return(created, nil)

		body, _ := json.Marshal(statushandler.V1CreateStatusRequest{
			ContentType: "text",
			TextContent: "hello",
			Privacy:     "public",
		})

		// Act
		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/", userID.String(), body)

		// Assert
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got statushandler.V1StatusResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, created.ID.String(), got.ID)
		assert.Equal(t, "text", got.ContentType)
		mockStatusSvc.AssertExpectations(t)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("CreateStatus", mock.Anything, userID, mock.Anything).
			Return((*domain.Status)(nil), domain.ErrInvalidContent)

		body, _ := json.Marshal(statushandler.V1CreateStatusRequest{ContentType: "text", Privacy: "public"})
		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/", userID.String(), body)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("oversized media maps to 413", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("CreateStatus", mock.Anything, userID, mock.Anything).
			Return((*domain.Status)(nil), domain.ErrMediaTooBig)

		body, _ := json.Marshal(statushandler.V1CreateStatusRequest{
			ContentType:      "image",
			MediaBase64:      "aGVsbG8=",
			MediaContentType: "image/png",
			Privacy:          "public",
		})
		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/", userID.String(), body)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("bad media encoding rejected before the service", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		body, _ := json.Marshal(statushandler.V1CreateStatusRequest{
			ContentType:      "image",
			MediaBase64:      "%%%not-base64%%%",
			MediaContentType: "image/png",
			Privacy:          "public",
		})
		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/", userID.String(), body)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockStatusSvc.AssertNotCalled(t, "CreateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure maps to 503", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("CreateStatus", mock.Anything, userID, mock.Anything).
			Return((*domain.Status)(nil), errors.New("store down"))

		body, _ := json.Marshal(statushandler.V1CreateStatusRequest{ContentType: "text", TextContent: "x", Privacy: "public"})
		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/", userID.String(), body)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestRouter_DeleteStatus(t *testing.T) {
	userID := uuid.New()
	statusID := uuid.New()

	tests := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{name: "deleted", svcErr: nil, wantCode: http.StatusNoContent},
		{name: "not found", svcErr: domain.ErrStatusNotFound, wantCode: http.StatusNotFound},
		{name: "not owner", svcErr: domain.ErrNotStatusOwner, wantCode: http.StatusForbidden},
		{name: "store failure", svcErr: errors.New("store down"), wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStatusSvc := statusservice.NewMockStatusService()
			server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

			mockStatusSvc.On("DeleteStatus", mock.Anything, userID, statusID).Return(tt.svcErr)

			resp := doRequest(t, server, http.MethodDelete, "/api/v1/status/"+statusID.String(), userID.String(), nil)

			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}

	t.Run("malformed status id", func(t *testing.T) {
		server := newTestServer(t, statusservice.NewMockStatusService(), feedservice.NewMockFeedService())

		resp := doRequest(t, server, http.MethodDelete, "/api/v1/status/not-a-uuid", userID.String(), nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_MarkViewed(t *testing.T) {
	userID := uuid.New()
	statusID := uuid.New()

	t.Run("view recorded", func(t *testing.T) {
		// Arrange
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("MarkViewed", mock.Anything, statusID, userID).Return(nil)

		// Act
		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/"+statusID.String()+"/view", userID.String(), nil)

		// Assert
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockStatusSvc.AssertExpectations(t)
	})

	t.Run("hidden status answers like a missing one", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("MarkViewed", mock.Anything, statusID, userID).Return(domain.ErrStatusNotVisible)

		resp := doRequest(t, server, http.MethodPost, "/api/v1/status/"+statusID.String()+"/view", userID.String(), nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouter_ViewCount(t *testing.T) {
	userID := uuid.New()
	statusID := uuid.New()

	t.Run("owner gets the count", func(t *testing.T) {
		// Arrange
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("ViewCount", mock.Anything, userID, statusID).Return(12, nil)

		// Act
		resp := doRequest(t, server, http.MethodGet, "/api/v1/status/"+statusID.String()+"/views", userID.String(), nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got statushandler.V1ViewCountResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 12, got.Views)
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("ViewCount", mock.Anything, userID, statusID).Return(0, domain.ErrNotStatusOwner)

		resp := doRequest(t, server, http.MethodGet, "/api/v1/status/"+statusID.String()+"/views", userID.String(), nil)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRouter_GetMedia(t *testing.T) {
	userID := uuid.New()
	statusID := uuid.New()

	t.Run("signed url returned", func(t *testing.T) {
		// Arrange
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		expiresAt := time.Now().UTC().Add(15 * time.Minute)
		mockStatusSvc.On("ResolveMedia", mock.Anything, userID, statusID).
			Return("https://store/signed", &expiresAt, nil)

		// Act
		resp := doRequest(t, server, http.MethodGet, "/api/v1/status/"+statusID.String()+"/media", userID.String(), nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got statushandler.V1MediaResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "https://store/signed", got.URL)
	})

	t.Run("text status has no media", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("ResolveMedia", mock.Anything, userID, statusID).
			Return("", (*time.Time)(nil), domain.ErrNoMedia)

		resp := doRequest(t, server, http.MethodGet, "/api/v1/status/"+statusID.String()+"/media", userID.String(), nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("hidden status answers like a missing one", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("ResolveMedia", mock.Anything, userID, statusID).
			Return("", (*time.Time)(nil), domain.ErrStatusNotVisible)

		resp := doRequest(t, server, http.MethodGet, "/api/v1/status/"+statusID.String()+"/media", userID.String(), nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("expired status looks deleted", func(t *testing.T) {
		mockStatusSvc := statusservice.NewMockStatusService()
		server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

		mockStatusSvc.On("ResolveMedia", mock.Anything, userID, statusID).
			Return("", (*time.Time)(nil), domain.ErrStatusNotFound)

		resp := doRequest(t, server, http.MethodGet, "/api/v1/status/"+statusID.String()+"/media", userID.String(), nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouter_GetUserStatuses(t *testing.T) {
	// Arrange
	userID := uuid.New()
	ownerID := uuid.New()
	mockStatusSvc := statusservice.NewMockStatusService()
	server := newTestServer(t, mockStatusSvc, feedservice.NewMockFeedService())

	now := time.Now().UTC()
	statuses := []domain.Status{
		{ID: uuid.New(), UserID: ownerID, ContentType: domain.ContentTypeText, TextContent: "a", Privacy: domain.PrivacyPublic, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(22 * time.Hour)},
		{ID: uuid.New(), UserID: ownerID, ContentType: domain.ContentTypeText, TextContent: "b", Privacy: domain.PrivacyPublic, CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(23 * time.Hour)},
	}
	mockStatusSvc.On("GetUserStatuses", mock.Anything, userID, ownerID).Return(statuses, nil)

	// Act
	resp := doRequest(t, server, http.MethodGet, "/api/v1/status/user/"+ownerID.String(), userID.String(), nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got statushandler.V1UserStatusesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Statuses, 2)
	assert.Equal(t, statuses[0].ID.String(), got.Statuses[0].ID)
}

func TestRouter_GetFeed(t *testing.T) {
	// Arrange
	userID := uuid.New()
	ownerID := uuid.New()
	mockFeedSvc := feedservice.NewMockFeedService()
	server := newTestServer(t, statusservice.NewMockStatusService(), mockFeedSvc)

	now := time.Now().UTC()
	items := []domain.FeedItem{
		{
			UserID: ownerID,
			Latest: domain.Status{
				ID:          uuid.New(),
				UserID:      ownerID,
				ContentType: domain.ContentTypeImage,
				CreatedAt:   now.Add(-time.Hour),
				ExpiresAt:   now.Add(23 * time.Hour),
			},
			HasUnviewed: true,
			Profile:     &domain.Profile{ID: ownerID, Username: "sam", DisplayName: "Sam"},
		},
	}
	mockFeedSvc.On("GetFeed", mock.Anything, userID).Return(items, nil)

	// Act
	resp := doRequest(t, server, http.MethodGet, "/api/v1/feed/", userID.String(), nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got feedhandler.V1FeedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, ownerID.String(), got.Items[0].UserID)
	assert.True(t, got.Items[0].HasUnviewed)
	assert.Equal(t, "sam", got.Items[0].Username)
}

func TestRouter_GetContactsFeed(t *testing.T) {
	// Arrange
	userID := uuid.New()
	mockFeedSvc := feedservice.NewMockFeedService()
	server := newTestServer(t, statusservice.NewMockStatusService(), mockFeedSvc)

	mockFeedSvc.On("GetContactsFeed", mock.Anything, userID).Return([]domain.FeedItem{}, nil)

	// Act
	resp := doRequest(t, server, http.MethodGet, "/api/v1/feed/contacts", userID.String(), nil)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got feedhandler.V1FeedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got.Items)
	mockFeedSvc.AssertExpectations(t)
}
