package api

import (
	"geo-forensics-service/internal/adapters/exifmeta"
	"geo-forensics-service/internal/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterAssignsRequestID(t *testing.T) {
	router := NewRouter(services.NewResolutionPipeline(exifmeta.NewExtractor()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)
}

func TestRouterKeepsCallerRequestID(t *testing.T) {
	router := NewRouter(services.NewResolutionPipeline(exifmeta.NewExtractor()))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "case-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "case-42", rec.Header().Get(requestIDHeader))
}

func TestRouterUnknownPath(t *testing.T) {
	router := NewRouter(services.NewResolutionPipeline(exifmeta.NewExtractor()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packages", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
