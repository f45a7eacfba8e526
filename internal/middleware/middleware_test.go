package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newspage/internal/logger"
	"newspage/internal/middleware"

	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	logger.Discard()

	var seen string
	h := middleware.RequestIDMiddleware(middleware.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusTeapot, w.Code)
		require.NotEmpty(t, seen)
		require.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, "abc", seen)
		require.Equal(t, "abc", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestCORS(t *testing.T) {
	w := httptest.NewRecorder()
	middleware.CORS(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
