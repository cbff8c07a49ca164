package request

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	const maxBytes int64 = 100

	tests := []struct {
		name       string
		size       int
		wantStatus int
		wantCalled bool
	}{
		{name: "under limit", size: 50, wantStatus: http.StatusOK, wantCalled: true},
		{name: "exact limit", size: 100, wantStatus: http.StatusOK, wantCalled: true},
		{name: "declared over limit", size: 200, wantStatus: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := BodyLimit(maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				data, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Len(t, data, tt.size)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(strings.Repeat("x", tt.size)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}

	t.Run("oversized body without content length fails on read", func(t *testing.T) {
		var readErr error
		handler := BodyLimit(maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))

		req := httptest.NewRequest(http.MethodPost, "/listings", io.NopCloser(strings.NewReader(strings.Repeat("x", 200))))
		req.ContentLength = -1
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var maxErr *http.MaxBytesError
		require.Error(t, readErr)
		assert.True(t, errors.As(readErr, &maxErr))
	})

	t.Run("rejection body names the reason", func(t *testing.T) {
		handler := BodyLimit(maxBytes)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		req := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(strings.Repeat("x", 200)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.JSONEq(t, payloadTooLarge, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}
