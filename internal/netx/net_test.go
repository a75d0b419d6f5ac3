package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("name from url path", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer ts.Close()

		data, name, err := Download(ctx, ts.Client(), ts.URL+"/docs/receipt.pdf", 0)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
		assert.Equal(t, "receipt.pdf", name)
	})

	t.Run("name from content disposition", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Disposition", `attachment; filename="warranty.png"`)
			_, _ = w.Write([]byte("png"))
		}))
		defer ts.Close()

		_, name, err := Download(ctx, ts.Client(), ts.URL+"/x", 0)
		require.NoError(t, err)
		assert.Equal(t, "warranty.png", name)
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		_, _, err := Download(ctx, ts.Client(), ts.URL, 0)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "download failed: 403"))
	})

	t.Run("size limit", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer ts.Close()

		_, _, err := Download(ctx, ts.Client(), ts.URL, 10)
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, _, err := Download(ctx, nil, ts.URL, 0)
		require.Error(t, err)
	})
}
