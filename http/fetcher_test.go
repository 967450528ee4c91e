package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/miplib"
	miplibhttp "github.com/fwojciec/miplib/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := miplibhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		got := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got <- r.UserAgent()
		}))
		defer server.Close()

		fetcher := miplibhttp.NewFetcher(miplibhttp.WithUserAgent("test-agent/1.0"))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/1.0", <-got)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		html, err := miplibhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := miplibhttp.NewFetcher(miplibhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, miplib.ETRANSPORT, miplib.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := miplibhttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns ETRANSPORT for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := miplibhttp.NewFetcher(miplibhttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, miplib.ETRANSPORT, miplib.ErrorCode(err))
	})

	t.Run("returns ETRANSPORT for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		_, err := miplibhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, miplib.ETRANSPORT, miplib.ErrorCode(err))
		assert.Contains(t, miplib.ErrorMessage(err), "404")
	})
}

// Compile-time verification that Fetcher implements miplib.Fetcher
var _ miplib.Fetcher = (*miplibhttp.Fetcher)(nil)
