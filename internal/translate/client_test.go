package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suumosync/internal/config"
	"suumosync/internal/logger"
)

func testClient(url string) *Client {
	cfg := config.TranslateConfig{APIURL: url, Source: "ja", Target: "en"}
	return NewClient(cfg, logger.NewWithOutput("test", "", io.Discard))
}

func TestTranslate(t *testing.T) {
	t.Run("translates a phrase", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/translate_a/single", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "gtx", q.Get("client"))
			assert.Equal(t, "ja", q.Get("sl"))
			assert.Equal(t, "en", q.Get("tl"))
			assert.Equal(t, "t", q.Get("dt"))
			assert.Equal(t, "世田谷", q.Get("q"))

			fmt.Fprint(w, `[[["Setagaya","世田谷",null,null,1]],null,"ja"]`)
		}))
		defer srv.Close()

		res := testClient(srv.URL).Translate(context.Background(), "世田谷")
		assert.True(t, res.Translated)
		assert.Equal(t, "Setagaya", res.Text)
	})

	t.Run("joins multiple segments", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[[["Tamazutsumi ","玉堤",null,null,1],["2-chome","２丁目",null,null,1]],null,"ja"]`)
		}))
		defer srv.Close()

		res := testClient(srv.URL).Translate(context.Background(), "玉堤２丁目")
		assert.True(t, res.Translated)
		assert.Equal(t, "Tamazutsumi 2-chome", res.Text)
	})

	t.Run("empty input needs no network", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer srv.Close()

		res := testClient(srv.URL).Translate(context.Background(), "")
		assert.False(t, res.Translated)
		assert.Empty(t, res.Text)
		assert.Zero(t, calls)
	})

	t.Run("server error degrades to source text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		res := testClient(srv.URL).Translate(context.Background(), "駒沢大学")
		assert.False(t, res.Translated)
		assert.Equal(t, "駒沢大学", res.Text)
	})

	t.Run("unreachable endpoint degrades to source text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		res := testClient(srv.URL).Translate(context.Background(), "駒沢大学")
		assert.False(t, res.Translated)
		assert.Equal(t, "駒沢大学", res.Text)
	})

	t.Run("malformed payload degrades to source text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"detail":"unexpected"}`)
		}))
		defer srv.Close()

		res := testClient(srv.URL).Translate(context.Background(), "駒沢大学")
		assert.False(t, res.Translated)
		assert.Equal(t, "駒沢大学", res.Text)
	})
}

func TestDecodeSegments(t *testing.T) {
	got, err := decodeSegments([]byte(`[[["Hello ","こんにちは",null,null,1],["world","世界",null,null,1]]]`))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)

	_, err = decodeSegments([]byte(`[]`))
	require.Error(t, err)

	_, err = decodeSegments([]byte(`"just a string"`))
	require.Error(t, err)
}
