package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusBadRequest, "invalid_request", "missing email")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"invalid_request","error_description":"missing email"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		var v struct {
			Email string `json:"email"`
		}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`))
		require.NoError(t, httpx.DecodeJSON(req, &v))
		require.Equal(t, "a@b.c", v.Email)
	})

	t.Run("empty body is fine", func(t *testing.T) {
		var v map[string]any
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		require.NoError(t, httpx.DecodeJSON(req, &v))
		require.Nil(t, v)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		var v map[string]any
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		require.Error(t, httpx.DecodeJSON(req, &v))
	})
}
