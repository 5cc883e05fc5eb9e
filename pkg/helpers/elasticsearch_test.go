package helpers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES answers index existence checks and records created indices
func fakeES(t *testing.T, existing bool) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	created := []string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodHead:
			if existing {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			created = append(created, r.URL.Path+" "+string(body))
			mu.Unlock()
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &created
}

func TestEnsureIndexCreatesMissing(t *testing.T) {
	srv, created := fakeES(t, false)
	es, err := NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)

	require.NoError(t, EnsureIndex(context.Background(), es, "motivos", `{"mappings":{}}`))
	assert.Equal(t, []string{`/motivos {"mappings":{}}`}, *created)
}

func TestEnsureIndexKeepsExisting(t *testing.T) {
	srv, created := fakeES(t, true)
	es, err := NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)

	require.NoError(t, EnsureIndex(context.Background(), es, "motivos", `{}`))
	assert.Empty(t, *created)
}
