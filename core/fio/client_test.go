package fio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:           srv.URL,
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             1000,
		BreakerFailures:   3,
		BreakerTimeout:    time.Minute,
	})
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{"OK", http.StatusOK, `[{"StorageId":"s1","AddressableId":"a1","Type":"STORE","StorageItems":[{"MaterialTicker":"RAT","MaterialAmount":5}]}]`, KindPayload},
		{"NoContent", http.StatusNoContent, "", KindEmpty},
		{"Unauthorized", http.StatusUnauthorized, "", KindAuthFailed},
		{"ServerError", http.StatusInternalServerError, "", KindTransient},
		{"NotFound", http.StatusNotFound, "", KindTransient},
		{"BadJSON", http.StatusOK, `{not json`, KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res := c.WithAPIKey("key").UserStorage(context.Background(), "alice")
			assert.Equal(t, tt.wantKind, res.Kind())

			switch tt.wantKind {
			case KindPayload:
				require.NoError(t, res.Err())
				require.Len(t, res.Value(), 1)
				assert.Equal(t, "a1", res.Value()[0].AddressableID)
				assert.Equal(t, 5, res.Value()[0].Items[0].MaterialAmount)
			case KindEmpty:
				assert.NoError(t, res.Err())
				assert.True(t, res.OK())
				assert.Nil(t, res.Value())
			case KindAuthFailed:
				assert.True(t, IsAuthentication(res.Err()))
				assert.False(t, IsTransient(res.Err()))
			case KindTransient:
				assert.True(t, IsTransient(res.Err()))
				assert.False(t, res.OK())
			}
		})
	}
}

func TestClient_MalformedRecordsAreSkipped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
		  {"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":100},
		  {"MaterialTicker":"DW","ExchangeCode":"NC1","Ask":"n/a"},
		  {"MaterialTicker":"H2O","ExchangeCode":"IC1","Ask":null}
		]`))
	})

	res := c.ExchangeAll(context.Background())
	require.Equal(t, KindPayload, res.Kind())
	require.NoError(t, res.Err())
	require.Len(t, res.Value(), 2)
	assert.Equal(t, "RAT", res.Value()[0].MaterialTicker)
	assert.Equal(t, "H2O", res.Value()[1].MaterialTicker)

	require.Len(t, res.Skipped(), 1)
	assert.True(t, IsData(res.Skipped()[0]))
	assert.Contains(t, res.Skipped()[0].Error(), "/exchange/all[1]")
}

func TestClient_NonArrayListBodyIsTransient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"maintenance"}`))
	})

	res := c.ExchangeAll(context.Background())
	assert.Equal(t, KindTransient, res.Kind())
	assert.Empty(t, res.Skipped())
}

func TestClient_Headers(t *testing.T) {
	var auth, accept, path atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		accept.Store(r.Header.Get("Accept"))
		path.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":100}`))
	})

	res := c.WithAPIKey("secret-key").Exchange(context.Background(), "RAT", "NC1")
	require.NoError(t, res.Err())
	assert.Equal(t, "secret-key", auth.Load())
	assert.Equal(t, "application/json", accept.Load())
	assert.Equal(t, "/exchange/RAT.NC1", path.Load())
	require.NotNil(t, res.Value().Ask)
	assert.Equal(t, 100.0, *res.Value().Ask)
	assert.Nil(t, res.Value().Bid)
}

func TestClient_PublicCallsSendNoCredential(t *testing.T) {
	var auth atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	res := c.ExchangeAll(context.Background())
	require.NoError(t, res.Err())
	assert.Equal(t, "", auth.Load())
	assert.False(t, c.HasAPIKey())
	assert.True(t, c.WithAPIKey("k").HasAPIKey())
}

func TestClient_NetworkFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second})
	res := c.AllPlanets(context.Background())
	assert.Equal(t, KindTransient, res.Kind())
	assert.True(t, IsTransient(res.Err()))
}

func TestClient_BreakerIgnoresAuthFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	for i := 0; i < 5; i++ {
		res := c.UserSites(context.Background(), "alice")
		assert.Equal(t, KindAuthFailed, res.Kind())
	}
	assert.Equal(t, gobreaker.StateClosed, c.BreakerState())
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 3; i++ {
		c.ExchangeAll(context.Background())
	}
	assert.Equal(t, gobreaker.StateOpen, c.BreakerState())

	res := c.ExchangeAll(context.Background())
	assert.Equal(t, KindTransient, res.Kind())
	assert.ErrorIs(t, res.Err(), gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load(), "open circuit must not reach upstream")
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.AllMaterials(ctx)
	assert.Equal(t, KindTransient, res.Kind())
}

func TestVerifyCredential(t *testing.T) {
	t.Run("Verified With Company", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/sites/alice":
				_, _ = w.Write([]byte(`[{"SiteId":"s1","PlanetName":"Promitor"}]`))
			case "/user/alice":
				_, _ = w.Write([]byte(`{"UserName":"alice","CompanyCode":"ACME","CompanyName":"Acme Corp"}`))
			}
		})

		account, err := c.WithAPIKey("k").VerifyCredential(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, &Account{Username: "alice", CompanyCode: "ACME", CompanyName: "Acme Corp", Sites: 1}, account)
	})

	t.Run("Empty Sites Still Verified", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		account, err := c.WithAPIKey("k").VerifyCredential(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, 0, account.Sites)
		assert.Empty(t, account.CompanyCode)
	})

	t.Run("Rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		account, err := c.WithAPIKey("bad").VerifyCredential(context.Background(), "alice")
		assert.Nil(t, account)
		assert.True(t, IsAuthentication(err))
	})

	t.Run("Unreachable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		account, err := c.WithAPIKey("k").VerifyCredential(context.Background(), "alice")
		assert.Nil(t, account)
		assert.True(t, IsTransient(err))
		assert.False(t, IsAuthentication(err))
	})

	t.Run("User Info Unavailable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/user/alice" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		})

		account, err := c.WithAPIKey("k").VerifyCredential(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
	})
}
