package exchange_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prunderground/core/database"
	"prunderground/core/fio"
	"prunderground/core/storage"
	"prunderground/core/storage/mocks"
	"prunderground/feature/exchange"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, status int) *fiber.App {
	t.Helper()
	return setupAppWithArchive(t, status, nil)
}

func setupAppWithArchive(t *testing.T, status int, archive *exchange.Archive) *fiber.App {
	t.Helper()

	// Setup FIO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(`[{"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":120}]`))
	}))
	t.Cleanup(srv.Close)
	client := fio.NewClient(fio.Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Burst: 1000})

	// Setup In-Memory DB
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, exchange.Models()...))

	repo := exchange.NewRepository(db)
	job := exchange.NewPriceSyncJob(client, repo, nil, zap.NewNop())
	feature := exchange.NewFeature(exchange.NewHandler(repo, job, nil, archive, zap.NewNop()))
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestHandleSyncAndQuote(t *testing.T) {
	app := setupApp(t, http.StatusOK)

	resp, err := app.Test(httptest.NewRequest("GET", "/exchange/status", nil))
	require.NoError(t, err)
	status := decode[exchange.StatusResponse](t, resp)
	assert.Equal(t, "never synced", status.Age)
	assert.Nil(t, status.LastSync)

	resp, err = app.Test(httptest.NewRequest("POST", "/exchange/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	summary := decode[exchange.Summary](t, resp)
	assert.Equal(t, 1, summary.Inserted)

	resp, err = app.Test(httptest.NewRequest("GET", "/exchange/RAT/NC1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	quote := decode[exchange.Quote](t, resp)
	require.NotNil(t, quote.PriceAsk)
	assert.Equal(t, 120.0, *quote.PriceAsk)

	resp, err = app.Test(httptest.NewRequest("GET", "/exchange/status", nil))
	require.NoError(t, err)
	status = decode[exchange.StatusResponse](t, resp)
	assert.Equal(t, int64(1), status.Quotes)
	assert.Equal(t, "just now", status.Age)
	assert.Nil(t, status.NextRun)
}

func TestHandleQuote_NotFound(t *testing.T) {
	app := setupApp(t, http.StatusOK)

	resp, err := app.Test(httptest.NewRequest("GET", "/exchange/H2O/AI1", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleSync_UpstreamDown(t *testing.T) {
	app := setupApp(t, http.StatusBadGateway)

	resp, err := app.Test(httptest.NewRequest("POST", "/exchange/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestHandleSnapshots_Disabled(t *testing.T) {
	app := setupApp(t, http.StatusOK)

	resp, err := app.Test(httptest.NewRequest("GET", "/exchange/snapshots", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleSnapshot(t *testing.T) {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "snapshots", "exchange/snapshots/2026-03-14T09:30:00Z.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader([]byte(`[{"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":120}]`))), nil)
	m.On("GetObject", mock.Anything, "snapshots", "exchange/snapshots/missing.json", minio.GetObjectOptions{}).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."})

	archive := exchange.NewArchive(m, storage.Config{Bucket: "snapshots"}, 0)
	app := setupAppWithArchive(t, http.StatusOK, archive)

	resp, err := app.Test(httptest.NewRequest("GET", "/exchange/snapshots/2026-03-14T09:30:00Z.json", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	quotes := decode[[]fio.ExchangeQuote](t, resp)
	require.Len(t, quotes, 1)
	assert.Equal(t, "RAT", quotes[0].MaterialTicker)

	resp, err = app.Test(httptest.NewRequest("GET", "/exchange/snapshots/missing.json", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	m.AssertExpectations(t)
}
