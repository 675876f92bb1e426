package exchange

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"prunderground/core/database"
	"prunderground/core/fio"
	"prunderground/core/storage"
	"prunderground/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const exchangeJSON = `[
  {"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":100.5,"Bid":95,"PriceAverage":98},
  {"MaterialTicker":"RAT","ExchangeCode":"IC1","Ask":null,"Bid":90,"PriceAverage":null},
  {"MaterialTicker":"DW","ExchangeCode":"NC1","Ask":80,"Bid":null,"PriceAverage":79},
  {"MaterialTicker":"","ExchangeCode":"NC1","Ask":1},
  {"MaterialTicker":"H2O","ExchangeCode":"","Ask":1}
]`

type fakeFIO struct {
	status atomic.Int32
	calls  atomic.Int32
	body   atomic.Value
}

func newFakeFIO(t *testing.T) (*fakeFIO, *fio.Client) {
	t.Helper()
	f := &fakeFIO{}
	f.status.Store(http.StatusOK)
	f.body.Store(exchangeJSON)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.URL.Path != "/exchange/all" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if status := int(f.status.Load()); status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(f.body.Load().(string)))
	}))
	t.Cleanup(srv.Close)

	return f, fio.NewClient(fio.Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Burst: 1000})
}

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))
	return NewRepository(db)
}

var syncTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newJob(t *testing.T, archive *Archive) (*PriceSyncJob, *Repository, *fakeFIO) {
	t.Helper()
	f, client := newFakeFIO(t)
	repo := setupRepo(t)
	job := NewPriceSyncJob(client, repo, archive, zap.NewNop())
	job.now = func() time.Time { return syncTime }
	return job, repo, f
}

func TestPriceSyncJob_Run(t *testing.T) {
	job, repo, _ := newJob(t, nil)
	ctx := context.Background()

	summary, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Fetched: 5, Inserted: 3, Skipped: 2}, summary)

	quote, err := repo.Quote(ctx, "rat", "nc1")
	require.NoError(t, err)
	require.NotNil(t, quote.PriceAsk)
	assert.Equal(t, 100.5, *quote.PriceAsk)
	assert.Equal(t, 98.0, *quote.PriceAverage)
	assert.True(t, syncTime.Equal(quote.UpdatedAt))

	t.Run("Second Run Updates In Place", func(t *testing.T) {
		summary, err := job.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Updated)
		assert.Zero(t, summary.Inserted)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestPriceSyncJob_DuplicateRecords(t *testing.T) {
	job, repo, f := newJob(t, nil)
	f.body.Store(`[
	  {"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":1},
	  {"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":2}
	]`)

	summary, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	quote, err := repo.Quote(context.Background(), "RAT", "NC1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, *quote.PriceAsk)
}

func TestPriceSyncJob_ChangedAskUpdatesSameRow(t *testing.T) {
	job, repo, f := newJob(t, nil)
	ctx := context.Background()

	f.body.Store(`[{"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":100}]`)
	_, err := job.Run(ctx)
	require.NoError(t, err)

	f.body.Store(`[{"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":120}]`)
	summary, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	quote, err := repo.Quote(ctx, "RAT", "NC1")
	require.NoError(t, err)
	require.NotNil(t, quote.PriceAsk)
	assert.Equal(t, 120.0, *quote.PriceAsk)
}

func TestPriceSyncJob_MalformedRecordIsSkipped(t *testing.T) {
	job, repo, f := newJob(t, nil)
	f.body.Store(`[
	  {"MaterialTicker":"RAT","ExchangeCode":"NC1","Ask":100},
	  {"MaterialTicker":"DW","ExchangeCode":"NC1","Ask":"n/a"}
	]`)

	summary, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Fetched: 2, Inserted: 1, Skipped: 1}, summary)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.Quote(context.Background(), "DW", "NC1")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestPriceSyncJob_UpstreamFailure(t *testing.T) {
	job, repo, f := newJob(t, nil)
	f.status.Store(http.StatusServiceUnavailable)

	_, err := job.Run(context.Background())
	require.Error(t, err)
	assert.True(t, fio.IsTransient(err))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPriceSyncJob_EmptyResponse(t *testing.T) {
	job, _, f := newJob(t, nil)
	f.body.Store(`[]`)

	summary, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestPriceSyncJob_RecoversFromPanic(t *testing.T) {
	_, client := newFakeFIO(t)
	job := NewPriceSyncJob(client, nil, nil, zap.NewNop())

	assert.NotPanics(t, func() {
		_, err := job.Run(context.Background())
		assert.ErrorContains(t, err, "panicked")
	})
}

func TestPriceSyncJob_Archive(t *testing.T) {
	cfg := storage.Config{Bucket: "snapshots"}

	t.Run("Uploads And Prunes", func(t *testing.T) {
		m := new(mocks.Client)
		name := SnapshotName(syncTime)
		m.On("PutObject", mock.Anything, "snapshots", name, mock.Anything, mock.Anything,
			minio.PutObjectOptions{ContentType: "application/json"}).
			Return(minio.UploadInfo{Key: name}, nil)

		listing := make(chan minio.ObjectInfo, 3)
		listing <- minio.ObjectInfo{Key: "exchange/snapshots/2026-03-14T08:30:00Z.json"}
		listing <- minio.ObjectInfo{Key: name}
		listing <- minio.ObjectInfo{Key: "exchange/snapshots/2026-03-14T09:00:00Z.json"}
		close(listing)
		m.On("ListObjects", mock.Anything, "snapshots", mock.Anything).Return((<-chan minio.ObjectInfo)(listing))

		var removed []string
		m.On("RemoveObjects", mock.Anything, "snapshots", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
					removed = append(removed, obj.Key)
				}
			}).
			Return(nil)

		job, _, _ := newJob(t, NewArchive(m, cfg, 2))
		summary, err := job.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, name, summary.Snapshot)
		assert.Equal(t, []string{"exchange/snapshots/2026-03-14T08:30:00Z.json"}, removed)
		m.AssertExpectations(t)
	})

	t.Run("Failure Keeps Prices", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("connection refused"))

		job, repo, _ := newJob(t, NewArchive(m, cfg, 0))
		summary, err := job.Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, summary.Snapshot)
		assert.Equal(t, 3, summary.Inserted)

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestArchive_Get(t *testing.T) {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "snapshots", "exchange/snapshots/x.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader([]byte(exchangeJSON))), nil)

	quotes, err := NewArchive(m, storage.Config{Bucket: "snapshots"}, 0).Get(context.Background(), "exchange/snapshots/x.json")
	require.NoError(t, err)
	assert.Len(t, quotes, 5)
	assert.Equal(t, "RAT", quotes[0].MaterialTicker)
}

func TestArchive_Ensure(t *testing.T) {
	m := new(mocks.Client)
	m.On("BucketExists", mock.Anything, "snapshots").Return(false, nil)
	m.On("MakeBucket", mock.Anything, "snapshots", minio.MakeBucketOptions{Region: "eu"}).Return(nil)

	err := NewArchive(m, storage.Config{Bucket: "snapshots", Region: "eu"}, 0).Ensure(context.Background())
	require.NoError(t, err)
	m.AssertExpectations(t)
}
