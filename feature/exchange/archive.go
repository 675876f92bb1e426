package exchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"prunderground/core/fio"
	"prunderground/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

const snapshotPrefix = "exchange/snapshots/"

// ErrSnapshotNotFound is returned when no snapshot has the requested name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Archive keeps raw exchange snapshots in object storage.
type Archive struct {
	client    storage.Client
	bucket    string
	region    string
	retention int
}

// NewArchive creates an archive writing to cfg.Bucket. retention is the number
// of snapshots Prune keeps; 0 keeps all.
func NewArchive(client storage.Client, cfg storage.Config, retention int) *Archive {
	return &Archive{client: client, bucket: cfg.Bucket, region: cfg.Region, retention: retention}
}

// Ensure creates the bucket if needed.
func (a *Archive) Ensure(ctx context.Context) error {
	return storage.EnsureBucket(ctx, a.client, a.bucket, a.region)
}

// SnapshotName returns the object name of the snapshot taken at t.
func SnapshotName(t time.Time) string {
	return snapshotPrefix + t.UTC().Format(time.RFC3339) + ".json"
}

// Put uploads quotes as the snapshot taken at t and returns its object name.
func (a *Archive) Put(ctx context.Context, t time.Time, quotes []fio.ExchangeQuote) (string, error) {
	body, err := json.Marshal(quotes)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := SnapshotName(t)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	return name, nil
}

// Get downloads the snapshot stored under name. name may be the full object
// name or just its base, e.g. "2026-03-14T09:30:00Z.json".
func (a *Archive) Get(ctx context.Context, name string) ([]fio.ExchangeQuote, error) {
	if !strings.HasPrefix(name, snapshotPrefix) {
		name = snapshotPrefix + name
	}

	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if noSuchKey(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to fetch snapshot %s: %w", name, err)
	}
	defer obj.Close()

	var quotes []fio.ExchangeQuote
	if err := json.NewDecoder(obj).Decode(&quotes); err != nil {
		// MinIO reports a missing object on the first read
		if noSuchKey(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return quotes, nil
}

func noSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// List returns the stored snapshot names, oldest first.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: snapshotPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			names = append(names, obj.Key)
		}
	}
	// RFC3339 in UTC sorts chronologically
	sort.Strings(names)
	return names, nil
}

// Prune deletes the oldest snapshots beyond the retention count and returns
// how many were removed.
func (a *Archive) Prune(ctx context.Context) (int, error) {
	if a.retention <= 0 {
		return 0, nil
	}
	names, err := a.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(names) <= a.retention {
		return 0, nil
	}
	stale := names[:len(names)-a.retention]

	objectsCh := make(chan minio.ObjectInfo)
	go func() {
		defer close(objectsCh)
		for _, name := range stale {
			select {
			case objectsCh <- minio.ObjectInfo{Key: name}:
			case <-ctx.Done():
				return
			}
		}
	}()

	failed := 0
	var firstErr error
	for rErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		if firstErr == nil {
			firstErr = rErr.Err
		}
	}
	if firstErr != nil {
		return len(stale) - failed, fmt.Errorf("failed to remove %d snapshots: %w", failed, firstErr)
	}
	return len(stale), nil
}
