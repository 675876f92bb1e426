package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prunderground/core/fio"
	"prunderground/core/logger"
	"prunderground/core/metrics"

	"go.uber.org/zap"
)

// PriceSyncJob copies the current CX quotes of every material into the quote
// table.
type PriceSyncJob struct {
	client  *fio.Client
	repo    *Repository
	archive *Archive
	logger  *zap.Logger
	now     func() time.Time
}

// NewPriceSyncJob creates the job. archive may be nil.
func NewPriceSyncJob(client *fio.Client, repo *Repository, archive *Archive, l *zap.Logger) *PriceSyncJob {
	return &PriceSyncJob{
		client:  client,
		repo:    repo,
		archive: archive,
		logger:  logger.Component(l, "price_sync"),
		now:     time.Now,
	}
}

// Name identifies the job in logs.
func (j *PriceSyncJob) Name() string {
	return "cx_price_sync"
}

// Run fetches /exchange/all once and upserts every quote in a single
// transaction. Undecodable records and records without a ticker or exchange
// code are skipped. A failed
// write leaves the table as it was. Run never panics.
func (j *PriceSyncJob) Run(ctx context.Context) (summary Summary, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("price sync panicked: %v", r)
			summary = Summary{}
		}
		metrics.RecordPriceSync(err == nil, summary.Inserted, summary.Updated, summary.Skipped, time.Since(start))
		if err != nil {
			j.logger.Error("CX price sync failed", zap.Error(err))
		}
	}()

	j.logger.Info("Fetching all exchange data from FIO")
	res := j.client.ExchangeAll(ctx)
	if err := res.Err(); err != nil {
		return Summary{}, fmt.Errorf("failed to fetch exchange data: %w", err)
	}
	raw := res.Value()
	malformed := len(res.Skipped())
	if len(raw) == 0 {
		j.logger.Warn("No exchange data received from FIO", zap.Int("malformed", malformed))
		return Summary{Fetched: malformed, Skipped: malformed}, nil
	}

	syncedAt := j.now().UTC()
	quotes, skipped := normalize(raw, syncedAt, j.logger)
	summary = Summary{Fetched: len(raw) + malformed, Skipped: skipped + malformed}

	stored, err := j.repo.Upsert(ctx, quotes)
	if err != nil {
		return Summary{Fetched: summary.Fetched, Skipped: summary.Skipped}, fmt.Errorf("failed to store exchange prices: %w", err)
	}
	summary.Inserted = stored.Inserted
	summary.Updated = stored.Updated

	if j.archive != nil {
		name, aerr := j.archive.Put(ctx, syncedAt, raw)
		if aerr != nil {
			j.logger.Warn("Failed to archive exchange snapshot", zap.Error(aerr))
		} else {
			summary.Snapshot = name
			if pruned, perr := j.archive.Prune(ctx); perr != nil {
				j.logger.Warn("Failed to prune exchange snapshots", zap.Error(perr))
			} else if pruned > 0 {
				j.logger.Debug("Pruned exchange snapshots", zap.Int("removed", pruned))
			}
		}
	}

	j.logger.Info("CX price sync complete",
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// normalize converts raw quotes to rows. Duplicate keys keep the last record.
func normalize(raw []fio.ExchangeQuote, at time.Time, l *zap.Logger) ([]Quote, int) {
	index := make(map[Key]int, len(raw))
	quotes := make([]Quote, 0, len(raw))
	skipped := 0

	for i, item := range raw {
		ticker := strings.TrimSpace(item.MaterialTicker)
		code := strings.TrimSpace(item.ExchangeCode)
		if ticker == "" || code == "" {
			skipped++
			l.Debug("Skipping exchange record", zap.Error(&fio.DataError{
				Record: fmt.Sprintf("exchange %d", i),
				Reason: "missing MaterialTicker or ExchangeCode",
			}))
			continue
		}

		q := Quote{
			MaterialTicker: ticker,
			ExchangeCode:   code,
			PriceAsk:       item.Ask,
			PriceBid:       item.Bid,
			PriceAverage:   item.PriceAverage,
			UpdatedAt:      at,
		}
		key := Key{Ticker: ticker, Exchange: code}
		if pos, dup := index[key]; dup {
			quotes[pos] = q
			continue
		}
		index[key] = len(quotes)
		quotes = append(quotes, q)
	}
	return quotes, skipped
}
