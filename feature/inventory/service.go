package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"prunderground/core/cache"
	"prunderground/core/fio"
	"prunderground/core/location"
	"prunderground/core/logger"
	"prunderground/core/metrics"
	"prunderground/core/reconcile"
	"prunderground/core/utils"
	"prunderground/feature/exchange"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// StationRegistry knows which location names are CX stations.
type StationRegistry interface {
	CXStationNames(ctx context.Context) (map[string]struct{}, error)
}

// PriceSource looks up stored CX ask prices.
type PriceSource interface {
	AskPrices(ctx context.Context, keys []exchange.Key) (map[exchange.Key]float64, error)
}

// Service keeps sellers' offer availability in line with their FIO storage.
type Service struct {
	store    *Store
	creds    CredentialStore
	client   *fio.Client
	cache    *cache.Cache
	stations StationRegistry
	prices   PriceSource
	cfg      Config
	logger   *zap.Logger
	group    singleflight.Group
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithCredentialStore replaces the store-backed credential lookup.
func WithCredentialStore(creds CredentialStore) Option {
	return func(s *Service) { s.creds = creds }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new inventory service. prices may be nil, in which
// case CX-relative listings render without a numeric price.
func NewService(store *Store, client *fio.Client, c *cache.Cache, stations StationRegistry, prices PriceSource, cfg Config, l *zap.Logger, opts ...Option) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	s := &Service{
		store:    store,
		creds:    store,
		client:   client,
		cache:    c,
		stations: stations,
		prices:   prices,
		cfg:      cfg,
		logger:   logger.Component(l, "inventory"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type snapshot struct {
	production []fio.ProductionLine
	storages   []fio.Storage
	sites      []fio.Site
	warehouses []fio.Warehouse
}

// fetchSnapshot reads storage, sites and warehouses concurrently, plus
// production when withProduction is set. Any failure fails the snapshot.
func fetchSnapshot(ctx context.Context, client *fio.Client, username string, withProduction bool) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res := client.UserStorage(gctx, username)
		snap.storages = res.Value()
		return res.Err()
	})
	g.Go(func() error {
		res := client.UserSites(gctx, username)
		snap.sites = res.Value()
		return res.Err()
	})
	g.Go(func() error {
		res := client.UserWarehouses(gctx, username)
		snap.warehouses = res.Value()
		return res.Err()
	})
	if withProduction {
		g.Go(func() error {
			res := client.UserProduction(gctx, username)
			snap.production = res.Value()
			return res.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (s *Service) resolve(ctx context.Context, snap snapshot) ([]location.StorageLocation, error) {
	cx, err := s.stations.CXStationNames(ctx)
	if err != nil {
		return nil, err
	}
	return location.Resolve(snap.storages, fio.SiteNames(snap.sites), fio.WarehouseNames(snap.warehouses), cx), nil
}

func (s *Service) syncNeeded(user *User) bool {
	if user.FIOLastSynced == nil {
		return true
	}
	return s.now().Sub(*user.FIOLastSynced) > s.cfg.TTL
}

// Sync refreshes the availability of username's listings and FIO_SYNC bundles
// from live storage. It returns true when the data is fresh or was synced and
// false when the sync could not complete; in that case nothing was written.
// Concurrent calls for the same user and force flag share one sync, which
// outlives any single caller; a caller whose ctx ends first gets false.
func (s *Service) Sync(ctx context.Context, username string, force bool) bool {
	key := strings.ToLower(username)
	if force {
		key += "|force"
	}
	ch := s.group.DoChan(key, func() (any, error) {
		return s.sync(context.WithoutCancel(ctx), username, force), nil
	})

	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		s.logger.Warn("Gave up waiting for FIO sync", zap.String("username", username), zap.Error(ctx.Err()))
		return false
	}
}

func (s *Service) sync(ctx context.Context, username string, force bool) bool {
	l := s.logger.With(zap.String("username", username))

	user, err := s.store.User(ctx, username)
	if err != nil {
		l.Warn("Cannot sync FIO data", zap.Error(err))
		metrics.RecordUserSync("failed")
		return false
	}

	if !force && !s.syncNeeded(user) {
		metrics.RecordUserSync("fresh")
		return true
	}

	key, err := s.creds.Credential(ctx, user.FIOUsername)
	if err != nil {
		if fio.IsNotConfigured(err) {
			l.Warn("Cannot sync FIO data: no API key")
			metrics.RecordUserSync("unconfigured")
		} else {
			l.Error("Failed to load FIO credential", zap.Error(err))
			metrics.RecordUserSync("failed")
		}
		return false
	}

	if force {
		s.cache.Invalidate(user.FIOUsername)
	}

	client := s.client.WithAPIKey(key)
	defer client.Close()

	snap, err := fetchSnapshot(ctx, client, user.FIOUsername, false)
	if err != nil {
		s.logFailure(l, err)
		metrics.RecordUserSync("failed")
		return false
	}

	locations, err := s.resolve(ctx, snap)
	if err != nil {
		l.Error("FIO sync failed", zap.Error(err))
		metrics.RecordUserSync("failed")
		return false
	}

	listings, bundles, err := s.store.Offers(ctx, user.ID)
	if err != nil {
		l.Error("FIO sync failed", zap.Error(err))
		metrics.RecordUserSync("failed")
		return false
	}

	plan := reconcile.Reconcile(location.InventoryMap(locations), listingViews(listings), bundleViews(bundles))

	syncedAt := s.now().UTC()
	if err := s.store.ApplySync(ctx, user.ID, plan, syncedAt); err != nil {
		l.Error("FIO sync failed", zap.Error(err))
		metrics.RecordUserSync("failed")
		return false
	}

	s.cache.SetStorage(user.FIOUsername, snap.storages)
	s.cache.SetSites(user.FIOUsername, snap.sites)
	s.cache.SetWarehouses(user.FIOUsername, snap.warehouses)
	s.cache.SetStorageLocations(user.FIOUsername, locations)
	s.cache.SetLastRefresh(user.FIOUsername, syncedAt)

	metrics.RecordUserSync("synced")
	l.Info("FIO sync complete",
		zap.Int("listings", plan.Summary.Listings),
		zap.Int("bundles", plan.Summary.Bundles),
		zap.Int("updated", plan.Summary.Updated),
		zap.Int("changed", plan.Summary.Changed),
		zap.Int("retained", plan.Summary.Retained))
	return true
}

func (s *Service) logFailure(l *zap.Logger, err error) {
	switch {
	case fio.IsAuthentication(err):
		l.Warn("FIO rejected the stored API key", zap.Error(err))
	case fio.IsTransient(err):
		l.Warn("FIO unavailable", zap.Error(err))
	default:
		l.Error("FIO sync failed", zap.Error(err))
	}
}

// View is a user's resolved FIO inventory.
type View struct {
	Username string `json:"username"`
	// Suggestions are the tickers the user currently has in production.
	Suggestions []string                   `json:"suggestions"`
	Locations   []location.StorageLocation `json:"storage_locations"`
	Inventory   location.Inventory         `json:"inventory"`
	Cached      bool                       `json:"cached"`
	LastRefresh *time.Time                 `json:"last_refresh"`
}

// Inventory returns the user's production suggestions and storage locations,
// from cache while both are fresh. An upstream failure yields an empty view and
// is only logged.
func (s *Service) Inventory(ctx context.Context, username string, force bool) (*View, error) {
	key, err := s.creds.Credential(ctx, username)
	if err != nil {
		return nil, err
	}

	view := &View{Username: username, Suggestions: []string{}, Locations: []location.StorageLocation{}, Inventory: location.Inventory{}}
	if force {
		s.cache.Invalidate(username)
	} else {
		suggestions, okS := s.cache.Suggestions(username)
		locations, okL := s.cache.StorageLocations(username)
		if okS && okL {
			view.Suggestions = suggestions
			view.Locations = locations
			view.Inventory = location.InventoryMap(locations)
			view.Cached = true
			if at, ok := s.cache.LastRefresh(username); ok {
				view.LastRefresh = &at
			}
			return view, nil
		}
	}

	l := s.logger.With(zap.String("username", username))
	client := s.client.WithAPIKey(key)
	defer client.Close()

	snap, err := fetchSnapshot(ctx, client, username, true)
	if err != nil {
		s.logFailure(l, err)
		return view, nil
	}
	locations, err := s.resolve(ctx, snap)
	if err != nil {
		l.Error("Failed to resolve storage locations", zap.Error(err))
		return view, nil
	}

	suggestions := fio.ActiveProduction(snap.production)
	now := s.now().UTC()

	s.cache.SetProduction(username, snap.production)
	s.cache.SetStorage(username, snap.storages)
	s.cache.SetSites(username, snap.sites)
	s.cache.SetWarehouses(username, snap.warehouses)
	s.cache.SetSuggestions(username, suggestions)
	s.cache.SetStorageLocations(username, locations)
	s.cache.SetLastRefresh(username, now)

	view.Suggestions = suggestions
	view.Locations = locations
	view.Inventory = location.InventoryMap(locations)
	view.LastRefresh = &now
	return view, nil
}

// MaterialStock lists where the user stores ticker.
func (s *Service) MaterialStock(ctx context.Context, username, ticker string) ([]location.MaterialStock, error) {
	view, err := s.Inventory(ctx, username, false)
	if err != nil {
		return nil, err
	}
	stock := location.MaterialInventory(view.Locations, strings.ToUpper(ticker))
	if stock == nil {
		stock = []location.MaterialStock{}
	}
	return stock, nil
}

// Producible maps each material to the user's buildings able to produce it.
func (s *Service) Producible(ctx context.Context, username string) (map[string][]string, error) {
	sites, ok := s.cache.Sites(username)
	if !ok {
		key, err := s.creds.Credential(ctx, username)
		if err != nil {
			return nil, err
		}
		client := s.client.WithAPIKey(key)
		defer client.Close()

		res := client.UserSites(ctx, username)
		if err := res.Err(); err != nil {
			return nil, err
		}
		sites = res.Value()
		s.cache.SetSites(username, sites)
	}

	outputs := s.client.RecipeOutputs(ctx)
	if err := outputs.Err(); err != nil {
		return nil, err
	}
	return location.ProductionMap(fio.BuildingTickers(sites), outputs.Value()), nil
}

// Staleness renders how long ago the user was last synced.
func (s *Service) Staleness(ctx context.Context, username string) (string, error) {
	user, err := s.store.User(ctx, username)
	if err != nil {
		return "", err
	}
	return utils.SyncStaleness(user.FIOLastSynced, s.now()), nil
}

// CacheStatus reports the user's cache slots.
func (s *Service) CacheStatus(username string) cache.Report {
	return s.cache.Status(username)
}

// VerifyCredential checks key against username's FIO account and stores it when
// accepted. An empty key re-verifies the stored one. Only a rejected key is
// cleared; a transient failure keeps whatever is stored.
func (s *Service) VerifyCredential(ctx context.Context, username, key string) (*fio.Account, error) {
	if key == "" {
		stored, err := s.creds.Credential(ctx, username)
		if err != nil {
			return nil, err
		}
		key = stored
	}

	client := s.client.WithAPIKey(key)
	defer client.Close()

	l := s.logger.With(zap.String("username", username))
	account, err := client.VerifyCredential(ctx, username)
	if err != nil {
		if fio.IsAuthentication(err) {
			l.Warn("FIO credential rejected, clearing stored key")
			if cerr := s.creds.ClearCredential(ctx, username); cerr != nil {
				return nil, errors.Join(err, cerr)
			}
		} else {
			l.Warn("FIO credential could not be verified", zap.Error(err))
		}
		return nil, err
	}

	if _, err := s.store.SaveCredential(ctx, key, account); err != nil {
		return nil, err
	}
	l.Info("FIO credential verified", zap.Int("sites", account.Sites), zap.String("company", account.CompanyCode))
	return account, nil
}
