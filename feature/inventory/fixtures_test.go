package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prunderground/core/cache"
	"prunderground/core/database"
	"prunderground/core/fio"
	"prunderground/feature/exchange"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	goodKey = "good-key"

	storageJSON = `[
	  {"StorageId":"base-store","AddressableId":"site-1","Name":"","Type":"STORE","StorageItems":[
	    {"MaterialTicker":"RAT","MaterialAmount":150},
	    {"MaterialTicker":"DW","MaterialAmount":40},
	    {"MaterialTicker":"RAT","MaterialAmount":10}
	  ]},
	  {"StorageId":"wh-store-1","AddressableId":"wh-addr-1","Name":"","Type":"WAREHOUSE_STORE","StorageItems":[
	    {"MaterialTicker":"H2O","MaterialAmount":500},
	    {"MaterialTicker":"RAT","MaterialAmount":5}
	  ]}
	]`
	sitesJSON       = `[{"SiteId":"site-1","PlanetIdentifier":"UV-351a","PlanetName":"Promitor","Buildings":[{"BuildingTicker":"FP"}]}]`
	warehousesJSON  = `[{"WarehouseId":"w1","StoreId":"wh-store-1","LocationName":"Moria Station"}]`
	productionJSON  = `[{"ProductionLineId":"pl-1","Orders":[{"Outputs":[{"MaterialTicker":"RAT","MaterialAmount":10}]},{"Outputs":[{"MaterialTicker":"DW","MaterialAmount":5}]}]}]`
	recipeJSON      = `[{"Key":"FP-1xDW","Material":"DW","Amount":10},{"Key":"FP-RAT","Material":"RAT","Amount":10},{"Key":"HB1-PE","Material":"PE","Amount":1}]`
	userInfoJSON    = `{"UserName":"Trader","CompanyCode":"TRD","CompanyName":"Trade Co"}`
	storagePath     = "/storage/Trader"
	warehousePath   = "/sites/warehouses/Trader"
	productionPath  = "/production/Trader"
	recipeOutputURL = "/rain/recipeoutputs"
)

// fakeFIO serves one user's game state. Paths listed in failing answer 503.
type fakeFIO struct {
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]bool
	delay   time.Duration
}

func (f *fakeFIO) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeFIO) fail(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[path] = true
}

func (f *fakeFIO) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	failing := f.failing[r.URL.Path]
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if r.URL.Path == recipeOutputURL {
		_, _ = w.Write([]byte(recipeJSON))
		return
	}
	if r.Header.Get("Authorization") != goodKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var body string
	switch r.URL.Path {
	case storagePath:
		body = storageJSON
	case "/sites/Trader":
		body = sitesJSON
	case warehousePath:
		body = warehousesJSON
	case productionPath:
		body = productionJSON
	case "/user/Trader":
		body = userInfoJSON
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

type stations map[string]struct{}

func (s stations) CXStationNames(context.Context) (map[string]struct{}, error) {
	return s, nil
}

type fixedPrices map[exchange.Key]float64

func (p fixedPrices) AskPrices(_ context.Context, keys []exchange.Key) (map[exchange.Key]float64, error) {
	out := make(map[exchange.Key]float64)
	for _, k := range keys {
		if v, ok := p[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

type env struct {
	svc   *Service
	db    *gorm.DB
	fio   *fakeFIO
	cache *cache.Cache
	now   *atomic.Pointer[time.Time]
	user  User
}

func (e *env) advance(d time.Duration) {
	next := e.now.Load().Add(d)
	e.now.Store(&next)
}

func ip(v int) *int         { return &v }
func sp(v string) *string   { return &v }
func fp(v float64) *float64 { return &v }

func setup(t *testing.T) *env {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))

	f := &fakeFIO{calls: map[string]int{}, failing: map[string]bool{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	now := &atomic.Pointer[time.Time]{}
	start := time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)
	now.Store(&start)
	clock := func() time.Time { return *now.Load() }

	c := cache.New(cache.Config{TTL: 10 * time.Minute}, cache.WithClock(clock))
	client := fio.NewClient(fio.Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Burst: 1000})
	svc := NewService(NewStore(db), client, c,
		stations{"Moria Station": {}},
		fixedPrices{{Ticker: "RAT", Exchange: "NC1"}: 100},
		Config{TTL: 10 * time.Minute}, zap.NewNop(), WithClock(clock))

	user := User{FIOUsername: "Trader", FIOAPIKey: sp(goodKey)}
	require.NoError(t, db.Create(&user).Error)

	return &env{svc: svc, db: db, fio: f, cache: c, now: now, user: user}
}

// seedOffers creates listings and bundles covering every reconciliation outcome.
func (e *env) seedOffers(t *testing.T) {
	t.Helper()
	listings := []Listing{
		{UserID: e.user.ID, MaterialTicker: "RAT", StorageID: sp("site-1"), ReserveQuantity: 20,
			PriceType: "CX_RELATIVE", PriceValue: fp(-10), PriceExchange: sp("NC1")},
		{UserID: e.user.ID, MaterialTicker: "DW", StorageID: sp("site-1"), ReserveQuantity: 50,
			PriceType: "ABSOLUTE", PriceValue: fp(1500)},
		{UserID: e.user.ID, MaterialTicker: "H2O", StorageID: sp("gone"), AvailableQuantity: ip(7)},
		{UserID: e.user.ID, MaterialTicker: "RAT"},
		{UserID: e.user.ID, MaterialTicker: "RAT", StorageID: sp("wh-addr-1"), AvailableQuantity: ip(5), LowStockThreshold: ip(3)},
	}
	require.NoError(t, e.db.Create(&listings).Error)

	bundles := []Bundle{
		{UserID: e.user.ID, Name: "Food pack", StockMode: "FIO_SYNC", StorageID: sp("site-1"),
			Items: []BundleItem{{MaterialTicker: "RAT", Quantity: 20}, {MaterialTicker: "DW", Quantity: 8}}},
		{UserID: e.user.ID, Name: "Manual pack", StockMode: "MANUAL", StorageID: sp("site-1"), Quantity: ip(3),
			Items: []BundleItem{{MaterialTicker: "RAT", Quantity: 1}}},
		{UserID: e.user.ID, Name: "Lost pack", StockMode: "FIO_SYNC", StorageID: sp("gone"), AvailableQuantity: ip(2),
			Items: []BundleItem{{MaterialTicker: "RAT", Quantity: 1}}},
	}
	require.NoError(t, e.db.Create(&bundles).Error)
}

func (e *env) listings(t *testing.T) []Listing {
	t.Helper()
	var out []Listing
	require.NoError(t, e.db.Order("id").Find(&out).Error)
	return out
}

func (e *env) bundles(t *testing.T) []Bundle {
	t.Helper()
	var out []Bundle
	require.NoError(t, e.db.Order("id").Find(&out).Error)
	return out
}

func (e *env) reload(t *testing.T) User {
	t.Helper()
	var u User
	require.NoError(t, e.db.First(&u, e.user.ID).Error)
	return u
}
