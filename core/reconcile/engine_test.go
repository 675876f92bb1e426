package reconcile

import (
	"testing"

	"prunderground/core/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func TestListingAvailable(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		reserve int
		want    int
	}{
		{"Net Of Reserve", 105, 20, 85},
		{"Reserve Exceeds Stock", 5, 20, 0},
		{"No Reserve", 7, 0, 7},
		{"Negative Reserve Ignored", 7, -3, 7},
		{"Empty", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingAvailable(tt.stock, tt.reserve))
		})
	}
}

func TestBundleAvailable(t *testing.T) {
	items := map[string]int{"RAT": 100, "DW": 35, "OVE": 7}

	tests := []struct {
		name  string
		lines []BundleLine
		want  int
	}{
		{"Minimum Over Lines", []BundleLine{{"RAT", 10}, {"DW", 10}}, 3},
		{"Floor Division", []BundleLine{{"OVE", 2}}, 3},
		{"Missing Ticker", []BundleLine{{"RAT", 1}, {"AL", 1}}, 0},
		{"Zero Quantity Line Excluded", []BundleLine{{"RAT", 10}, {"DW", 0}}, 10},
		{"Negative Quantity Line Excluded", []BundleLine{{"DW", -5}, {"OVE", 7}}, 1},
		{"Only Zero Quantity Lines", []BundleLine{{"RAT", 0}}, 0},
		{"No Lines", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BundleAvailable(tt.lines, items))
		})
	}
}

func TestReconcile_Listings(t *testing.T) {
	inv := location.Inventory{
		"A1": {"RAT": 105},
		"A2": {},
	}
	listings := []Listing{
		{ID: 1, Ticker: "RAT", StorageID: "A1", Reserve: 20, Available: ip(50)},
		{ID: 2, Ticker: "RAT", StorageID: "GONE", Reserve: 0, Available: ip(42)},
		{ID: 3, Ticker: "RAT", StorageID: "", Available: ip(9)},
		{ID: 4, Ticker: "DW", StorageID: "A2", Available: nil},
	}

	plan := Reconcile(inv, listings, nil)

	assert.Equal(t, map[uint]int{1: 85, 4: 0}, plan.ListingUpdates())
	assert.Equal(t, PlanSummary{Listings: 4, Updated: 2, Retained: 1, Ignored: 1, Changed: 2}, plan.Summary)

	require.Len(t, plan.Results, 4)
	assert.Equal(t, OutcomeRetained, plan.Results[1].Outcome)
	assert.False(t, plan.Results[1].StoragePresent)
	assert.Equal(t, OutcomeIgnored, plan.Results[2].Outcome)

	// Inputs are not mutated
	assert.Equal(t, 42, *listings[1].Available)
	assert.Equal(t, 50, *listings[0].Available)
}

func TestReconcile_Bundles(t *testing.T) {
	inv := location.Inventory{"A1": {"RAT": 100, "DW": 35}}
	lines := []BundleLine{{"RAT", 10}, {"DW", 10}}
	bundles := []Bundle{
		{ID: 1, Mode: StockFIOSync, StorageID: "A1", Lines: lines, Available: ip(3)},
		{ID: 2, Mode: StockFIOSync, StorageID: "GONE", Lines: lines, Available: ip(7)},
		{ID: 3, Mode: StockManual, StorageID: "A1", Lines: lines, Available: ip(99)},
		{ID: 4, Mode: StockUnlimited, Lines: lines},
		{ID: 5, Mode: StockMadeToOrder, StorageID: "A1", Lines: lines},
		{ID: 6, Mode: StockFIOSync, StorageID: "", Lines: lines, Available: ip(1)},
	}

	plan := Reconcile(inv, nil, bundles)

	assert.Equal(t, map[uint]int{1: 3}, plan.BundleUpdates())
	assert.Empty(t, plan.ListingUpdates())
	assert.Equal(t, PlanSummary{Bundles: 6, Updated: 1, Retained: 1, Ignored: 4, Changed: 0}, plan.Summary)
	assert.True(t, plan.Results[2].StoragePresent, "manual bundle on a present storage is reported but untouched")
}

func TestReconcile_Empty(t *testing.T) {
	plan := Reconcile(nil, nil, nil)
	assert.Empty(t, plan.Actions)
	assert.Empty(t, plan.Results)
	assert.Equal(t, PlanSummary{}, plan.Summary)
}

func TestParseStockMode(t *testing.T) {
	for _, s := range []string{"MANUAL", "UNLIMITED", "MADE_TO_ORDER", "FIO_SYNC"} {
		m, err := ParseStockMode(s)
		require.NoError(t, err)
		assert.Equal(t, StockMode(s), m)
	}

	_, err := ParseStockMode("fio_sync")
	assert.EqualError(t, err, `unknown stock mode "fio_sync"`)

	assert.True(t, StockFIOSync.Synced())
	assert.False(t, StockManual.Synced())
	assert.False(t, StockMode("BOGUS").Synced())
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		available *int
		threshold *int
		want      StockStatus
	}{
		{"Never Synced", nil, ip(10), StatusUnknown},
		{"Out", ip(0), ip(10), StatusOut},
		{"Low At Threshold", ip(10), ip(10), StatusLow},
		{"Low Below Threshold", ip(1), ip(10), StatusLow},
		{"OK Above Threshold", ip(11), ip(10), StatusOK},
		{"Threshold Disabled", ip(1), nil, StatusOK},
		{"Out With Threshold Disabled", ip(0), nil, StatusOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.available, tt.threshold))
		})
	}
}

func TestListingThreshold(t *testing.T) {
	assert.Equal(t, DefaultListingThreshold, *ListingThreshold(nil))
	assert.Equal(t, 3, *ListingThreshold(ip(3)))
}
