package location

import (
	"testing"

	"prunderground/core/fio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cx = map[string]struct{}{"Moria Station": {}, "Benten Station": {}}

func TestResolve_Naming(t *testing.T) {
	tests := []struct {
		name    string
		storage fio.Storage
		want    string
	}{
		{"Explicit Name Wins", fio.Storage{AddressableID: "A1", StorageID: "W1", Type: KindWarehouse, Name: "Ship Hold"}, "Ship Hold"},
		{"Warehouse By Storage Id", fio.Storage{AddressableID: "X", StorageID: "W1", Type: KindWarehouse}, "Moria Station"},
		{"Store By Addressable Id", fio.Storage{AddressableID: "A1", Type: KindStore}, "Promitor"},
		{"Store Ignores Warehouse Map", fio.Storage{AddressableID: "zzz", StorageID: "W1", Type: KindStore}, "zzz"},
		{"Fallback Truncated", fio.Storage{AddressableID: "0123456789abcdef", Type: "SHIP_STORE"}, "0123456789ab"},
		{"Fallback Truncated By Rune", fio.Storage{AddressableID: "ステーション倉庫ステーション倉庫", Type: "SHIP_STORE"}, "ステーション倉庫ステーシ"},
		{"Fallback Unknown", fio.Storage{Type: "SHIP_STORE"}, "Unknown"},
	}

	sites := map[string]string{"A1": "Promitor"}
	warehouses := map[string]string{"W1": "Moria Station"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve([]fio.Storage{tt.storage}, sites, warehouses, cx)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Name)
		})
	}
}

func TestResolve_Scenario(t *testing.T) {
	storages := []fio.Storage{{
		AddressableID: "A1",
		Type:          KindStore,
		Items: []fio.StorageItem{
			{MaterialTicker: "RAT", MaterialAmount: 100},
			{MaterialTicker: "RAT", MaterialAmount: 5},
			{MaterialTicker: "", MaterialAmount: 7},
		},
	}}

	got := Resolve(storages, map[string]string{"A1": "Promitor"}, nil, cx)
	require.Len(t, got, 1)
	assert.Equal(t, StorageLocation{
		AddressableID: "A1",
		Kind:          KindStore,
		Name:          "Promitor",
		IsCX:          false,
		Items:         map[string]int{"RAT": 105},
	}, got[0])
}

func TestResolve_Ordering(t *testing.T) {
	storages := []fio.Storage{
		{AddressableID: "p2", Type: KindWarehouse, Name: "promitor"},
		{AddressableID: "p1", Type: KindStore, Name: "Promitor"},
		{AddressableID: "b", Type: KindStore, Name: "Bioko"},
		{AddressableID: "cx2", Type: KindWarehouse, Name: "Moria Station"},
		{AddressableID: "cx1", Type: KindWarehouse, Name: "Benten Station"},
		{AddressableID: "s", Type: "SHIP_STORE", Name: "Promitor"},
	}

	got := Resolve(storages, nil, nil, cx)
	ids := make([]string, len(got))
	for i, loc := range got {
		ids[i] = loc.AddressableID
	}
	assert.Equal(t, []string{"cx1", "cx2", "b", "p1", "p2", "s"}, ids)
	assert.True(t, got[0].IsCX)
	assert.False(t, got[2].IsCX)
}

func TestResolve_Deterministic(t *testing.T) {
	storages := []fio.Storage{
		{AddressableID: "b", Type: KindStore, Name: "Same"},
		{AddressableID: "a", Type: KindStore, Name: "Same"},
	}
	first := Resolve(storages, nil, nil, nil)
	second := Resolve([]fio.Storage{storages[1], storages[0]}, nil, nil, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, "a", first[0].AddressableID)
}

func TestInventoryMap(t *testing.T) {
	locs := []StorageLocation{
		{AddressableID: "A1", Items: map[string]int{"RAT": 10}},
		{AddressableID: "A2", Items: map[string]int{}},
	}
	inv := InventoryMap(locs)

	qty, ok := inv.Stock("A1", "RAT")
	assert.True(t, ok)
	assert.Equal(t, 10, qty)

	qty, ok = inv.Stock("A2", "RAT")
	assert.True(t, ok, "present storage without the ticker has zero stock")
	assert.Equal(t, 0, qty)

	_, ok = inv.Stock("missing", "RAT")
	assert.False(t, ok)

	locs[0].Items["RAT"] = 99
	qty, _ = inv.Stock("A1", "RAT")
	assert.Equal(t, 10, qty, "inventory is a copy")
}

func TestMaterialInventory(t *testing.T) {
	locs := []StorageLocation{
		{AddressableID: "A1", Kind: KindStore, Name: "Promitor", Items: map[string]int{"RAT": 10, "DW": 3}},
		{AddressableID: "A2", Kind: KindWarehouse, Name: "Moria Station", Items: map[string]int{"DW": 8}},
	}
	assert.Equal(t, []MaterialStock{
		{AddressableID: "A1", Kind: KindStore, Name: "Promitor", Amount: 3},
		{AddressableID: "A2", Kind: KindWarehouse, Name: "Moria Station", Amount: 8},
	}, MaterialInventory(locs, "DW"))
	assert.Empty(t, MaterialInventory(locs, "AL"))
}

func TestProductionMap(t *testing.T) {
	buildings := map[string]struct{}{"SME": {}, "FRM": {}}
	outputs := []fio.RecipeOutput{
		{Key: "SME-AL", Material: "AL", Amount: 3},
		{Key: "SME-AL2", Material: "AL", Amount: 6},
		{Key: "FRM-GRN", Material: "GRN", Amount: 4},
		{Key: "REF-FUEL", Material: "SF", Amount: 10},
		{Key: "NOHYPHEN", Material: "X", Amount: 1},
		{Key: "", Material: "Y", Amount: 1},
	}
	assert.Equal(t, map[string][]string{
		"AL":  {"SME"},
		"GRN": {"FRM"},
	}, ProductionMap(buildings, outputs))
}
