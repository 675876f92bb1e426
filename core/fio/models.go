package fio

// StorageItem is one material stack inside a storage.
type StorageItem struct {
	MaterialTicker string  `json:"MaterialTicker"`
	MaterialName   string  `json:"MaterialName"`
	MaterialAmount int     `json:"MaterialAmount"`
	TotalWeight    float64 `json:"TotalWeight"`
	TotalVolume    float64 `json:"TotalVolume"`
}

// Storage is a raw record from /storage/{username}.
type Storage struct {
	StorageID      string        `json:"StorageId"`
	AddressableID  string        `json:"AddressableId"`
	Name           string        `json:"Name"`
	Type           string        `json:"Type"`
	WeightCapacity float64       `json:"WeightCapacity"`
	VolumeCapacity float64       `json:"VolumeCapacity"`
	Items          []StorageItem `json:"StorageItems"`
}

// SiteBuilding is a building placed on a site. Older payloads use Ticker.
type SiteBuilding struct {
	BuildingTicker string `json:"BuildingTicker"`
	Ticker         string `json:"Ticker"`
	BuildingName   string `json:"BuildingName"`
}

// TickerOrFallback returns BuildingTicker, falling back to Ticker.
func (b SiteBuilding) TickerOrFallback() string {
	if b.BuildingTicker != "" {
		return b.BuildingTicker
	}
	return b.Ticker
}

// Site is a raw record from /sites/{username}.
type Site struct {
	SiteID           string         `json:"SiteId"`
	PlanetID         string         `json:"PlanetId"`
	PlanetIdentifier string         `json:"PlanetIdentifier"`
	PlanetName       string         `json:"PlanetName"`
	Buildings        []SiteBuilding `json:"Buildings"`
}

// Warehouse is a raw record from /sites/warehouses/{username}.
type Warehouse struct {
	WarehouseID       string `json:"WarehouseId"`
	StoreID           string `json:"StoreId"`
	Units             int    `json:"Units"`
	LocationName      string `json:"LocationName"`
	LocationNaturalID string `json:"LocationNaturalId"`
}

// MaterialAmount pairs a ticker with an amount in production orders.
type MaterialAmount struct {
	MaterialTicker string `json:"MaterialTicker"`
	MaterialAmount int    `json:"MaterialAmount"`
}

// ProductionOrder is a queued or running order on a production line.
type ProductionOrder struct {
	ProductionLineOrderID string           `json:"ProductionLineOrderId"`
	Inputs                []MaterialAmount `json:"Inputs"`
	Outputs               []MaterialAmount `json:"Outputs"`
	IsHalted              bool             `json:"IsHalted"`
}

// ProductionLine is a raw record from /production/{username}.
type ProductionLine struct {
	ProductionLineID string            `json:"ProductionLineId"`
	SiteID           string            `json:"SiteId"`
	PlanetName       string            `json:"PlanetName"`
	Type             string            `json:"Type"`
	Orders           []ProductionOrder `json:"Orders"`
}

// ExchangeQuote is a raw record from /exchange/all or /exchange/{TICKER.CODE}.
type ExchangeQuote struct {
	MaterialTicker string   `json:"MaterialTicker"`
	MaterialName   string   `json:"MaterialName"`
	ExchangeCode   string   `json:"ExchangeCode"`
	Currency       string   `json:"Currency"`
	Ask            *float64 `json:"Ask"`
	Bid            *float64 `json:"Bid"`
	PriceAverage   *float64 `json:"PriceAverage"`
}

// Material is a raw record from /material/allmaterials.
type Material struct {
	MaterialID   string  `json:"MaterialId"`
	Ticker       string  `json:"Ticker"`
	Name         string  `json:"Name"`
	CategoryName string  `json:"CategoryName"`
	CategoryID   string  `json:"CategoryId"`
	Weight       float64 `json:"Weight"`
	Volume       float64 `json:"Volume"`
}

// Planet is a raw record from /planet/allplanets.
type Planet struct {
	PlanetID        string `json:"PlanetId"`
	PlanetNaturalID string `json:"PlanetNaturalId"`
	PlanetName      string `json:"PlanetName"`
}

// Building is a raw record from /building/allbuildings.
type Building struct {
	BuildingID string `json:"BuildingId"`
	Ticker     string `json:"Ticker"`
	Name       string `json:"Name"`
	Expertise  string `json:"Expertise"`
}

// BuildingRecipe is a raw record from /rain/buildingrecipes.
type BuildingRecipe struct {
	Key        string `json:"Key"`
	Building   string `json:"Building"`
	Duration   int    `json:"Duration"`
	RecipeName string `json:"RecipeName"`
}

// RecipeOutput is a raw record from /rain/recipeoutputs. Key is "BUILDING-RECIPE".
type RecipeOutput struct {
	Key      string `json:"Key"`
	Material string `json:"Material"`
	Amount   int    `json:"Amount"`
}

// UserPlanet is a raw record from /rain/userplanets/{username}.
type UserPlanet struct {
	PlanetID         string `json:"PlanetId"`
	PlanetNaturalID  string `json:"PlanetNaturalId"`
	PlanetName       string `json:"PlanetName"`
	PlanetIdentifier string `json:"PlanetIdentifier"`
}

// UserPlanetBuilding is a raw record from /rain/userplanetbuildings/{username}.
type UserPlanetBuilding struct {
	PlanetID       string `json:"PlanetId"`
	BuildingTicker string `json:"Ticker"`
}

// UserInfo is a raw record from /user/{username}.
type UserInfo struct {
	UserName    string `json:"UserName"`
	CompanyID   string `json:"CompanyId"`
	CompanyCode string `json:"CompanyCode"`
	CompanyName string `json:"CompanyName"`
}

// Company is a raw record from /company/code/{code}.
type Company struct {
	CompanyID   string `json:"CompanyId"`
	CompanyCode string `json:"CompanyCode"`
	CompanyName string `json:"CompanyName"`
	UserName    string `json:"UserName"`
}

// Account summarizes a verified credential.
type Account struct {
	Username    string `json:"username"`
	CompanyCode string `json:"company_code,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Sites       int    `json:"sites"`
}
