package catalog

import "time"

// Planet is a planet or CX station known to the location registry.
type Planet struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	PlanetID   string    `gorm:"size:50;uniqueIndex;not null" json:"planet_id"`
	Name       string    `gorm:"size:100;index;not null" json:"name"`
	NaturalID  string    `gorm:"size:20" json:"natural_id"`
	SystemName *string   `gorm:"size:100" json:"system_name"`
	IsStation  bool      `gorm:"not null;default:false" json:"is_station"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Planet) TableName() string { return "planets" }

// Material is a cached material definition.
type Material struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Ticker       string    `gorm:"size:10;uniqueIndex;not null" json:"ticker"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	CategoryName *string   `gorm:"size:50" json:"category_name"`
	CategoryID   *string   `gorm:"size:50" json:"category_id"`
	Weight       *float64  `json:"weight"`
	Volume       *float64  `json:"volume"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Material) TableName() string { return "materials" }

// Station is a fixed CX station. Stations are not part of the planet catalog.
type Station struct {
	Name       string `json:"name"`
	NaturalID  string `json:"natural_id"`
	SystemName string `json:"system_name"`
}

// PlanetID is the registry key of the station.
func (s Station) PlanetID() string {
	return "STATION_" + s.NaturalID
}

// Stations are the commodity exchange stations.
var Stations = []Station{
	{Name: "Moria Station", NaturalID: "NC1", SystemName: "Hortus"},
	{Name: "Benten Station", NaturalID: "NC2", SystemName: "Benten"},
	{Name: "Hortus Station", NaturalID: "IC1", SystemName: "Hortus"},
	{Name: "Arclight Station", NaturalID: "CI1", SystemName: "Arclight"},
	{Name: "Antares Station", NaturalID: "AI1", SystemName: "Antares"},
}

// SyncSummary reports the outcome of a catalog sync.
type SyncSummary struct {
	// Skipped is true when the stored data was fresh and upstream was not contacted.
	Skipped  bool `json:"skipped"`
	Inserted int  `json:"inserted"`
	Updated  int  `json:"updated"`
}

// Models lists the tables owned by this feature.
func Models() []any {
	return []any{&Planet{}, &Material{}}
}
