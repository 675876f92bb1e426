package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prunderground/core/cache"
	"prunderground/core/database"
	"prunderground/core/fio"
	"prunderground/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service maintains the planet/station registry and the material catalog.
type Service struct {
	db     *gorm.DB
	client *fio.Client
	cache  *cache.Cache
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, client *fio.Client, c *cache.Cache, cfg Config, logger *zap.Logger) *Service {
	if cfg.PlanetTTL <= 0 {
		cfg.PlanetTTL = 14 * 24 * time.Hour
	}
	if cfg.MaterialTTL <= 0 {
		cfg.MaterialTTL = 30 * 24 * time.Hour
	}
	return &Service{
		db:     db,
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// syncNeeded reports whether the table is empty or its freshest row is older than ttl.
func (s *Service) syncNeeded(ctx context.Context, model any, ttl time.Duration) (bool, error) {
	var latest []time.Time
	err := s.db.WithContext(ctx).Model(model).
		Order("updated_at DESC").
		Limit(1).
		Pluck("updated_at", &latest).Error
	if err != nil {
		return false, fmt.Errorf("failed to read catalog freshness: %w", err)
	}
	if len(latest) == 0 {
		return true, nil
	}
	return s.now().Sub(latest[0]) > ttl, nil
}

// SyncPlanets refreshes the planet registry from FIO and upserts the CX stations.
// Unless forced, it does nothing while the stored data is younger than the planet TTL.
func (s *Service) SyncPlanets(ctx context.Context, force bool) (SyncSummary, error) {
	if !force {
		needed, err := s.syncNeeded(ctx, &Planet{}, s.cfg.PlanetTTL)
		if err != nil {
			return SyncSummary{}, err
		}
		if !needed {
			s.logger.Info("Planet sync not needed (data is fresh)")
			return SyncSummary{Skipped: true}, nil
		}
	}

	s.logger.Info("Starting planet sync from FIO")
	res := s.client.AllPlanets(ctx)
	if err := res.Err(); err != nil {
		return SyncSummary{}, fmt.Errorf("failed to fetch planets: %w", err)
	}
	raw := res.Value()
	if len(raw) == 0 {
		s.logger.Warn("No planets returned from FIO")
		return SyncSummary{}, nil
	}

	now := s.now().UTC()
	rows := make([]Planet, 0, len(raw)+len(Stations))
	seen := make(map[string]struct{}, len(raw))
	for i, p := range raw {
		if p.PlanetNaturalID == "" {
			s.logger.Debug("Skipping planet record",
				zap.Error(&fio.DataError{Record: fmt.Sprintf("planet %d", i), Reason: "missing PlanetNaturalId"}))
			continue
		}
		if _, dup := seen[p.PlanetNaturalID]; dup {
			continue
		}
		seen[p.PlanetNaturalID] = struct{}{}

		name := p.PlanetName
		if name == "" {
			name = p.PlanetNaturalID
		}
		rows = append(rows, Planet{
			PlanetID:  p.PlanetNaturalID,
			Name:      name,
			NaturalID: p.PlanetNaturalID,
			UpdatedAt: now,
		})
	}
	for _, st := range Stations {
		system := st.SystemName
		rows = append(rows, Planet{
			PlanetID:   st.PlanetID(),
			Name:       st.Name,
			NaturalID:  st.NaturalID,
			SystemName: &system,
			IsStation:  true,
			UpdatedAt:  now,
		})
	}

	keys := make([][]any, len(rows))
	for i, r := range rows {
		keys[i] = []any{r.PlanetID}
	}

	stored, err := database.Upsert(ctx, s.db, rows, []string{"planet_id"}, keys,
		[]string{"name", "natural_id", "system_name", "is_station", "updated_at"})
	if err != nil {
		return SyncSummary{}, fmt.Errorf("failed to store planets: %w", err)
	}
	summary := SyncSummary{Inserted: stored.Inserted, Updated: stored.Updated}

	s.logger.Info("Planet sync complete", zap.Int("inserted", summary.Inserted), zap.Int("updated", summary.Updated))
	return summary, nil
}

// SyncMaterials refreshes the material catalog from FIO and primes the global cache slot.
// Unless forced, it does nothing while the stored data is younger than the material TTL.
func (s *Service) SyncMaterials(ctx context.Context, force bool) (SyncSummary, error) {
	if !force {
		needed, err := s.syncNeeded(ctx, &Material{}, s.cfg.MaterialTTL)
		if err != nil {
			return SyncSummary{}, err
		}
		if !needed {
			s.logger.Info("Material sync not needed (data is fresh)")
			return SyncSummary{Skipped: true}, nil
		}
	}

	s.logger.Info("Starting material sync from FIO")
	res := s.client.AllMaterials(ctx)
	if err := res.Err(); err != nil {
		return SyncSummary{}, fmt.Errorf("failed to fetch materials: %w", err)
	}
	raw := res.Value()
	if len(raw) == 0 {
		s.logger.Warn("No materials returned from FIO")
		return SyncSummary{}, nil
	}
	if s.cache != nil {
		s.cache.SetAllMaterials(raw)
	}

	now := s.now().UTC()
	rows := make([]Material, 0, len(raw))
	keys := make([][]any, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, m := range raw {
		if m.Ticker == "" {
			s.logger.Debug("Skipping material record",
				zap.Error(&fio.DataError{Record: fmt.Sprintf("material %d", i), Reason: "missing Ticker"}))
			continue
		}
		if _, dup := seen[m.Ticker]; dup {
			continue
		}
		seen[m.Ticker] = struct{}{}

		name := m.Name
		if name == "" {
			name = m.Ticker
		}
		weight, volume := m.Weight, m.Volume
		rows = append(rows, Material{
			Ticker:       m.Ticker,
			Name:         utils.TitleCase(name),
			CategoryName: optional(m.CategoryName),
			CategoryID:   optional(m.CategoryID),
			Weight:       &weight,
			Volume:       &volume,
			UpdatedAt:    now,
		})
		keys = append(keys, []any{m.Ticker})
	}

	stored, err := database.Upsert(ctx, s.db, rows, []string{"ticker"}, keys,
		[]string{"name", "category_name", "category_id", "weight", "volume", "updated_at"})
	if err != nil {
		return SyncSummary{}, fmt.Errorf("failed to store materials: %w", err)
	}
	summary := SyncSummary{Inserted: stored.Inserted, Updated: stored.Updated}

	s.logger.Info("Material sync complete", zap.Int("inserted", summary.Inserted), zap.Int("updated", summary.Updated))
	return summary, nil
}

// AllMaterials returns the raw material catalog, served from the global cache slot when fresh.
func (s *Service) AllMaterials(ctx context.Context) ([]fio.Material, error) {
	if s.cache != nil {
		if materials, ok := s.cache.AllMaterials(); ok {
			return materials, nil
		}
	}
	res := s.client.AllMaterials(ctx)
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch materials: %w", err)
	}
	if s.cache != nil {
		s.cache.SetAllMaterials(res.Value())
	}
	return res.Value(), nil
}

// CXStationNames returns the display names of the CX stations. The built-in
// station list is used until the registry has been synced.
func (s *Service) CXStationNames(ctx context.Context) (map[string]struct{}, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&Planet{}).Where("is_station = ?", true).Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to load CX stations: %w", err)
	}
	if len(names) == 0 {
		for _, st := range Stations {
			names = append(names, st.Name)
		}
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

// Locations searches planets and stations by name or natural id, stations first.
func (s *Service) Locations(ctx context.Context, query string) ([]Planet, error) {
	q := s.db.WithContext(ctx).Model(&Planet{})
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(natural_id) LIKE ?", like, like)
	}
	var planets []Planet
	if err := q.Order("is_station DESC").Order("name ASC").Find(&planets).Error; err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}
	return planets, nil
}

// Materials lists stored materials by ticker, optionally filtered by a category substring.
func (s *Service) Materials(ctx context.Context, category string) ([]Material, error) {
	q := s.db.WithContext(ctx).Model(&Material{})
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("LOWER(category_name) LIKE ?", "%"+strings.ToLower(category)+"%")
	}
	var materials []Material
	if err := q.Order("ticker ASC").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

// Categories lists the distinct material categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&Material{}).
		Where("category_name IS NOT NULL AND category_name <> ''").
		Distinct().
		Order("category_name ASC").
		Pluck("category_name", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
